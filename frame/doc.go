// Package frame expands per-row trial and head counts into a flattened
// coin-toss table and offers a handful of operations over the result.
//
// Given three aligned inputs (ids, trials and heads) the expansion produces a
// table with Σ trials rows. Row block k holds trials[k] rows carrying ids[k];
// the first heads[k] rows of the block are tosses that came up heads (true) and
// the rest are tails (false).
//
//	ids    = [1, 2]
//	trials = [3, 2]
//	heads  = [1, 2]
//
//	id   | 1     1     1     2     2
//	toss | true  false false true  true
//
// Three implementations share the same validation and produce identical tables:
//
//   - Expand: single pass over a table allocated once with its final size.
//   - ExpandNaive: builds one []bool per row and flattens them with incremental
//     growth. Kept to show what the single-pass version saves.
//   - ExpandParallel: splits rows into chunks written concurrently into the
//     pre-sized table.
//
// Data-frame work beyond these operations is delegated to gota; see
// ToDataFrame and InputsFromDataFrame.
package frame
