package frame

import (
	"iter"
	"slices"
)

// Table is the expanded coin-toss table: two aligned columns of equal length.
type Table[K comparable] struct {
	ID   []K
	Toss []bool
}

// Block is a maximal run of consecutive rows that share one id.
type Block[K comparable] struct {
	ID    K
	Start int // first row of the block
	Len   int // number of rows
	Heads int // number of true tosses
}

// End returns the row after the last row of the block.
func (b Block[K]) End() int {
	return b.Start + b.Len
}

// Summary aggregates every row of one id.
type Summary[K comparable] struct {
	ID     K
	Trials int
	Heads  int
}

// Tails returns Trials - Heads.
func (s Summary[K]) Tails() int {
	return s.Trials - s.Heads
}

// Rate returns the fraction of heads, or 0 for an id without rows.
func (s Summary[K]) Rate() float64 {
	if s.Trials == 0 {
		return 0
	}

	return float64(s.Heads) / float64(s.Trials)
}

// NewTable creates a table from two columns. It returns false when the columns
// have different lengths. The slices are used as is, not copied.
func NewTable[K comparable](ids []K, tosses []bool) (*Table[K], bool) {
	if len(ids) != len(tosses) {
		return nil, false
	}

	return &Table[K]{ID: ids, Toss: tosses}, true
}

// Len returns the number of rows.
func (t *Table[K]) Len() int {
	return len(t.ID)
}

// Row returns the id and toss of row i. It panics if i is out of range.
func (t *Table[K]) Row(i int) (K, bool) {
	return t.ID[i], t.Toss[i]
}

// All iterates over the rows in order.
func (t *Table[K]) All() iter.Seq2[K, bool] {
	return func(yield func(K, bool) bool) {
		for i, id := range t.ID {
			if !yield(id, t.Toss[i]) {
				return
			}
		}
	}
}

// Blocks iterates over maximal runs of consecutive equal ids.
//
// For a table produced by Expand each non-empty input row is one block, unless
// neighbouring input rows carry the same id, in which case they merge.
func (t *Table[K]) Blocks() iter.Seq[Block[K]] {
	return func(yield func(Block[K]) bool) {
		n := len(t.ID)
		for start := 0; start < n; {
			b := Block[K]{ID: t.ID[start], Start: start}
			if t.Toss[start] {
				b.Heads++
			}
			end := start + 1
			for end < n && sameID(t.ID[end], b.ID) {
				if t.Toss[end] {
					b.Heads++
				}
				end++
			}
			b.Len = end - start

			if !yield(b) {
				return
			}
			start = end
		}
	}
}

// sameID reports whether a and b name the same block. Ids that are not equal to
// themselves, such as float NaN, match each other.
func sameID[K comparable](a, b K) bool {
	return a == b || (a != a && b != b) //nolint:gocritic,staticcheck
}

// Summarize groups rows by id in first-seen order.
//
// Summarize(Expand(ids, trials, heads)) recovers the per-id totals of the input
// for ids with at least one trial.
func (t *Table[K]) Summarize() []Summary[K] {
	pos := make(map[K]int)
	out := make([]Summary[K], 0)

	for b := range t.Blocks() {
		i, ok := pos[b.ID]
		if !ok {
			i = len(out)
			pos[b.ID] = i
			out = append(out, Summary[K]{ID: b.ID})
		}
		out[i].Trials += b.Len
		out[i].Heads += b.Heads
	}

	return out
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table[K]) Filter(keep func(id K, toss bool) bool) *Table[K] {
	out := &Table[K]{ID: []K{}, Toss: []bool{}}
	for id, toss := range t.All() {
		if keep(id, toss) {
			out.ID = append(out.ID, id)
			out.Toss = append(out.Toss, toss)
		}
	}

	return out
}

// Head returns a copy of the first n rows, or of every row when the table is shorter.
func (t *Table[K]) Head(n int) *Table[K] {
	n = max(0, min(n, t.Len()))

	return &Table[K]{
		ID:   slices.Clone(t.ID[:n]),
		Toss: slices.Clone(t.Toss[:n]),
	}
}

// Heads returns the number of true tosses.
func (t *Table[K]) Heads() int {
	n := 0
	for _, toss := range t.Toss {
		if toss {
			n++
		}
	}

	return n
}

// Equal reports whether both tables hold the same rows in the same order.
func (t *Table[K]) Equal(other *Table[K]) bool {
	if t == nil || other == nil {
		return t == other
	}

	return slices.Equal(t.ID, other.ID) && slices.Equal(t.Toss, other.Toss)
}
