package frame

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/tossframe/errs"
)

// minParallelRows is the row count below which ExpandParallel does the work in
// the calling goroutine.
const minParallelRows = 1 << 14

// Validate checks the expansion preconditions and returns the total row count.
//
// The three slices must have equal lengths, every heads[k] must lie in
// [0, trials[k]], and Σ trials must fit in an int. A zero trials[k] is allowed
// and contributes no rows.
func Validate[K any](ids []K, trials, heads []int) (int, error) {
	if len(ids) != len(trials) || len(ids) != len(heads) {
		return 0, fmt.Errorf("%w: length mismatch: ids=%d trials=%d heads=%d",
			errs.ErrInvalidArgument, len(ids), len(trials), len(heads))
	}

	total := 0
	for k, n := range trials {
		h := heads[k]
		if n < 0 {
			return 0, fmt.Errorf("%w: row %d: negative trials %d", errs.ErrInvalidArgument, k, n)
		}
		if h < 0 || h > n {
			return 0, fmt.Errorf("%w: row %d: heads %d outside [0, %d]", errs.ErrInvalidArgument, k, h, n)
		}
		if total > math.MaxInt-n {
			return 0, fmt.Errorf("%w: row %d: total trials overflow int", errs.ErrInvalidArgument, k)
		}
		total += n
	}

	return total, nil
}

// Expand flattens the inputs into a table in a single pass.
//
// Both output columns are allocated once with length Σ trials, then a write
// cursor walks the rows: heads[k] true values followed by trials[k]-heads[k]
// false values, all tagged with ids[k]. The inputs are not retained or
// modified.
func Expand[K comparable](ids []K, trials, heads []int) (*Table[K], error) {
	total, err := Validate(ids, trials, heads)
	if err != nil {
		return nil, err
	}

	t := &Table[K]{
		ID:   make([]K, total),
		Toss: make([]bool, total),
	}
	fillRows(t, ids, trials, heads, 0)

	return t, nil
}

// fillRows writes the blocks of rows ids[0:] starting at output row cursor.
// make() already zeroed Toss, so only the heads need writing.
func fillRows[K comparable](t *Table[K], ids []K, trials, heads []int, cursor int) {
	for k, id := range ids {
		n := trials[k]
		block := t.ID[cursor : cursor+n]
		for j := range block {
			block[j] = id
		}

		tosses := t.Toss[cursor : cursor+heads[k]]
		for j := range tosses {
			tosses[j] = true
		}

		cursor += n
	}
}

// ExpandNaive produces the same table as Expand the slow way: a boolean slice is
// built per row, the slices are collected, then everything is flattened with
// append.
func ExpandNaive[K comparable](ids []K, trials, heads []int) (*Table[K], error) {
	if _, err := Validate(ids, trials, heads); err != nil {
		return nil, err
	}

	rows := make([][]bool, 0, len(ids))
	for k := range ids {
		rows = append(rows, tossRow(trials[k], heads[k]))
	}

	t := &Table[K]{ID: []K{}, Toss: []bool{}}
	for k, row := range rows {
		for _, toss := range row {
			t.ID = append(t.ID, ids[k])
			t.Toss = append(t.Toss, toss)
		}
	}

	return t, nil
}

// tossRow returns n tosses of which the first h are heads.
func tossRow(n, h int) []bool {
	row := make([]bool, 0, n)
	for range h {
		row = append(row, true)
	}
	for range n - h {
		row = append(row, false)
	}

	return row
}

// ExpandParallel produces the same table as Expand using up to workers
// goroutines. Workers less than or equal to zero selects runtime.GOMAXPROCS(0).
//
// Input rows are split into contiguous chunks of roughly equal output size. Each
// chunk owns a disjoint range of the pre-sized output, so workers never share
// memory. Small inputs are expanded in the calling goroutine.
//
// The context is checked between chunks; on cancellation the partially filled
// table is discarded and ctx.Err() is returned.
func ExpandParallel[K comparable](ctx context.Context, ids []K, trials, heads []int, workers int) (*Table[K], error) {
	total, err := Validate(ids, trials, heads)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	t := &Table[K]{
		ID:   make([]K, total),
		Toss: make([]bool, total),
	}

	if workers == 1 || total < minParallelRows || len(ids) < 2 {
		fillRows(t, ids, trials, heads, 0)

		return t, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, c := range splitChunks(trials, total, workers) {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fillRows(t, ids[c.lo:c.hi], trials[c.lo:c.hi], heads[c.lo:c.hi], c.cursor)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// chunk is the input row range [lo, hi) whose output starts at cursor.
type chunk struct {
	lo, hi int
	cursor int
}

// splitChunks cuts the input rows into about 4*workers chunks of similar output
// size. Every input row belongs to exactly one chunk.
func splitChunks(trials []int, total, workers int) []chunk {
	target := total / (workers * 4)
	if target < 1 {
		target = 1
	}

	chunks := make([]chunk, 0, workers*4)
	cur := chunk{}
	size := 0
	cursor := 0
	for k, n := range trials {
		size += n
		cursor += n
		if size >= target {
			cur.hi = k + 1
			chunks = append(chunks, cur)
			cur = chunk{lo: k + 1, cursor: cursor}
			size = 0
		}
	}

	if cur.lo < len(trials) {
		cur.hi = len(trials)
		chunks = append(chunks, cur)
	}

	return chunks
}
