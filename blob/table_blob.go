package blob

import (
	"iter"
	"math/bits"

	enc "github.com/arloliu/tossframe/encoding"
	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/frame"
	"github.com/arloliu/tossframe/section"
)

// TableBlob is a decoded table blob. Run ids and the toss bitmap are held in
// decoded form; the full table is only materialized by Table.
//
// A TableBlob is immutable and safe for concurrent reads.
type TableBlob[K IDType] struct {
	header  section.TableHeader
	runs    []section.RunIndexEntry
	runIDs  []K
	toss    []byte           // bitmap, LSB first
	buckets map[uint64][]int // key hash -> run positions in row order
}

func newTableBlob[K IDType](header section.TableHeader, runs []section.RunIndexEntry, runIDs []K, toss []byte) *TableBlob[K] {
	buckets := make(map[uint64][]int, len(runs))
	for i, r := range runs {
		buckets[r.KeyHash] = append(buckets[r.KeyHash], i)
	}

	return &TableBlob[K]{
		header:  header,
		runs:    runs,
		runIDs:  runIDs,
		toss:    toss,
		buckets: buckets,
	}
}

// Header returns a copy of the blob header.
func (b *TableBlob[K]) Header() section.TableHeader {
	return b.header
}

// Len returns the number of table rows.
func (b *TableBlob[K]) Len() int {
	return int(b.header.RowCount) //nolint:gosec
}

// RunCount returns the number of id runs.
func (b *TableBlob[K]) RunCount() int {
	return len(b.runs)
}

// Compression returns the codec the payloads were compressed with.
func (b *TableBlob[K]) Compression() format.CompressionType {
	return b.header.Flag.GetCompression()
}

// HasCollision reports whether two distinct run ids share a key hash.
func (b *TableBlob[K]) HasCollision() bool {
	return b.header.Flag.HasCollision()
}

// Toss returns the toss of row i, or false, false when i is out of range.
func (b *TableBlob[K]) Toss(i int) (bool, bool) {
	return enc.NewBitmapDecoder().At(b.toss, i, b.Len())
}

// Table materializes the full table.
func (b *TableBlob[K]) Table() *frame.Table[K] {
	rows := b.Len()
	t := &frame.Table[K]{
		ID:   make([]K, rows),
		Toss: make([]bool, rows),
	}

	for i, r := range b.runs {
		block := t.ID[r.Start:r.End()]
		for j := range block {
			block[j] = b.runIDs[i]
		}
	}
	// length was checked during decoding
	enc.NewBitmapDecoder().DecodeInto(t.Toss, b.toss)

	return t
}

// Runs iterates over the id runs in row order.
func (b *TableBlob[K]) Runs() iter.Seq[frame.Block[K]] {
	return func(yield func(frame.Block[K]) bool) {
		for i := range b.runs {
			if !yield(b.block(i)) {
				return
			}
		}
	}
}

// Lookup returns the first run of id using the hash index.
func (b *TableBlob[K]) Lookup(id K) (frame.Block[K], bool) {
	for blk := range b.LookupAll(id) {
		return blk, true
	}

	return frame.Block[K]{}, false
}

// LookupAll iterates over every run of id in row order.
//
// Runs are found through the key hash index; the run id is compared as well so
// colliding ids never match each other.
func (b *TableBlob[K]) LookupAll(id K) iter.Seq[frame.Block[K]] {
	return func(yield func(frame.Block[K]) bool) {
		h := runHash(id, b.header.Flag.GetIDKind())
		for _, i := range b.buckets[h] {
			if b.runIDs[i] != id {
				continue
			}
			if !yield(b.block(i)) {
				return
			}
		}
	}
}

// Summarize groups rows by id in first-seen order without materializing the
// table. The result equals Table().Summarize().
func (b *TableBlob[K]) Summarize() []frame.Summary[K] {
	pos := make(map[K]int)
	out := make([]frame.Summary[K], 0)

	for blk := range b.Runs() {
		i, ok := pos[blk.ID]
		if !ok {
			i = len(out)
			pos[blk.ID] = i
			out = append(out, frame.Summary[K]{ID: blk.ID})
		}
		out[i].Trials += blk.Len
		out[i].Heads += blk.Heads
	}

	return out
}

func (b *TableBlob[K]) block(i int) frame.Block[K] {
	r := b.runs[i]

	return frame.Block[K]{
		ID:    b.runIDs[i],
		Start: int(r.Start),
		Len:   int(r.Length),
		Heads: countOnes(b.toss, int(r.Start), int(r.Length)),
	}
}

// countOnes counts the set bits of rows [start, start+n) in an LSB-first bitmap.
func countOnes(bitmap []byte, start, n int) int {
	count := 0
	i, end := start, start+n

	// leading partial byte
	for ; i < end && i&7 != 0; i++ {
		count += int(bitmap[i>>3]>>(i&7)) & 1
	}
	for ; i+8 <= end; i += 8 {
		count += bits.OnesCount8(bitmap[i>>3])
	}
	for ; i < end; i++ {
		count += int(bitmap[i>>3]>>(i&7)) & 1
	}

	return count
}
