// Package tossframe expands per-row coin-toss counts into a flat table of
// individual tosses, and stores such tables in a compact columnar format.
//
// Given three aligned columns (ids, trials and heads) every input row k
// becomes trials[k] output rows carrying ids[k], of which the first heads[k]
// are heads:
//
//	ids    = [1, 2]
//	trials = [3, 2]
//	heads  = [1, 2]
//
//	id   | 1    1     1     2    2
//	toss | true false false true true
//
// # Basic Usage
//
//	t, err := tossframe.Expand([]string{"a", "b"}, []int{3, 2}, []int{1, 2})
//	if err != nil {
//	    return err // errs.ErrInvalidArgument on bad input
//	}
//	for _, s := range t.Summarize() {
//	    fmt.Println(s.ID, s.Heads, s.Trials)
//	}
//
// Encoding and decoding a table:
//
//	data, _ := tossframe.Encode(t)
//	b, _ := tossframe.Decode[string](data)
//	blk, ok := b.Lookup("b")
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The frame package holds
// the expanders and table operations, blob the binary format, source and
// store the I/O layers, and regression the model fitting.
package tossframe

import (
	"context"

	"github.com/arloliu/tossframe/blob"
	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/frame"
	"github.com/arloliu/tossframe/source"
)

var defaultTableOptions = []blob.EncoderOption{
	blob.WithLittleEndian(),
	blob.WithIDEncoding(format.TypeDelta),
	blob.WithCompression(format.CompressionZstd),
}

// Expand expands ids, trials and heads in a single pass. See frame.Expand.
func Expand[K comparable](ids []K, trials, heads []int) (*frame.Table[K], error) {
	return frame.Expand(ids, trials, heads)
}

// ExpandNaive builds one toss sequence per row and flattens them. It returns
// the same table as Expand, more slowly. See frame.ExpandNaive.
func ExpandNaive[K comparable](ids []K, trials, heads []int) (*frame.Table[K], error) {
	return frame.ExpandNaive(ids, trials, heads)
}

// ExpandParallel expands with up to workers goroutines. See frame.ExpandParallel.
func ExpandParallel[K comparable](ctx context.Context, ids []K, trials, heads []int, workers int) (*frame.Table[K], error) {
	return frame.ExpandParallel(ctx, ids, trials, heads, workers)
}

// NewTableEncoder creates a table encoder. Options are applied on top of the
// defaults: little-endian, delta-encoded integer ids, zstd compression.
func NewTableEncoder[K blob.IDType](opts ...blob.EncoderOption) (*blob.TableEncoder[K], error) {
	all := make([]blob.EncoderOption, 0, len(defaultTableOptions)+len(opts))
	all = append(all, defaultTableOptions...)
	all = append(all, opts...)

	return blob.NewTableEncoder[K](all...)
}

// Encode encodes t with the default options overridden by opts.
func Encode[K blob.IDType](t *frame.Table[K], opts ...blob.EncoderOption) ([]byte, error) {
	enc, err := NewTableEncoder[K](opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(t)
}

// Decode decodes a table blob produced by Encode.
func Decode[K blob.IDType](data []byte) (*blob.TableBlob[K], error) {
	return blob.Decode[K](data)
}

// LoadInputs reads expansion inputs from location, which may be a CSV file,
// an .xlsx workbook or an http(s) URL serving CSV. The three column names
// select the id, trials and heads columns. The id column is read as text.
func LoadInputs(ctx context.Context, location, idCol, trialsCol, headsCol string, opts ...source.Option) (frame.Inputs, error) {
	opts = append([]source.Option{source.WithStringColumns(idCol)}, opts...)
	df, err := source.Load(ctx, location, opts...)
	if err != nil {
		return frame.Inputs{}, err
	}

	return frame.InputsFromDataFrame(df, idCol, trialsCol, headsCol)
}

// IDHash returns the 64-bit hash the run index stores for id.
//
// Use it to check for hash collisions between ids ahead of encoding, or to
// match run index entries read with the section package.
func IDHash[K blob.IDType](id K) uint64 {
	return blob.RunHash(id)
}
