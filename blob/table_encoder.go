package blob

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/arloliu/tossframe/compress"
	enc "github.com/arloliu/tossframe/encoding"
	"github.com/arloliu/tossframe/endian"
	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/frame"
	"github.com/arloliu/tossframe/internal/collision"
	"github.com/arloliu/tossframe/internal/options"
	"github.com/arloliu/tossframe/internal/pool"
	"github.com/arloliu/tossframe/section"
)

// TableEncoder encodes frame tables with a fixed configuration.
//
// A TableEncoder holds no per-table state, so one instance may encode many
// tables and is safe for concurrent use.
type TableEncoder[K IDType] struct {
	cfg   *EncoderConfig
	kind  format.IDKind
	codec compress.Codec
}

// NewTableEncoder creates an encoder for tables with ids of type K.
//
// Returns errs.ErrInvalidCompression or errs.ErrInvalidIDEncoding when an
// option carries an unsupported value.
func NewTableEncoder[K IDType](opts ...EncoderOption) (*TableEncoder[K], error) {
	cfg := NewEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "payload")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}

	return &TableEncoder[K]{
		cfg:   cfg,
		kind:  idKindOf[K](),
		codec: codec,
	}, nil
}

// Encode encodes t with the given options. See TableEncoder.Encode.
func Encode[K IDType](t *frame.Table[K], opts ...EncoderOption) ([]byte, error) {
	e, err := NewTableEncoder[K](opts...)
	if err != nil {
		return nil, err
	}

	return e.Encode(t)
}

// Encode serializes t into a new blob.
//
// Returns:
//   - errs.ErrInvalidArgument if the id and toss columns differ in length
//   - errs.ErrTooManyRows if the table has more than section.MaxRowCount rows
//   - errs.ErrTextTooLong if a string id is longer than 255 bytes
func (e *TableEncoder[K]) Encode(t *frame.Table[K]) ([]byte, error) {
	if len(t.ID) != len(t.Toss) {
		return nil, fmt.Errorf("%w: %d ids, %d tosses", errs.ErrInvalidArgument, len(t.ID), len(t.Toss))
	}

	rows := t.Len()
	if uint64(rows) > section.MaxRowCount {
		return nil, fmt.Errorf("%w: %d rows", errs.ErrTooManyRows, rows)
	}

	runs, hasCollision := e.buildIndex(t)

	header, err := section.NewTableHeader(rows, len(runs))
	if err != nil {
		return nil, err
	}
	if e.cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.SetIDKind(e.kind)
	header.Flag.SetIDEncoding(e.idEncoding())
	header.Flag.SetCompression(e.cfg.compression)
	header.Flag.SetCollision(hasCollision)
	engine := header.GetEndianEngine()

	idPayload, err := e.encodeIDs(t, runs, engine)
	if err != nil {
		return nil, err
	}

	tossPayload, err := e.encodeTosses(t)
	if err != nil {
		return nil, err
	}

	tossOffset := uint64(header.IDOffset) + uint64(len(idPayload))
	if tossOffset+uint64(len(tossPayload)) > section.MaxSectionOffset {
		return nil, fmt.Errorf("%w: blob exceeds %d bytes", errs.ErrTooManyRows, uint64(section.MaxSectionOffset))
	}
	header.TossOffset = uint32(tossOffset) //nolint:gosec

	data := make([]byte, int(tossOffset)+len(tossPayload))

	idx := data[section.IndexOffsetOffset:header.IDOffset]
	for i := range runs {
		if err := runs[i].WriteToSlice(idx[i*section.RunIndexEntrySize:], engine); err != nil {
			return nil, err
		}
	}
	copy(data[header.IDOffset:], idPayload)
	copy(data[header.TossOffset:], tossPayload)

	header.Checksum = crc32.ChecksumIEEE(data[section.ChecksumStartIndex:])
	header.WriteToSlice(data)

	return data, nil
}

func (e *TableEncoder[K]) idEncoding() format.EncodingType {
	if e.kind == format.KindString {
		return format.TypeVarString
	}

	return e.cfg.idEncoding
}

// buildIndex creates one index entry per block of t and reports whether two
// distinct run ids share a hash.
func (e *TableEncoder[K]) buildIndex(t *frame.Table[K]) ([]section.RunIndexEntry, bool) {
	tracker := collision.NewTracker()
	runs := make([]section.RunIndexEntry, 0)

	for b := range t.Blocks() {
		key, h := runKey(b.ID, e.kind)
		tracker.Track(key, h)
		runs = append(runs, section.RunIndexEntry{
			KeyHash: h,
			Start:   uint32(b.Start), //nolint:gosec
			Length:  uint32(b.Len),   //nolint:gosec
		})
	}

	return runs, tracker.HasCollision()
}

// encodeIDs builds the compressed id payload:
//
//	uvarint(len(ids)) | ids | uvarint run lengths
func (e *TableEncoder[K]) encodeIDs(t *frame.Table[K], runs []section.RunIndexEntry, engine endian.EndianEngine) ([]byte, error) {
	ids, release, err := e.encodeRunIDs(t, runs, engine)
	if err != nil {
		return nil, err
	}
	defer release()

	lengths := enc.NewUvarintEncoder()
	defer lengths.Finish()
	for _, r := range runs {
		lengths.Write(uint64(r.Length))
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	buf.Grow(binary.MaxVarintLen64 + len(ids) + lengths.Size())
	buf.B = binary.AppendUvarint(buf.B, uint64(len(ids)))
	buf.MustWrite(ids)
	buf.MustWrite(lengths.Bytes())

	return e.compress(buf.Bytes(), "id")
}

// encodeRunIDs encodes the id of every run. The returned bytes stay valid until
// release is called.
func (e *TableEncoder[K]) encodeRunIDs(t *frame.Table[K], runs []section.RunIndexEntry, engine endian.EndianEngine) ([]byte, func(), error) {
	if e.kind == format.KindString {
		ve := enc.NewVarStringEncoder()
		for _, r := range runs {
			if err := ve.Write(stringID(t.ID[r.Start])); err != nil {
				ve.Finish()
				return nil, nil, fmt.Errorf("run at row %d: %w", r.Start, err)
			}
		}

		return ve.Bytes(), ve.Finish, nil
	}

	var ie enc.ColumnarEncoder[int64]
	if e.cfg.idEncoding == format.TypeRaw {
		ie = enc.NewInt64RawEncoder(engine)
	} else {
		ie = enc.NewInt64DeltaEncoder()
	}
	for _, r := range runs {
		ie.Write(intID(t.ID[r.Start]))
	}

	return ie.Bytes(), ie.Finish, nil
}

func (e *TableEncoder[K]) encodeTosses(t *frame.Table[K]) ([]byte, error) {
	be := enc.NewBitmapEncoder()
	defer be.Finish()

	// Expanded tables hold heads then tails per id, so tosses come in long runs.
	tosses := t.Toss
	for start := 0; start < len(tosses); {
		end := start + 1
		for end < len(tosses) && tosses[end] == tosses[start] {
			end++
		}
		be.WriteRun(tosses[start], end-start)
		start = end
	}

	return e.compress(be.Bytes(), "toss")
}

// compress compresses a pooled payload into memory the blob can own.
func (e *TableEncoder[K]) compress(payload []byte, target string) ([]byte, error) {
	out, err := e.codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress %s payload: %w", target, err)
	}

	if e.cfg.compression == format.CompressionNone {
		// the no-op codec aliases the pooled buffer
		out = append([]byte(nil), out...)
	}

	return out, nil
}
