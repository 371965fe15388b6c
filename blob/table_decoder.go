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
	"github.com/arloliu/tossframe/section"
)

// TableDecoder reconstructs a TableBlob from encoded bytes.
//
// Note: The TableDecoder is NOT reusable. After calling Decode, a new decoder must be created for further decoding.
type TableDecoder[K IDType] struct {
	data   []byte
	header section.TableHeader
	engine endian.EndianEngine
}

// NewTableDecoder parses and validates the header of data.
//
// Returns:
//   - errs.ErrInvalidHeaderSize if data is shorter than a header
//   - errs.ErrInvalidHeaderFlags for an unknown magic number or flag combination
//   - errs.ErrIDKindMismatch if the blob ids are not of K's kind
func NewTableDecoder[K IDType](data []byte) (*TableDecoder[K], error) {
	if len(data) < section.HeaderSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	d := &TableDecoder[K]{data: data}
	if err := d.header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}
	d.engine = d.header.GetEndianEngine()

	if kind := d.header.Flag.GetIDKind(); kind != idKindOf[K]() {
		return nil, fmt.Errorf("%w: blob holds %s ids", errs.ErrIDKindMismatch, kind)
	}

	return d, nil
}

// Decode decodes data. See TableDecoder.Decode.
func Decode[K IDType](data []byte) (*TableBlob[K], error) {
	d, err := NewTableDecoder[K](data)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}

// Decode verifies the checksum, parses the run index, decompresses both
// payloads and checks them against the index.
//
// Returns errs.ErrChecksumMismatch when the bytes after the header were
// altered, and errs.ErrCorruptPayload when the sections are inconsistent.
func (d *TableDecoder[K]) Decode() (*TableBlob[K], error) {
	if crc32.ChecksumIEEE(d.data[section.ChecksumStartIndex:]) != d.header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	if err := d.checkOffsets(); err != nil {
		return nil, err
	}

	runs, err := d.parseIndex()
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(d.header.Flag.GetCompression())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}

	runIDs, err := d.decodeIDs(codec, runs)
	if err != nil {
		return nil, err
	}

	toss, err := codec.Decompress(d.data[d.header.TossOffset:])
	if err != nil {
		return nil, fmt.Errorf("%w: toss payload: %w", errs.ErrCorruptPayload, err)
	}
	rows := int(d.header.RowCount) //nolint:gosec
	if len(toss) < enc.BitmapSize(rows) {
		return nil, fmt.Errorf("%w: toss bitmap holds %d bytes, need %d",
			errs.ErrCorruptPayload, len(toss), enc.BitmapSize(rows))
	}

	return newTableBlob(d.header, runs, runIDs, toss), nil
}

func (d *TableDecoder[K]) checkOffsets() error {
	h := &d.header
	if h.RowCount > section.MaxRowCount || uint64(h.RunCount) > h.RowCount {
		return fmt.Errorf("%w: %d runs for %d rows", errs.ErrCorruptPayload, h.RunCount, h.RowCount)
	}
	if h.RowCount > 0 && h.RunCount == 0 {
		return fmt.Errorf("%w: %d rows without runs", errs.ErrCorruptPayload, h.RowCount)
	}

	indexEnd := uint64(section.IndexOffsetOffset) + uint64(h.IndexSize())
	if uint64(h.IDOffset) != indexEnd || h.TossOffset < h.IDOffset || uint64(h.TossOffset) > uint64(len(d.data)) {
		return fmt.Errorf("%w: section offsets id=%d toss=%d size=%d",
			errs.ErrCorruptPayload, h.IDOffset, h.TossOffset, len(d.data))
	}

	return nil
}

// parseIndex reads the run index and checks that the runs tile the rows.
func (d *TableDecoder[K]) parseIndex() ([]section.RunIndexEntry, error) {
	count := int(d.header.RunCount)
	runs := make([]section.RunIndexEntry, count)

	next := uint64(0)
	for i := range count {
		off := section.IndexOffsetOffset + i*section.RunIndexEntrySize
		entry, err := section.ParseRunIndexEntry(d.data[off:], d.engine)
		if err != nil {
			return nil, err
		}
		if uint64(entry.Start) != next || entry.Length == 0 {
			return nil, fmt.Errorf("%w: run %d covers [%d, %d), expected start %d",
				errs.ErrCorruptPayload, i, entry.Start, entry.End(), next)
		}
		next = entry.End()
		runs[i] = entry
	}

	if next != d.header.RowCount {
		return nil, fmt.Errorf("%w: runs cover %d of %d rows", errs.ErrCorruptPayload, next, d.header.RowCount)
	}

	return runs, nil
}

// decodeIDs decompresses the id payload, decodes one id per run and checks the
// stored run lengths and id hashes against the index.
func (d *TableDecoder[K]) decodeIDs(codec compress.Codec, runs []section.RunIndexEntry) ([]K, error) {
	payload, err := codec.Decompress(d.data[d.header.IDOffset:d.header.TossOffset])
	if err != nil {
		return nil, fmt.Errorf("%w: id payload: %w", errs.ErrCorruptPayload, err)
	}

	size, n := binary.Uvarint(payload)
	if n <= 0 || size > uint64(len(payload)-n) {
		return nil, fmt.Errorf("%w: id section size", errs.ErrCorruptPayload)
	}
	idBytes := payload[n : n+int(size)] //nolint:gosec
	lengthBytes := payload[n+int(size):] //nolint:gosec

	kind := d.header.Flag.GetIDKind()
	ids := make([]K, 0, len(runs))
	if kind == format.KindString {
		for s := range enc.NewVarStringDecoder().All(idBytes, len(runs)) {
			ids = append(ids, idFromString[K](s))
		}
	} else {
		var dec enc.ColumnarDecoder[int64] = enc.NewInt64DeltaDecoder()
		if d.header.Flag.GetIDEncoding() == format.TypeRaw {
			dec = enc.NewInt64RawDecoder(d.engine)
		}
		for v := range dec.All(idBytes, len(runs)) {
			id, ok := idFromInt[K](v)
			if !ok {
				return nil, fmt.Errorf("%w: id %d overflows %T", errs.ErrIDKindMismatch, v, id)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) != len(runs) {
		return nil, fmt.Errorf("%w: decoded %d of %d run ids", errs.ErrCorruptPayload, len(ids), len(runs))
	}

	i := 0
	for length := range enc.NewUvarintDecoder().All(lengthBytes, len(runs)) {
		if length != uint64(runs[i].Length) {
			return nil, fmt.Errorf("%w: run %d length %d, index says %d",
				errs.ErrCorruptPayload, i, length, runs[i].Length)
		}
		i++
	}
	if i != len(runs) {
		return nil, fmt.Errorf("%w: decoded %d of %d run lengths", errs.ErrCorruptPayload, i, len(runs))
	}

	for i, id := range ids {
		if runHash(id, kind) != runs[i].KeyHash {
			return nil, fmt.Errorf("%w: run %d id hash", errs.ErrCorruptPayload, i)
		}
	}

	return ids, nil
}
