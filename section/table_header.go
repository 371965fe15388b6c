package section

import (
	"fmt"

	"github.com/arloliu/tossframe/endian"
	"github.com/arloliu/tossframe/errs"
)

// TableHeader is the 32-byte header of a table blob.
type TableHeader struct {
	Flag TableFlag // 8 bytes, offset 0-7

	// RowCount is the number of rows of the table.
	RowCount uint64 // 8 bytes, offset 8-15
	// RunCount is the number of id runs, one run index entry each.
	RunCount uint32 // 4 bytes, offset 16-19
	// IDOffset is the byte offset of the compressed id payload.
	IDOffset uint32 // 4 bytes, offset 20-23
	// TossOffset is the byte offset of the compressed toss payload. It runs to the
	// end of the blob.
	TossOffset uint32 // 4 bytes, offset 24-27
	// Checksum is the CRC32 (IEEE) of every byte after the header.
	Checksum uint32 // 4 bytes, offset 28-31
}

// NewTableHeader creates a header for rowCount rows split into runCount runs.
// Payload offsets are filled in by the encoder once payload sizes are known.
func NewTableHeader(rowCount, runCount int) (*TableHeader, error) {
	if rowCount < 0 || uint64(rowCount) > MaxRowCount {
		return nil, fmt.Errorf("%w: %d rows", errs.ErrTooManyRows, rowCount)
	}
	if runCount < 0 || runCount > rowCount {
		return nil, fmt.Errorf("%w: %d runs for %d rows", errs.ErrCorruptPayload, runCount, rowCount)
	}

	idOffset := uint64(IndexOffsetOffset) + uint64(runCount)*RunIndexEntrySize
	if idOffset > MaxSectionOffset {
		return nil, fmt.Errorf("%w: run index too large", errs.ErrTooManyRows)
	}

	return &TableHeader{
		Flag:       NewTableFlag(),
		RowCount:   uint64(rowCount),
		RunCount:   uint32(runCount), //nolint:gosec
		IDOffset:   uint32(idOffset),
		TossOffset: uint32(idOffset),
	}, nil
}

// Parse parses the header from exactly HeaderSize bytes and validates the flag.
func (h *TableHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian so the byte order can be read from it.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.IDKind = data[2]
	h.Flag.IDEncoding = data[3]
	h.Flag.Compression = data[4]
	copy(h.Flag.Reserved[:], data[5:8])

	engine := h.GetEndianEngine()
	h.RowCount = engine.Uint64(data[8:16])
	h.RunCount = engine.Uint32(data[16:20])
	h.IDOffset = engine.Uint32(data[20:24])
	h.TossOffset = engine.Uint32(data[24:28])
	h.Checksum = engine.Uint32(data[28:32])

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	return nil
}

// Bytes serializes the header.
func (h *TableHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.WriteToSlice(b)

	return b
}

// WriteToSlice serializes the header into the first HeaderSize bytes of b.
func (h *TableHeader) WriteToSlice(b []byte) {
	_ = b[HeaderSize-1]

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.IDKind
	b[3] = h.Flag.IDEncoding
	b[4] = h.Flag.Compression
	copy(b[5:8], h.Flag.Reserved[:])

	engine := h.GetEndianEngine()
	engine.PutUint64(b[8:16], h.RowCount)
	engine.PutUint32(b[16:20], h.RunCount)
	engine.PutUint32(b[20:24], h.IDOffset)
	engine.PutUint32(b[24:28], h.TossOffset)
	engine.PutUint32(b[28:32], h.Checksum)
}

// GetEndianEngine returns the byte order recorded in the flag.
func (h *TableHeader) GetEndianEngine() endian.EndianEngine {
	return endian.ForBigEndian(h.Flag.IsBigEndian())
}

// IndexSize returns the byte size of the run index.
func (h *TableHeader) IndexSize() int {
	return int(h.RunCount) * RunIndexEntrySize
}
