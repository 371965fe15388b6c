package section

import (
	"github.com/arloliu/tossframe/endian"
	"github.com/arloliu/tossframe/errs"
)

// RunIndexEntry describes one id run. It is a fixed 16 bytes so readers can
// binary-search or scan the index without touching the payloads.
type RunIndexEntry struct {
	// KeyHash is the xxHash64 of the run id's key.
	KeyHash uint64 // 8 bytes, offset 0-7
	// Start is the first row of the run.
	Start uint32 // 4 bytes, offset 8-11
	// Length is the number of rows in the run, always at least 1.
	Length uint32 // 4 bytes, offset 12-15
}

// WriteToSlice writes the entry into the first 16 bytes of b.
func (e *RunIndexEntry) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < RunIndexEntrySize {
		return errs.ErrCorruptPayload
	}

	engine.PutUint64(b[0:8], e.KeyHash)
	engine.PutUint32(b[8:12], e.Start)
	engine.PutUint32(b[12:16], e.Length)

	return nil
}

// ParseRunIndexEntry reads an entry from the first 16 bytes of data.
func ParseRunIndexEntry(data []byte, engine endian.EndianEngine) (RunIndexEntry, error) {
	if len(data) < RunIndexEntrySize {
		return RunIndexEntry{}, errs.ErrCorruptPayload
	}

	return RunIndexEntry{
		KeyHash: engine.Uint64(data[0:8]),
		Start:   engine.Uint32(data[8:12]),
		Length:  engine.Uint32(data[12:16]),
	}, nil
}

// End returns the row after the last row of the run.
func (e RunIndexEntry) End() uint64 {
	return uint64(e.Start) + uint64(e.Length)
}
