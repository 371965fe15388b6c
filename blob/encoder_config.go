package blob

import (
	"fmt"

	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/internal/options"
)

// EncoderConfig holds the table encoder settings.
type EncoderConfig struct {
	compression format.CompressionType
	idEncoding  format.EncodingType
	bigEndian   bool
}

// NewEncoderConfig returns the defaults: zstd compression, delta encoded
// integer ids, little-endian.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		compression: format.CompressionZstd,
		idEncoding:  format.TypeDelta,
	}
}

// Compression returns the compression applied to each payload section.
func (c *EncoderConfig) Compression() format.CompressionType { return c.compression }

// IDEncoding returns the encoding applied to integer run ids.
func (c *EncoderConfig) IDEncoding() format.EncodingType { return c.idEncoding }

// BigEndian reports whether multi-byte values are written big-endian.
func (c *EncoderConfig) BigEndian() bool { return c.bigEndian }

// EncoderOption is a functional option for configuring the table encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the codec applied to the id and toss payloads.
// Default is format.CompressionZstd.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("%w: %v", errs.ErrInvalidCompression, comp)
		}
	})
}

// WithIDEncoding sets the encoding of integer run ids, format.TypeRaw or
// format.TypeDelta. String ids always use format.TypeVarString and ignore it.
// Default is format.TypeDelta.
func WithIDEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		switch enc { //nolint:exhaustive
		case format.TypeRaw, format.TypeDelta:
			c.idEncoding = enc
			return nil
		default:
			return fmt.Errorf("%w: %v", errs.ErrInvalidIDEncoding, enc)
		}
	})
}

// WithLittleEndian writes the header, index and raw ids little-endian. This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = false
	})
}

// WithBigEndian writes the header, index and raw ids big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = true
	})
}
