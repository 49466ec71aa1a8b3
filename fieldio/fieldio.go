package fieldio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/meshgeo/internal/conv"
	"github.com/hupe1980/meshgeo/internal/hash"
)

var (
	// ErrCorrupt is returned for truncated files, bad magic and checksum
	// mismatches.
	ErrCorrupt = errors.New("fieldio: corrupt field file")

	// ErrIncompatibleFormat is returned for unknown versions or compression
	// algorithms.
	ErrIncompatibleFormat = errors.New("fieldio: incompatible format")
)

const (
	magic         = "MGFD"
	version       = 1
	headerSize    = 16
	trailerSize   = 4
	valueSize     = 8
	maxBlockBytes = 64 << 20

	// DefaultBlockValues is the number of values per block (256 KiB).
	DefaultBlockValues = 32 * 1024
)

type options struct {
	compression Compression
	blockValues int
}

// Option configures Write.
type Option func(*options)

// WithCompression selects the block compression. Default is CompressionLZ4.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithBlockValues sets how many values go into one block.
func WithBlockValues(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockValues = n
		}
	}
}

// Write encodes values to w and returns the number of bytes written.
func Write(w io.Writer, values []float64, optFns ...Option) (int64, error) {
	opts := options{compression: CompressionLZ4, blockValues: DefaultBlockValues}
	for _, fn := range optFns {
		fn(&opts)
	}
	if !opts.compression.valid() {
		return 0, fmt.Errorf("%w: %v", ErrIncompatibleFormat, opts.compression)
	}
	if opts.blockValues*valueSize > maxBlockBytes {
		opts.blockValues = maxBlockBytes / valueSize
	}

	var written int64
	write := func(p []byte) error {
		n, err := w.Write(p)
		written += int64(n)
		return err
	}

	header := make([]byte, headerSize)
	copy(header, magic)
	binary.LittleEndian.PutUint16(header[4:], version)
	header[6] = byte(opts.compression)
	binary.LittleEndian.PutUint64(header[8:], uint64(len(values)))
	if err := write(header); err != nil {
		return written, err
	}

	crc := hash.NewCRC32C()
	raw := make([]byte, 0, min(len(values), opts.blockValues)*valueSize)
	for start := 0; start < len(values); start += opts.blockValues {
		end := min(start+opts.blockValues, len(values))
		raw = raw[:0]
		for _, v := range values[start:end] {
			raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(v))
		}
		_, _ = crc.Write(raw)

		block := raw
		if opts.compression != CompressionNone {
			var err error
			if block, err = encodeBlock(raw, opts.compression); err != nil {
				return written, err
			}
		} else {
			block = binary.LittleEndian.AppendUint32(make([]byte, 0, blockHeaderSize+len(raw)), uint32(len(raw)))
			block = binary.LittleEndian.AppendUint32(block, 0)
			block = append(block, raw...)
		}
		if err := write(block); err != nil {
			return written, err
		}
	}

	if err := write(binary.LittleEndian.AppendUint32(nil, crc.Sum32())); err != nil {
		return written, err
	}
	return written, nil
}

// Read decodes a field written by Write.
func Read(r io.Reader) ([]float64, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if string(header[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint16(header[4:]); v != version {
		return nil, fmt.Errorf("%w: version %d", ErrIncompatibleFormat, v)
	}
	c := Compression(header[6])
	if !c.valid() {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleFormat, c)
	}
	count, err := conv.ElementCount(binary.LittleEndian.Uint64(header[8:]), valueSize)
	if err != nil {
		return nil, fmt.Errorf("%w: value count: %w", ErrCorrupt, err)
	}

	values := make([]float64, 0, min(count, DefaultBlockValues))
	crc := hash.NewCRC32C()
	blockHeader := make([]byte, blockHeaderSize)
	var raw, payload []byte

	for len(values) < count {
		if _, err := io.ReadFull(r, blockHeader); err != nil {
			return nil, fmt.Errorf("%w: block header: %w", ErrCorrupt, err)
		}
		size := int(binary.LittleEndian.Uint32(blockHeader[0:]))
		csize := int(binary.LittleEndian.Uint32(blockHeader[4:]))
		if size == 0 || size%valueSize != 0 || size > maxBlockBytes || csize > maxBlockBytes ||
			size/valueSize > count-len(values) {
			return nil, fmt.Errorf("%w: block size %d", ErrCorrupt, size)
		}

		raw = grow(raw, size)
		if csize == 0 {
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, fmt.Errorf("%w: block: %w", ErrCorrupt, err)
			}
		} else {
			payload = grow(payload, csize)
			if _, err := io.ReadFull(r, payload); err != nil {
				return nil, fmt.Errorf("%w: block: %w", ErrCorrupt, err)
			}
			if err := decodeBlock(payload, raw, c); err != nil {
				return nil, err
			}
		}

		_, _ = crc.Write(raw)
		for i := 0; i < size; i += valueSize {
			values = append(values, math.Float64frombits(binary.LittleEndian.Uint64(raw[i:])))
		}
	}

	trailer := make([]byte, trailerSize)
	if _, err := io.ReadFull(r, trailer); err != nil {
		return nil, fmt.Errorf("%w: trailer: %w", ErrCorrupt, err)
	}
	if binary.LittleEndian.Uint32(trailer) != crc.Sum32() {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return values, nil
}

func grow(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}
