package vfx

import (
	"encoding/binary"
	"io"

	"github.com/matzehuels/vfxtool/pkg/errors"
)

// cursor reads little-endian values from an in-memory binary.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) offset() int64 { return int64(c.off) }

func (c *cursor) remaining() int { return len(c.buf) - c.off }

func (c *cursor) take(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, errors.Wrap(errors.ErrCodeTruncated, io.ErrUnexpectedEOF,
			"need %d bytes at offset %d, have %d", n, c.off, c.remaining())
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) skip(n int) error {
	_, err := c.take(n)
	return err
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// index reads a node index of the given byte width (1 or 2).
func (c *cursor) index(width int) (uint16, error) {
	if width == 1 {
		b, err := c.u8()
		return uint16(b), err
	}
	return c.u16()
}

// Encoding appends to a byte slice; the document is small enough to build
// in memory and write in one call.

func appendU8(b []byte, v uint8) []byte { return append(b, v) }

func appendU16(b []byte, v uint16) []byte { return binary.LittleEndian.AppendUint16(b, v) }

func appendU32(b []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(b, v) }

func appendU64(b []byte, v uint64) []byte { return binary.LittleEndian.AppendUint64(b, v) }

func appendIndex(b []byte, width int, v uint16) []byte {
	if width == 1 {
		return appendU8(b, uint8(v))
	}
	return appendU16(b, v)
}
