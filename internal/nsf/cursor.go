package nsf

import "encoding/binary"

// cursor reads and writes little-endian header fields of a header buffer.
// The buffer is always HeaderSize bytes long, the field layout keeps all accesses in range.
type cursor struct {
	buf []byte
	pos int
}

// at positions the cursor at the file offset of a header field.
func (c *cursor) at(offset int) *cursor {
	c.pos = offset
	return c
}

func (c *cursor) next(n int) []byte {
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) u8() uint8 {
	return c.next(1)[0]
}

func (c *cursor) u16() uint16 {
	return binary.LittleEndian.Uint16(c.next(2))
}

func (c *cursor) u24() uint32 {
	b := c.next(3)
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func (c *cursor) bytes(dst []byte) {
	copy(dst, c.next(len(dst)))
}

func (c *cursor) putU8(v uint8) {
	c.next(1)[0] = v
}

func (c *cursor) putU16(v uint16) {
	binary.LittleEndian.PutUint16(c.next(2), v)
}

func (c *cursor) putU24(v uint32) {
	b := c.next(3)
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

func (c *cursor) putBytes(src []byte) {
	copy(c.next(len(src)), src)
}
