// Package cenfisbuf implements the growable byte buffer the Cenfis
// encoders build their records in.
package cenfisbuf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/loggertools/asconv/pkg/airspace"
)

/*
Buffer is an append-only byte sink with a cursor. A buffer may reserve a
fixed-size header overlay at its start which is filled with 0xff and
rendered later via SetHeader.

All multi-byte values are big endian. Geographic angles are written in arc
seconds (Angle.Refactor(60)):

	position  | lat i32 | lon i32 |
	delta     | dlat i16 | dlon i16 |
	altitude  | feet i16 | ref u8 |
	frequency | MHz u8 | kHz u16 |
	distance  | 1/100 NM u16 |
	anchor    | 4 u8 | dlat i16 | dlon i16 |
	string    | len u8 | bytes |
*/
type Buffer struct {
	data       []byte
	headerSize int
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewWithHeader returns a buffer whose first size bytes are reserved for
// a header and set to 0xff.
func NewWithHeader(size int) *Buffer {
	b := &Buffer{
		data:       make([]byte, size, size+64),
		headerSize: size,
	}
	for i := range b.data {
		b.data[i] = 0xff
	}
	return b
}

// Tell returns the cursor, which is the number of bytes in the buffer
// including the header overlay.
func (b *Buffer) Tell() int {
	return len(b.data)
}

// Bytes returns the buffer contents. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// WriteTo writes the buffer contents to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	return int64(n), err
}

// SetHeader copies a rendered header into the overlay.
func (b *Buffer) SetHeader(p []byte) {
	if len(p) != b.headerSize {
		panic(fmt.Sprintf("cenfisbuf: header is %d bytes, overlay is %d", len(p), b.headerSize))
	}
	copy(b.data, p)
}

func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

func (b *Buffer) AppendByte(c byte) {
	b.data = append(b.data, c)
}

// AppendShort appends a big endian 16 bit value.
func (b *Buffer) AppendShort(v uint16) {
	b.data = binary.BigEndian.AppendUint16(b.data, v)
}

func (b *Buffer) appendLong(v uint32) {
	b.data = binary.BigEndian.AppendUint32(b.data, v)
}

// AppendString appends a length-prefixed string. Strings longer than 255
// bytes are truncated.
func (b *Buffer) AppendString(s string) {
	if len(s) > math.MaxUint8 {
		s = s[:math.MaxUint8]
	}
	b.AppendByte(byte(len(s)))
	b.data = append(b.data, s...)
}

// Fill appends n copies of c.
func (b *Buffer) Fill(c byte, n int) {
	for ; n > 0; n-- {
		b.data = append(b.data, c)
	}
}

// FillTo appends copies of c until the buffer is length bytes long.
func (b *Buffer) FillTo(c byte, length int) {
	b.Fill(c, length-len(b.data))
}

// Patch overwrites a byte which was written earlier.
func (b *Buffer) Patch(offset int, c byte) {
	if offset < 0 || offset >= len(b.data) {
		panic(fmt.Sprintf("cenfisbuf: patch offset %d outside [0,%d)", offset, len(b.data)))
	}
	b.data[offset] = c
}

// Obfuscate XORs every byte with key.
func (b *Buffer) Obfuscate(key byte) {
	for i := range b.data {
		b.data[i] ^= key
	}
}

// AppendPosition appends an absolute position.
func (b *Buffer) AppendPosition(p airspace.Position) {
	b.appendLong(uint32(p.Latitude.Refactor(60)))
	b.appendLong(uint32(p.Longitude.Refactor(60)))
}

// AppendDelta appends p as the difference to ref.
func (b *Buffer) AppendDelta(p, ref airspace.Position) {
	b.AppendShort(uint16(int16(p.Latitude.Refactor(60) - ref.Latitude.Refactor(60))))
	b.AppendShort(uint16(int16(p.Longitude.Refactor(60) - ref.Longitude.Refactor(60))))
}

// AppendAltitude appends the altitude in feet and its reference.
func (b *Buffer) AppendAltitude(a airspace.Altitude) {
	b.AppendShort(uint16(int16(a.Feet())))
	b.AppendByte(byte(a.Ref))
}

func (b *Buffer) AppendFrequency(f airspace.Frequency) {
	b.AppendByte(byte(f.MegaHertz()))
	b.AppendShort(uint16(f.KiloHertzPart()))
}

// AppendDistance appends d in hundredths of a nautical mile, saturated
// at 0xffff.
func (b *Buffer) AppendDistance(d airspace.Distance) {
	v := math.Round(d.NauticalMiles() * 100)
	if v > math.MaxUint16 {
		v = math.MaxUint16
	} else if v < 0 {
		v = 0
	}
	b.AppendShort(uint16(v))
}

// anchorLength is the payload size byte leading an anchor field.
const anchorLength = 4

// AppendAnchor appends an anchor point given as arc second deltas.
func (b *Buffer) AppendAnchor(dlat, dlon int16) {
	b.AppendByte(anchorLength)
	b.AppendShort(uint16(dlat))
	b.AppendShort(uint16(dlon))
}
