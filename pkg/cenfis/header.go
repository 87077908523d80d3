package cenfis

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	// BankSize is the EPROM bank size of the device. No record may
	// straddle a bank boundary.
	BankSize = 0x8000

	// Capacity is the size of the window the airspace file is mapped into.
	Capacity = 0x10000

	// BaseAddress is where the device maps the airspace file.
	BaseAddress = 0x60000

	sentinel = math.MaxUint16
)

// Offset is an optional record-relative offset. The zero value is absent
// and renders as 0xffff.
type Offset struct {
	value uint16
	ok    bool
}

// At returns a present offset.
func At(pos int) Offset {
	return Offset{value: uint16(pos), ok: true}
}

// Get returns the offset and whether it is present.
func (o Offset) Get() (int, bool) {
	return int(o.value), o.ok
}

func (o Offset) raw() uint16 {
	if !o.ok {
		return sentinel
	}
	return o.value
}

/*
RecordHeader sits at the start of every airspace record. All fields but
Length and Voice are offsets relative to the record start.

-----------------------------------------------------------------------------------
| type | file_info | name | name2 | name3 | name4 | lower | upper | frequency |
| first_vertex | vertex_length | circle | anchor | length | voice |   (15 x u16)
-----------------------------------------------------------------------------------
*/
type RecordHeader struct {
	Type         Offset
	FileInfo     Offset
	Name         Offset
	Name2        Offset
	Name3        Offset
	Name4        Offset
	Lower        Offset
	Upper        Offset
	Frequency    Offset
	FirstVertex  Offset
	VertexLength Offset
	Circle       Offset
	Anchor       Offset
	Length       uint16
	Voice        uint16
}

// rawRecordHeader is the wire layout of RecordHeader.
type rawRecordHeader struct {
	Type, FileInfo, Name, Name2, Name3, Name4 uint16
	Lower, Upper, Frequency                   uint16
	FirstVertex, VertexLength, Circle, Anchor uint16
	Length, Voice                             uint16
}

// RecordHeaderSize is the encoded size of a RecordHeader.
var RecordHeaderSize = binary.Size(rawRecordHeader{})

// Encode renders the header in big endian byte order.
func (h *RecordHeader) Encode() []byte {
	raw := rawRecordHeader{
		Type:         h.Type.raw(),
		FileInfo:     h.FileInfo.raw(),
		Name:         h.Name.raw(),
		Name2:        h.Name2.raw(),
		Name3:        h.Name3.raw(),
		Name4:        h.Name4.raw(),
		Lower:        h.Lower.raw(),
		Upper:        h.Upper.raw(),
		Frequency:    h.Frequency.raw(),
		FirstVertex:  h.FirstVertex.raw(),
		VertexLength: h.VertexLength.raw(),
		Circle:       h.Circle.raw(),
		Anchor:       h.Anchor.raw(),
		Length:       h.Length,
		Voice:        h.Voice,
	}
	return encode(&raw)
}

// Section describes one section of the file.
type Section struct {
	Offset      uint32 // Absolute address, BaseAddress included.
	TotalSize   uint16
	NumElements uint16
}

// FileHeader is written at the very start of the file:
//
//	| airspaces | index | config |   (3 x {offset u32, total_size u16, num_elements u16})
type FileHeader struct {
	Airspaces Section
	Index     Section
	Config    Section
}

// FileHeaderSize is the encoded size of a FileHeader.
var FileHeaderSize = binary.Size(FileHeader{})

// newFileHeader returns a header with every byte set to 0xff.
func newFileHeader() FileHeader {
	unset := Section{Offset: math.MaxUint32, TotalSize: sentinel, NumElements: sentinel}
	return FileHeader{Airspaces: unset, Index: unset, Config: unset}
}

// Encode renders the header in big endian byte order.
func (h *FileHeader) Encode() []byte {
	return encode(h)
}

func encode(v any) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, binary.Size(v)))
	// Writes into a bytes.Buffer of a fixed-size struct can't fail.
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
