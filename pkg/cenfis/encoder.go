// Package cenfis writes airspace files for the Cenfis flight computer.
//
// The format is a reverse engineered binary image: a file header with
// three section descriptors, the airspace records, an index of record
// offsets and an obfuscated config trailer. Some quirks of the legacy
// encoder which produced the existing files are reproduced on purpose, so
// the output stays byte compatible with what the devices expect.
package cenfis

import (
	"fmt"
	"io"

	"github.com/loggertools/asconv/internal/cenfisbuf"
	"github.com/loggertools/asconv/internal/datafile"
	"github.com/loggertools/asconv/pkg/airspace"
	"github.com/zerodha/logf"
)

const (
	configLength  = 0xe1
	configFill    = 0x01
	configKey     = 0xe2
	sectionAlign  = 16
	indexEntry    = 2
	configElement = 4
)

// Edge tags in the delta encoded part of a record. Plain vertices carry
// no tag.
const (
	tagArcClockwise        = 0x80
	tagArcCounterClockwise = 0x81
	tagCircle              = 0xc0
)

// segment is a byte range of the airspace buffer which is written to the
// sink in one piece.
type segment struct {
	start, end int
}

// Encoder accumulates airspace records and writes the complete file on
// Finalize. It is not safe for concurrent use.
type Encoder struct {
	lo   logf.Logger
	w    io.Writer
	opts *Options

	airspaces *cenfisbuf.Buffer
	index     *cenfisbuf.Buffer
	segments  []segment

	first     bool // The next record carries the file info string.
	finalized bool

	// lastFirstVertex is the first vertex of the latest record which had
	// one. Records flagged with noFirstVertex inherit it.
	lastFirstVertex *airspace.Position
}

// NewEncoder returns an Encoder which writes to w on Finalize.
func NewEncoder(w io.Writer, cfg ...Config) (*Encoder, error) {
	opts := DefaultOptions()
	for _, c := range cfg {
		if err := c(opts); err != nil {
			return nil, err
		}
	}

	lo := initLogger(opts.debug)
	if opts.logger != nil {
		lo = *opts.logger
	}

	return &Encoder{
		lo:        lo,
		w:         w,
		opts:      opts,
		airspaces: cenfisbuf.New(),
		index:     cenfisbuf.New(),
		first:     true,
	}, nil
}

// Count returns the number of records emitted so far.
func (e *Encoder) Count() int {
	return e.index.Tell() / indexEntry
}

// skipped reports the airspace types the device has no use for.
func skipped(t airspace.Type) bool {
	switch t {
	case airspace.TypeUnknown, airspace.TypeEchoLow, airspace.TypeEchoHigh, airspace.TypeGlider:
		return true
	}
	return false
}

func typeString(t airspace.Type) string {
	switch t {
	case airspace.TypeAlpha:
		return "A"
	case airspace.TypeBravo:
		return "B"
	case airspace.TypeCharly:
		return "C"
	case airspace.TypeDelta:
		return "D"
	case airspace.TypeEchoLow, airspace.TypeEchoHigh:
		return "E"
	case airspace.TypeFox:
		return "F"
	case airspace.TypeCTR:
		return "CTR"
	case airspace.TypeTMZ:
		return "TMZ"
	case airspace.TypeRestricted:
		return "R"
	case airspace.TypeDanger:
		return "D"
	case airspace.TypeGlider:
		return "SV"
	}
	return "unknown"
}

// Encode appends one airspace to the file.
func (e *Encoder) Encode(as airspace.Airspace) error {
	if e.finalized {
		return ErrAlreadyFinalized
	}

	if skipped(as.Type) {
		e.lo.Debug("skipping airspace", "name", as.Name, "type", as.Type.String())
		return nil
	}

	record := e.encodeRecord(as)
	e.appendRecord(record)
	return nil
}

// encodeRecord builds the complete record of one airspace.
func (e *Encoder) encodeRecord(as airspace.Airspace) *cenfisbuf.Buffer {
	var (
		rec = cenfisbuf.NewWithHeader(RecordHeaderSize)
		hdr RecordHeader
		n   = decodeNames(as.Name)
	)

	hdr.Type = At(rec.Tell())
	if n.typeOverride != "" {
		rec.AppendString(n.typeOverride)
	} else {
		rec.AppendString(typeString(as.Type))
	}

	if e.first {
		hdr.FileInfo = At(rec.Tell())
		rec.AppendString(e.opts.fileInfo)
		e.first = false
	}

	e.encodeNames(rec, &hdr, n)
	encodeLimits(rec, &hdr, as)

	first, ok, own := e.encodeGeometry(rec, &hdr, as.Edges, n.noFirstVertex)
	if ok {
		encodeAnchor(rec, &hdr, as.Edges, first)
	}
	if own {
		e.lastFirstVertex = &first
	}

	hdr.Length = uint16(rec.Tell())
	hdr.Voice = as.Voice
	rec.SetHeader(hdr.Encode())
	return rec
}

func (e *Encoder) encodeNames(rec *cenfisbuf.Buffer, hdr *RecordHeader, n names) {
	hdr.Name = At(rec.Tell())
	rec.AppendString(n.name)

	// The upstream encoder wrote a name2 starting with '-' after name4.
	// The marker itself is dropped.
	lateName2 := ""
	if n.name2 != "" {
		if n.name2[0] == '-' {
			lateName2 = n.name2[1:]
		} else {
			hdr.Name2 = At(rec.Tell())
			rec.AppendString(n.name2)
		}
	}

	if n.name3 != "" {
		hdr.Name3 = At(rec.Tell())
		rec.AppendString(n.name3)
	}

	if n.name4 != "" {
		hdr.Name4 = At(rec.Tell())
		rec.AppendString(n.name4)
	}

	if lateName2 != "" {
		hdr.Name2 = At(rec.Tell())
		rec.AppendString(lateName2)
	}
}

func encodeLimits(rec *cenfisbuf.Buffer, hdr *RecordHeader, as airspace.Airspace) {
	// A lower bound of ground is the default and is left out.
	if as.Bottom.Defined() && (as.Bottom.Ref != airspace.RefGND || as.Bottom.Value != 0) {
		hdr.Lower = At(rec.Tell())
		rec.AppendAltitude(as.Bottom)
	}

	// The upstream encoder wrote the secondary upper bound without any
	// header field pointing at it. Keep the bytes for compatibility.
	if as.Top2.Defined() {
		rec.AppendAltitude(as.Top2)
	}

	if as.Top.Defined() {
		hdr.Upper = At(rec.Tell())
		rec.AppendAltitude(as.Top)
	}

	if as.Frequency.Defined() {
		hdr.Frequency = At(rec.Tell())
		rec.AppendFrequency(as.Frequency)
	}
}

// encodeGeometry writes the boundary. It returns the reference vertex
// the edges were encoded against, whether there was one, and whether it
// belongs to this record rather than being inherited.
func (e *Encoder) encodeGeometry(rec *cenfisbuf.Buffer, hdr *RecordHeader, edges []airspace.Edge, noFirstVertex bool) (airspace.Position, bool, bool) {
	var (
		ref       *airspace.Position
		own       bool
		lengthPos = -1
	)

	// The upstream encoder kept its first vertex in a static and never
	// reset it, so a record without its own first vertex got its deltas
	// relative to the previous record's one.
	if noFirstVertex {
		ref = e.lastFirstVertex
	}

	for _, edge := range edges {
		switch ed := edge.(type) {
		case airspace.Vertex:
			if !ed.End.Defined() {
				continue
			}
			if ref != nil {
				rec.AppendDelta(ed.End, *ref)
				continue
			}
			if noFirstVertex {
				continue
			}
			hdr.FirstVertex = At(rec.Tell())
			rec.AppendPosition(ed.End)
			end := ed.End
			ref, own = &end, true

			hdr.VertexLength = At(rec.Tell())
			lengthPos = rec.Tell()
			rec.AppendByte(0)

		case airspace.Arc:
			if ref == nil {
				continue
			}
			tag := byte(tagArcClockwise)
			if ed.Sign < 0 {
				tag = tagArcCounterClockwise
			}
			rec.AppendByte(tag)
			rec.AppendDelta(ed.Center, *ref)

		case airspace.Circle:
			if ref != nil {
				rec.AppendByte(tagCircle)
				rec.AppendDelta(ed.Center, *ref)
				rec.AppendDistance(ed.Radius)
				continue
			}
			if _, ok := hdr.Circle.Get(); !ok {
				hdr.Circle = At(rec.Tell())
			}
			rec.AppendPosition(ed.Center)
			rec.AppendDistance(ed.Radius)

		default:
			panic(fmt.Sprintf("cenfis: unknown edge type %T", edge))
		}
	}

	if lengthPos >= 0 {
		rec.Patch(lengthPos, byte(rec.Tell()-lengthPos-1))
	}

	if ref == nil {
		return airspace.Position{}, false, false
	}
	return *ref, true, own
}

// encodeAnchor writes the centroid of all vertices relative to first,
// which is the inherited reference for records without a first vertex.
// Integer division truncates toward zero like the device firmware.
func encodeAnchor(rec *cenfisbuf.Buffer, hdr *RecordHeader, edges []airspace.Edge, first airspace.Position) {
	var (
		count          int64
		latSum, lonSum int64
	)
	for _, edge := range edges {
		if v, ok := edge.(airspace.Vertex); ok && v.End.Defined() {
			latSum += int64(v.End.Latitude.Refactor(60))
			lonSum += int64(v.End.Longitude.Refactor(60))
			count++
		}
	}
	if count == 0 {
		return
	}

	hdr.Anchor = At(rec.Tell())
	rec.AppendAnchor(
		int16(latSum/count-int64(first.Latitude.Refactor(60))),
		int16(lonSum/count-int64(first.Longitude.Refactor(60))),
	)
}

// appendRecord adds a finished record to the airspace section and the
// index. Records which would straddle a bank are moved to the next one.
func (e *Encoder) appendRecord(rec *cenfisbuf.Buffer) {
	pos := FileHeaderSize + e.airspaces.Tell()
	if pad := datafile.BankPadding(pos, rec.Tell(), BankSize); pad > 0 {
		e.lo.Debug("moving record to next bank", "position", pos, "padding", pad)
		e.appendSegment(func() { e.airspaces.Fill(0xff, pad) })
	}

	e.index.AppendShort(uint16(FileHeaderSize + e.airspaces.Tell()))
	e.appendSegment(func() { e.airspaces.Append(rec.Bytes()) })
}

func (e *Encoder) appendSegment(write func()) {
	start := e.airspaces.Tell()
	write()
	e.segments = append(e.segments, segment{start: start, end: e.airspaces.Tell()})
}

// Finalize lays out the sections and writes the file. The encoder can't
// be used afterwards.
func (e *Encoder) Finalize() error {
	if e.finalized {
		return ErrAlreadyFinalized
	}
	e.finalized = true

	config := cenfisbuf.New()
	config.AppendByte(0x00)
	config.FillTo(configFill, configLength)
	config.Obfuscate(configKey)

	var (
		hdr    = newFileHeader()
		offset = FileHeaderSize
	)

	hdr.Airspaces = Section{
		Offset:      uint32(BaseAddress + offset),
		TotalSize:   uint16(e.airspaces.Tell()),
		NumElements: uint16(e.index.Tell() / indexEntry),
	}
	offset += e.airspaces.Tell()

	// The index starts in the second bank at the earliest.
	if offset < BankSize {
		pad := BankSize - offset
		e.appendSegment(func() { e.airspaces.Fill(0xff, pad) })
		offset = BankSize
	}

	hdr.Index = Section{
		Offset:      uint32(BaseAddress + offset),
		TotalSize:   uint16(e.index.Tell()),
		NumElements: uint16(e.index.Tell() / indexEntry),
	}
	offset += e.index.Tell()

	hdr.Config = Section{
		Offset:      uint32(BaseAddress + offset),
		TotalSize:   uint16(config.Tell()),
		NumElements: uint16(config.Tell() / configElement),
	}
	offset += config.Tell()

	if rem := (BaseAddress + offset) % sectionAlign; rem != 0 {
		config.Fill(0x00, sectionAlign-rem)
		offset += sectionAlign - rem
	}

	if offset > Capacity {
		return fmt.Errorf("%w: %d records need 0x%x bytes, limit is 0x%x",
			ErrCapacityExceeded, e.Count(), offset, Capacity)
	}

	e.lo.Debug("writing cenfis airspace file",
		"records", e.Count(),
		"airspace_size", e.airspaces.Tell(),
		"index_offset", hdr.Index.Offset,
		"size", offset)

	if err := e.write(&hdr, config); err != nil {
		return fmt.Errorf("error writing airspace file: %w", err)
	}
	return nil
}

func (e *Encoder) write(hdr *FileHeader, config *cenfisbuf.Buffer) error {
	df := datafile.New(e.w, BankSize)

	if _, err := df.Write(hdr.Encode()); err != nil {
		return err
	}

	data := e.airspaces.Bytes()
	for _, s := range e.segments {
		if _, err := df.WriteAligned(data[s.start:s.end]); err != nil {
			return err
		}
	}

	if _, err := e.index.WriteTo(df); err != nil {
		return err
	}
	_, err := config.WriteTo(df)
	return err
}
