package airspace

import (
	"fmt"
	"math"
)

// Unit is the unit an altitude value is given in.
type Unit uint8

const (
	UnitUnknown Unit = iota
	UnitMeters
	UnitFeet
)

// Ref is the reference an altitude is measured against.
type Ref uint8

const (
	RefUnknown Ref = iota
	RefMSL
	RefGND
	RefAirfield
	Ref1013
)

var refNames = map[Ref]string{
	RefUnknown:  "UNKNOWN",
	RefMSL:      "MSL",
	RefGND:      "GND",
	RefAirfield: "AFL",
	Ref1013:     "FL",
}

func (r Ref) String() string {
	if s, ok := refNames[r]; ok {
		return s
	}
	return "INVALID"
}

// ParseRef is the inverse of Ref.String.
func ParseRef(s string) (Ref, error) {
	for r, name := range refNames {
		if name == s {
			return r, nil
		}
	}
	return RefUnknown, fmt.Errorf("unknown altitude reference %q", s)
}

const feetPerMeter = 3.2808399

// Altitude is a vertical limit. The zero value is undefined.
type Altitude struct {
	Value int
	Unit  Unit
	Ref   Ref
}

// Feet builds an altitude in feet.
func Feet(value int, ref Ref) Altitude {
	return Altitude{Value: value, Unit: UnitFeet, Ref: ref}
}

// Meters builds an altitude in meters.
func Meters(value int, ref Ref) Altitude {
	return Altitude{Value: value, Unit: UnitMeters, Ref: ref}
}

// Defined distinguishes an absent altitude from a zero one.
func (a Altitude) Defined() bool {
	return a.Unit != UnitUnknown && a.Ref != RefUnknown
}

// Feet returns the value converted to feet.
func (a Altitude) Feet() int {
	if a.Unit == UnitMeters {
		return int(math.Round(float64(a.Value) * feetPerMeter))
	}
	return a.Value
}

func (a Altitude) String() string {
	if !a.Defined() {
		return "UNKNOWN"
	}
	return fmt.Sprintf("%05d %s", a.Feet(), a.Ref)
}

// Frequency is a radio frequency in kHz. Zero means undefined.
type Frequency uint32

// Defined returns true for a non-zero frequency.
func (f Frequency) Defined() bool {
	return f != 0
}

// MegaHertz returns the integral MHz part.
func (f Frequency) MegaHertz() uint32 {
	return uint32(f) / 1000
}

// KiloHertzPart returns the kHz remainder after MegaHertz.
func (f Frequency) KiloHertzPart() uint32 {
	return uint32(f) % 1000
}
