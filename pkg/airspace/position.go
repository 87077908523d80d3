package airspace

import (
	"math"
)

// Angle is a geographic angle stored in 1/1000 arc minutes.
// Positive values are north/east, negative values south/west.
type Angle int32

// UndefinedAngle marks an angle which was never set.
const UndefinedAngle = Angle(math.MinInt32)

// AngleFromDegrees converts decimal degrees into an Angle.
func AngleFromDegrees(deg float64) Angle {
	return Angle(math.Round(deg * 60 * 1000))
}

// Defined returns true unless the angle is UndefinedAngle.
func (a Angle) Defined() bool {
	return a != UndefinedAngle
}

// Refactor rescales the angle to units of 1/(60*factor) degree,
// truncating toward zero. Refactor(60) yields arc seconds.
func (a Angle) Refactor(factor int) int32 {
	return int32(int64(a) * int64(factor) / 1000)
}

// Position is a point on the earth's surface.
type Position struct {
	Latitude  Angle
	Longitude Angle
}

// NewPosition builds a position from decimal degrees.
func NewPosition(lat, lon float64) Position {
	return Position{
		Latitude:  AngleFromDegrees(lat),
		Longitude: AngleFromDegrees(lon),
	}
}

// UndefinedPosition is a position with both angles undefined.
var UndefinedPosition = Position{Latitude: UndefinedAngle, Longitude: UndefinedAngle}

// Defined returns true if both angles are defined.
func (p Position) Defined() bool {
	return p.Latitude.Defined() && p.Longitude.Defined()
}

const metersPerNauticalMile = 1852

// Distance is a length in meters. Zero or negative means undefined.
type Distance float64

// NauticalMiles builds a Distance from nautical miles.
func NauticalMiles(nm float64) Distance {
	return Distance(nm * metersPerNauticalMile)
}

// Defined returns true for a positive distance.
func (d Distance) Defined() bool {
	return d > 0
}

// NauticalMiles returns the distance in nautical miles.
func (d Distance) NauticalMiles() float64 {
	return float64(d) / metersPerNauticalMile
}
