// Package airspace holds the value types shared by the airspace readers
// and writers: positions, altitudes, boundary edges and the airspace
// record itself.
package airspace

import "fmt"

// Type is the airspace class or category.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeAlpha
	TypeBravo
	TypeCharly
	TypeDelta
	TypeEchoLow
	TypeEchoHigh
	TypeFox
	TypeCTR
	TypeTMZ
	TypeRestricted
	TypeDanger
	TypeGlider
)

var typeNames = map[Type]string{
	TypeUnknown:    "UNKNOWN",
	TypeAlpha:      "A",
	TypeBravo:      "B",
	TypeCharly:     "C",
	TypeDelta:      "D",
	TypeEchoLow:    "E",
	TypeEchoHigh:   "W",
	TypeFox:        "F",
	TypeCTR:        "CTR",
	TypeTMZ:        "TMZ",
	TypeRestricted: "R",
	TypeDanger:     "Q",
	TypeGlider:     "GSEC",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "INVALID"
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown airspace type %q", s)
}

// Edge is one element of an airspace boundary. The set of implementations
// is closed: Vertex, Arc and Circle.
type Edge interface {
	edge()
}

// Vertex is a straight line segment ending at End.
type Vertex struct {
	End Position
}

// Arc is a circular arc around Center, starting at the preceding vertex.
// Sign is negative for counter-clockwise arcs.
type Arc struct {
	Center Position
	Sign   int
}

// Circle is a full circle.
type Circle struct {
	Center Position
	Radius Distance
}

func (Vertex) edge() {}
func (Arc) edge()    {}
func (Circle) edge() {}

// Airspace is a single airspace record. Name may carry extra fields
// joined with '|' by the reader that produced it.
type Airspace struct {
	Name      string
	Type      Type
	Bottom    Altitude
	Top       Altitude
	Top2      Altitude
	Frequency Frequency
	Voice     uint16
	Edges     []Edge
}
