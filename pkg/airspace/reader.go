package airspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrUnexpectedInput is returned when the input is not a JSON array.
var ErrUnexpectedInput = errors.New("airspace list must be a JSON array")

/*
Reader streams airspaces out of a JSON array, one element at a time:

	[
	  {"name": "EDR 123", "type": "R",
	   "bottom": {"value": 0, "unit": "ft", "ref": "GND"},
	   "top": {"value": 5000, "unit": "ft", "ref": "MSL"},
	   "frequency_khz": 123450, "voice": 0,
	   "edges": [
	     {"kind": "vertex", "end": {"lat": 50.1, "lon": 8.2}},
	     {"kind": "arc", "center": {"lat": 50.0, "lon": 8.0}, "sign": -1},
	     {"kind": "circle", "center": {"lat": 50.0, "lon": 8.0}, "radius_nm": 5}
	   ]}
	]
*/
type Reader struct {
	dec     *json.Decoder
	started bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(r)}
}

type jsonPosition struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type jsonAltitude struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
	Ref   string `json:"ref"`
}

type jsonEdge struct {
	Kind     string        `json:"kind"`
	End      *jsonPosition `json:"end"`
	Center   *jsonPosition `json:"center"`
	Sign     int           `json:"sign"`
	RadiusNM float64       `json:"radius_nm"`
}

type jsonAirspace struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Bottom       *jsonAltitude `json:"bottom"`
	Top          *jsonAltitude `json:"top"`
	Top2         *jsonAltitude `json:"top2"`
	FrequencyKHz uint32        `json:"frequency_khz"`
	Voice        uint16        `json:"voice"`
	Edges        []jsonEdge    `json:"edges"`
}

// Read returns the next airspace, or io.EOF once the array is exhausted.
func (r *Reader) Read() (Airspace, error) {
	if !r.started {
		tok, err := r.dec.Token()
		if err != nil {
			return Airspace{}, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			return Airspace{}, ErrUnexpectedInput
		}
		r.started = true
	}

	if !r.dec.More() {
		return Airspace{}, io.EOF
	}

	var raw jsonAirspace
	if err := r.dec.Decode(&raw); err != nil {
		return Airspace{}, fmt.Errorf("error decoding airspace: %w", err)
	}
	return raw.convert()
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]Airspace, error) {
	var list []Airspace
	for {
		as, err := r.Read()
		if errors.Is(err, io.EOF) {
			return list, nil
		}
		if err != nil {
			return nil, err
		}
		list = append(list, as)
	}
}

func (j jsonAirspace) convert() (Airspace, error) {
	t, err := ParseType(j.Type)
	if err != nil {
		return Airspace{}, fmt.Errorf("airspace %q: %w", j.Name, err)
	}

	as := Airspace{
		Name:      j.Name,
		Type:      t,
		Frequency: Frequency(j.FrequencyKHz),
		Voice:     j.Voice,
	}
	for _, alt := range []struct {
		src *jsonAltitude
		dst *Altitude
	}{{j.Bottom, &as.Bottom}, {j.Top, &as.Top}, {j.Top2, &as.Top2}} {
		if alt.src == nil {
			continue
		}
		if *alt.dst, err = alt.src.convert(); err != nil {
			return Airspace{}, fmt.Errorf("airspace %q: %w", j.Name, err)
		}
	}

	for i, e := range j.Edges {
		edge, err := e.convert()
		if err != nil {
			return Airspace{}, fmt.Errorf("airspace %q edge %d: %w", j.Name, i, err)
		}
		as.Edges = append(as.Edges, edge)
	}
	return as, nil
}

func (j jsonAltitude) convert() (Altitude, error) {
	ref, err := ParseRef(j.Ref)
	if err != nil {
		return Altitude{}, err
	}
	switch j.Unit {
	case "ft", "":
		return Feet(j.Value, ref), nil
	case "m":
		return Meters(j.Value, ref), nil
	}
	return Altitude{}, fmt.Errorf("unknown altitude unit %q", j.Unit)
}

func (p *jsonPosition) convert() (Position, error) {
	if p == nil {
		return UndefinedPosition, errors.New("missing position")
	}
	return NewPosition(p.Lat, p.Lon), nil
}

func (j jsonEdge) convert() (Edge, error) {
	switch j.Kind {
	case "vertex":
		end, err := j.End.convert()
		if err != nil {
			return nil, err
		}
		return Vertex{End: end}, nil
	case "arc":
		center, err := j.Center.convert()
		if err != nil {
			return nil, err
		}
		sign := 1
		if j.Sign < 0 {
			sign = -1
		}
		return Arc{Center: center, Sign: sign}, nil
	case "circle":
		center, err := j.Center.convert()
		if err != nil {
			return nil, err
		}
		return Circle{Center: center, Radius: NauticalMiles(j.RadiusNM)}, nil
	}
	return nil, fmt.Errorf("unknown edge kind %q", j.Kind)
}
