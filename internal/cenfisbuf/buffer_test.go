package cenfisbuf

import (
	"bytes"
	"testing"

	"github.com/loggertools/asconv/pkg/airspace"
	"github.com/stretchr/testify/assert"
)

func TestPrimitives(t *testing.T) {
	var (
		buf    = New()
		assert = assert.New(t)
	)

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(0, buf.Tell())
	})

	t.Run("Append", func(t *testing.T) {
		buf.AppendByte(0x01)
		buf.AppendShort(0x0203)
		buf.Append([]byte{0x04, 0x05})
		buf.AppendString("AB")
		assert.Equal([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x02, 'A', 'B'}, buf.Bytes())
		assert.Equal(8, buf.Tell())
	})

	t.Run("Fill", func(t *testing.T) {
		buf.Fill(0xee, 2)
		assert.Equal(10, buf.Tell())
		buf.FillTo(0x11, 12)
		assert.Equal([]byte{0xee, 0xee, 0x11, 0x11}, buf.Bytes()[8:])
	})

	t.Run("Patch", func(t *testing.T) {
		buf.Patch(0, 0x7f)
		assert.Equal(byte(0x7f), buf.Bytes()[0])
		assert.Panics(func() { buf.Patch(buf.Tell(), 0) })
		assert.Panics(func() { buf.Patch(-1, 0) })
	})

	t.Run("Obfuscate", func(t *testing.T) {
		o := New()
		o.Append([]byte{0x00, 0x01, 0xe2})
		o.Obfuscate(0xe2)
		assert.Equal([]byte{0xe2, 0xe3, 0x00}, o.Bytes())
	})

	t.Run("WriteTo", func(t *testing.T) {
		var out bytes.Buffer
		n, err := buf.WriteTo(&out)
		assert.NoError(err)
		assert.Equal(int64(buf.Tell()), n)
		assert.Equal(buf.Bytes(), out.Bytes())
	})
}

func TestLongString(t *testing.T) {
	buf := New()
	buf.AppendString(string(bytes.Repeat([]byte{'x'}, 300)))
	assert.Equal(t, 256, buf.Tell())
	assert.Equal(t, byte(255), buf.Bytes()[0])
}

func TestHeaderOverlay(t *testing.T) {
	var (
		buf    = NewWithHeader(4)
		assert = assert.New(t)
	)

	assert.Equal(4, buf.Tell())
	assert.Equal([]byte{0xff, 0xff, 0xff, 0xff}, buf.Bytes())

	buf.AppendByte(0x42)
	buf.SetHeader([]byte{0x00, 0x04, 0x00, 0x05})
	assert.Equal([]byte{0x00, 0x04, 0x00, 0x05, 0x42}, buf.Bytes())

	assert.Panics(func() { buf.SetHeader([]byte{0x00}) })
}

func TestDomainAppenders(t *testing.T) {
	assert := assert.New(t)

	t.Run("Position", func(t *testing.T) {
		buf := New()
		// 1 degree north, 1 arc second west.
		buf.AppendPosition(airspace.Position{Latitude: 60000, Longitude: -17})
		assert.Equal([]byte{0x00, 0x00, 0x0e, 0x10, 0xff, 0xff, 0xff, 0xff}, buf.Bytes())
	})

	t.Run("Delta", func(t *testing.T) {
		buf := New()
		ref := airspace.NewPosition(50, 8)
		p := airspace.Position{Latitude: ref.Latitude + 1000, Longitude: ref.Longitude - 2000}
		buf.AppendDelta(p, ref)
		// 1 arc minute = 60 arc seconds, -2 arc minutes = -120.
		assert.Equal([]byte{0x00, 0x3c, 0xff, 0x88}, buf.Bytes())
	})

	t.Run("Altitude", func(t *testing.T) {
		buf := New()
		buf.AppendAltitude(airspace.Feet(5000, airspace.RefMSL))
		assert.Equal([]byte{0x13, 0x88, byte(airspace.RefMSL)}, buf.Bytes())

		buf = New()
		buf.AppendAltitude(airspace.Meters(1000, airspace.RefGND))
		assert.Equal([]byte{0x0c, 0xd1, byte(airspace.RefGND)}, buf.Bytes())
	})

	t.Run("Frequency", func(t *testing.T) {
		buf := New()
		buf.AppendFrequency(airspace.Frequency(123450))
		assert.Equal([]byte{123, 0x01, 0xc2}, buf.Bytes())
	})

	t.Run("Distance", func(t *testing.T) {
		buf := New()
		buf.AppendDistance(airspace.NauticalMiles(2.5))
		assert.Equal([]byte{0x00, 0xfa}, buf.Bytes())

		buf = New()
		buf.AppendDistance(airspace.NauticalMiles(1000))
		assert.Equal([]byte{0xff, 0xff}, buf.Bytes())
	})

	t.Run("Anchor", func(t *testing.T) {
		buf := New()
		buf.AppendAnchor(-1, 2)
		assert.Equal([]byte{0x04, 0xff, 0xff, 0x00, 0x02}, buf.Bytes())
	})
}
