package datafile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBankPadding(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, BankPadding(0, 0x10, 0x20))
	assert.Equal(0, BankPadding(0x10, 0x10, 0x20), "ending on the boundary is fine")
	assert.Equal(0x0f, BankPadding(0x11, 0x10, 0x20))
	assert.Equal(0, BankPadding(0x20, 0x20, 0x20))
	assert.Equal(0, BankPadding(0x1f, 0, 0x20))
	assert.Equal(0, BankPadding(0x1f, 4, 0))
}

func TestWriteAligned(t *testing.T) {
	var (
		out    bytes.Buffer
		df     = New(&out, 8)
		assert = assert.New(t)
	)

	t.Run("Write", func(t *testing.T) {
		n, err := df.Write([]byte{1, 2, 3, 4, 5})
		assert.NoError(err)
		assert.Equal(5, n)
		assert.Equal(5, df.Offset())
	})

	t.Run("Pad", func(t *testing.T) {
		pos, err := df.WriteAligned([]byte{6, 7, 8, 9})
		assert.NoError(err)
		assert.Equal(8, pos)
		assert.Equal([]byte{1, 2, 3, 4, 5, 0xff, 0xff, 0xff, 6, 7, 8, 9}, out.Bytes())
	})

	t.Run("NoPad", func(t *testing.T) {
		pos, err := df.WriteAligned([]byte{10, 11, 12, 13})
		assert.NoError(err)
		assert.Equal(12, pos)
		assert.Equal(16, df.Offset())
	})
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteError(t *testing.T) {
	df := New(failWriter{}, 8)
	_, err := df.Write([]byte{1})
	assert.Error(t, err)
	assert.Equal(t, 0, df.Offset())
}

func TestCreate(t *testing.T) {
	var (
		assert = assert.New(t)
		path   = filepath.Join(t.TempDir(), "out.bhf")
	)

	df, err := Create(path, 0x8000)
	assert.NoError(err)
	assert.Equal(path, df.Name())

	t.Run("Locked", func(t *testing.T) {
		_, err := Create(path, 0x8000)
		assert.Error(err)
	})

	t.Run("Write", func(t *testing.T) {
		_, err := df.Write([]byte("data"))
		assert.NoError(err)
		assert.NoError(df.Sync())
		assert.NoError(df.Close())

		got, err := os.ReadFile(path)
		assert.NoError(err)
		assert.Equal("data", string(got))
	})

	t.Run("Discard", func(t *testing.T) {
		df, err := Create(path, 0x8000)
		assert.NoError(err)
		assert.NoError(df.Discard())
		_, err = os.Stat(path)
		assert.True(os.IsNotExist(err))
	})
}
