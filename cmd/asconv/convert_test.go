package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerodha/logf"
)

const input = `[
  {"name": "EDR 123", "type": "R",
   "top": {"value": 5000, "unit": "ft", "ref": "MSL"},
   "edges": [
     {"kind": "vertex", "end": {"lat": 50.0, "lon": 8.0}},
     {"kind": "vertex", "end": {"lat": 50.1, "lon": 8.2}},
     {"kind": "vertex", "end": {"lat": 50.2, "lon": 8.0}}
   ]}
]`

func testConfig(t *testing.T, conf map[string]interface{}) *koanf.Koanf {
	ko := koanf.New(".")
	require.NoError(t, ko.Load(confmap.Provider(conf, "."), nil))
	return ko
}

func TestRun(t *testing.T) {
	var (
		assert = assert.New(t)
		dir    = t.TempDir()
		in     = filepath.Join(dir, "airspace.json")
		lo     = logf.New(logf.Opts{Writer: io.Discard})
	)
	require.NoError(t, os.WriteFile(in, []byte(input), 0644))

	t.Run("NoInput", func(t *testing.T) {
		assert.ErrorIs(run(testConfig(t, nil), nil, lo), errNoInput)
	})

	t.Run("NoOutput", func(t *testing.T) {
		assert.ErrorIs(run(testConfig(t, nil), []string{in}, lo), errNoOutput)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		ko := testConfig(t, map[string]interface{}{"output.path": filepath.Join(dir, "out.txt")})
		assert.Error(run(ko, []string{in}, lo))
	})

	t.Run("MissingInput", func(t *testing.T) {
		ko := testConfig(t, map[string]interface{}{"output.path": filepath.Join(dir, "out.bhf")})
		assert.Error(run(ko, []string{filepath.Join(dir, "nope.json")}, lo))
	})

	t.Run("Convert", func(t *testing.T) {
		out := filepath.Join(dir, "out.bhf")
		ko := testConfig(t, map[string]interface{}{"output.path": out, "output.sync": true})
		assert.NoError(run(ko, []string{in}, lo))

		data, err := os.ReadFile(out)
		assert.NoError(err)
		assert.Equal(0x80f0, len(data))
	})

	t.Run("BadInputRemovesOutput", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		out := filepath.Join(dir, "bad.asp")
		require.NoError(t, os.WriteFile(bad, []byte(`[{"type": "nope"}]`), 0644))

		ko := testConfig(t, map[string]interface{}{"output.path": out})
		assert.Error(run(ko, []string{bad}, lo))
		_, err := os.Stat(out)
		assert.True(os.IsNotExist(err))
	})
}

func TestInitConfig(t *testing.T) {
	assert := assert.New(t)

	ko, args, err := initConfig([]string{"--config", "/nonexistent/config.toml", "in.json"})
	assert.Error(err)
	assert.Nil(ko)
	assert.Nil(args)

	ko, args, err = initConfig([]string{"-o", "x.bhf", "--debug", "in.json"})
	assert.NoError(err)
	assert.Equal([]string{"in.json"}, args)
	assert.Equal("debug", ko.String("app.log"))
	assert.Equal("x.bhf", ko.String("output.path"))
	assert.Empty(ko.String("output.format"))

	// The format flag is parsed last and wins over -o.
	ko, _, err = initConfig([]string{"-o", "x.bhf", "-f", "cenfis", "in.json"})
	assert.NoError(err)
	assert.Equal("cenfis", ko.String("output.format"))
	assert.Empty(ko.String("output.path"))
}
