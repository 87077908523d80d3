package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/loggertools/asconv/internal/datafile"
	"github.com/loggertools/asconv/pkg/airspace"
	"github.com/loggertools/asconv/pkg/cenfis"
	"github.com/zerodha/logf"
)

var (
	errNoInput  = errors.New("no input filename specified")
	errNoOutput = errors.New("no output filename specified")
)

// writer is what every output format implements.
type writer interface {
	Encode(airspace.Airspace) error
	Finalize() error
}

type format struct {
	name      string
	newWriter func(w io.Writer, ko *koanf.Koanf, lo logf.Logger) (writer, error)
}

var cenfisFormat = format{
	name: "cenfis",
	newWriter: func(w io.Writer, ko *koanf.Koanf, lo logf.Logger) (writer, error) {
		cfg := []cenfis.Config{cenfis.WithLogger(lo)}
		if info := ko.String("cenfis.file_info"); info != "" {
			cfg = append(cfg, cenfis.WithFileInfo(info))
		}
		return cenfis.NewEncoder(w, cfg...)
	},
}

// formats maps format names and file extensions to output formats.
var formats = map[string]format{
	"cenfis": cenfisFormat,
	"bhf":    cenfisFormat,
	"asp":    cenfisFormat,
}

func formatByName(name string) (format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return format{}, fmt.Errorf("format %q is not supported", name)
	}
	return f, nil
}

func formatFromFilename(path string) (format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return format{}, fmt.Errorf("no filename extension in %q", path)
	}
	return formatByName(ext)
}

// run reads the airspaces from the input file and writes them in the
// configured output format.
func run(ko *koanf.Koanf, args []string, lo logf.Logger) error {
	if len(args) < 1 {
		return errNoInput
	}

	var (
		outPath   = ko.String("output.path")
		outFormat = ko.String("output.format")
	)
	if outPath == "" && outFormat == "" {
		return errNoOutput
	}

	in, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	if outPath == "" {
		f, err := formatByName(outFormat)
		if err != nil {
			return err
		}
		return convert(airspace.NewReader(in), os.Stdout, f, ko, lo)
	}

	f, err := formatFromFilename(outPath)
	if err != nil {
		return err
	}

	out, err := datafile.Create(outPath, cenfis.BankSize)
	if err != nil {
		return err
	}

	if err := convert(airspace.NewReader(in), out, f, ko, lo); err != nil {
		if derr := out.Discard(); derr != nil {
			lo.Error("error removing output file", "path", outPath, "error", derr)
		}
		return err
	}

	if ko.Bool("output.sync") {
		if err := out.Sync(); err != nil {
			return fmt.Errorf("error syncing %q: %w", outPath, err)
		}
	}
	return out.Close()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	return f, nil
}

// convert moves every airspace from r to a writer of format f on w.
func convert(r *airspace.Reader, w io.Writer, f format, ko *koanf.Koanf, lo logf.Logger) error {
	wr, err := f.newWriter(w, ko, lo)
	if err != nil {
		return err
	}

	count := 0
	for {
		as, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := wr.Encode(as); err != nil {
			return err
		}
		count++
	}

	if err := wr.Finalize(); err != nil {
		return err
	}

	lo.Info("converted airspaces", "count", count, "format", f.name)
	return nil
}
