package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/zerodha/logf"
)

// initLogger initializes logger instance.
func initLogger(ko *koanf.Koanf) logf.Logger {
	opts := logf.Opts{EnableCaller: true, Writer: os.Stderr}
	if ko.String("app.log") == "debug" {
		opts.Level = logf.DebugLevel
		opts.EnableColor = true
	}
	return logf.New(opts)
}

// initConfig loads config to `ko` object and returns the positional
// arguments.
func initConfig(args []string) (*koanf.Koanf, []string, error) {
	var (
		ko = koanf.New(".")
		f  = flag.NewFlagSet("asconv", flag.ContinueOnError)
	)

	// Configure Flags.
	f.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: asconv [options] FILE")
		fmt.Fprintln(os.Stderr, f.FlagUsages())
	}

	cfgPath := f.String("config", "config.toml", "Path to a config file to load.")
	out := f.StringP("output", "o", "", "Write output to this file.")
	format := f.StringP("format", "f", "", "Write output to stdout with this format.")
	debug := f.Bool("debug", false, "Enable debug logging.")

	// Parse and Load Flags.
	if err := f.Parse(args); err != nil {
		return nil, nil, err
	}

	// The config file is optional unless asked for explicitly.
	if _, err := os.Stat(*cfgPath); err == nil || f.Changed("config") {
		if err := ko.Load(file.Provider(*cfgPath), toml.Parser()); err != nil {
			return nil, nil, fmt.Errorf("error loading config %q: %w", *cfgPath, err)
		}
	}

	err := ko.Load(env.Provider("ASCONV_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "ASCONV_")), "__", ".", -1)
	}), nil)
	if err != nil {
		return nil, nil, err
	}

	// Flags override the file and the environment. -o and -f exclude
	// each other, the one given wins.
	overrides := map[string]interface{}{}
	if f.Changed("output") {
		overrides["output.path"] = *out
		overrides["output.format"] = ""
	}
	if f.Changed("format") {
		overrides["output.format"] = *format
		overrides["output.path"] = ""
	}
	if *debug {
		overrides["app.log"] = "debug"
	}
	if err := ko.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return nil, nil, err
	}

	return ko, f.Args(), nil
}
