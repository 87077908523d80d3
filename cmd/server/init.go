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

const defaultAddress = ":6380"

// initLogger builds the server logger. Debug level also logs every
// encoded request.
func initLogger(ko *koanf.Koanf) logf.Logger {
	opts := logf.Opts{EnableCaller: true, Writer: os.Stderr}
	if ko.String("app.log") == "debug" {
		opts.Level = logf.DebugLevel
		opts.EnableColor = true
	}
	return logf.New(opts)
}

// initConfig merges the config file, ASCONV_ environment variables and
// the command line flags, in that order.
func initConfig(args []string) (*koanf.Koanf, error) {
	var (
		ko = koanf.New(".")
		f  = flag.NewFlagSet("server", flag.ContinueOnError)
	)

	f.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: server [options]")
		fmt.Fprintln(os.Stderr, f.FlagUsages())
	}

	cfgPath := f.String("config", "config.toml", "Path to a config file to load.")
	addr := f.String("address", defaultAddress, "Address to listen on.")
	debug := f.Bool("debug", false, "Enable debug logging.")

	if err := f.Parse(args); err != nil {
		return nil, err
	}

	if _, err := os.Stat(*cfgPath); err == nil || f.Changed("config") {
		if err := ko.Load(file.Provider(*cfgPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config %q: %w", *cfgPath, err)
		}
	}

	err := ko.Load(env.Provider("ASCONV_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "ASCONV_")), "__", ".", -1)
	}), nil)
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if f.Changed("address") || ko.String("server.address") == "" {
		overrides["server.address"] = *addr
	}
	if *debug {
		overrides["app.log"] = "debug"
	}
	if err := ko.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return nil, err
	}
	return ko, nil
}
