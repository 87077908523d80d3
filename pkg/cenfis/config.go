package cenfis

import (
	"github.com/zerodha/logf"
)

const defaultFileInfo = "ASP_X304.BHF29-7-2007   "

// Options represents configuration options for an Encoder.
type Options struct {
	debug    bool         // Enable debug logging.
	logger   *logf.Logger // Use this logger instead of building one.
	fileInfo string       // Identification string written into the first record.
}

// Config is a function on the Options for an Encoder.
type Config func(*Options) error

// DefaultOptions returns the options used when no Config is given.
func DefaultOptions() *Options {
	return &Options{
		fileInfo: defaultFileInfo,
	}
}

// WithDebug enables debug logging on the built-in logger.
func WithDebug() Config {
	return func(o *Options) error {
		o.debug = true
		return nil
	}
}

// WithLogger makes the encoder log to lo.
func WithLogger(lo logf.Logger) Config {
	return func(o *Options) error {
		o.logger = &lo
		return nil
	}
}

// WithFileInfo replaces the 24 character device identification string.
// Shorter strings are padded with spaces, longer ones are rejected.
func WithFileInfo(info string) Config {
	return func(o *Options) error {
		if len(info) > len(defaultFileInfo) {
			return ErrFileInfoTooLong
		}
		for len(info) < len(defaultFileInfo) {
			info += " "
		}
		o.fileInfo = info
		return nil
	}
}

// initLogger initializes logger instance.
func initLogger(debug bool) logf.Logger {
	opts := logf.Opts{EnableCaller: true}
	if debug {
		opts.Level = logf.DebugLevel
	}
	return logf.New(opts)
}
