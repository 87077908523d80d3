// Command server exposes the airspace encoders over the Redis protocol so
// ground tools can fetch device images without shelling out to asconv.
package main

import (
	"os"

	"github.com/tidwall/redcon"
	"github.com/zerodha/logf"
)

var (
	// Version of the build. This is injected at build-time.
	buildString = "unknown"
)

type App struct {
	lo       logf.Logger
	fileInfo string
}

func main() {
	ko, err := initConfig(os.Args[1:])
	if err != nil {
		logf.New(logf.Opts{Writer: os.Stderr}).Fatal("error loading config", "error", err)
	}

	var (
		lo   = initLogger(ko)
		addr = ko.String("server.address")
	)

	app := &App{
		lo:       lo,
		fileInfo: ko.String("cenfis.file_info"),
	}

	mux := redcon.NewServeMux()
	mux.HandleFunc("ping", app.ping)
	mux.HandleFunc("quit", app.quit)
	mux.HandleFunc("encode", app.encode)

	lo.Info("starting server", "address", addr, "version", buildString)
	if err := redcon.ListenAndServe(addr,
		mux.ServeRESP,
		func(conn redcon.Conn) bool {
			// use this function to accept or deny the connection.
			return true
		},
		func(conn redcon.Conn, err error) {
			// this is called when the connection has been closed
		},
	); err != nil {
		lo.Fatal("error starting server", "error", err)
	}
}
