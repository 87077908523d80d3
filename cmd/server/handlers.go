package main

import (
	"bytes"
	"fmt"

	"github.com/loggertools/asconv/pkg/airspace"
	"github.com/loggertools/asconv/pkg/cenfis"
	"github.com/tidwall/redcon"
)

func (app *App) ping(conn redcon.Conn, cmd redcon.Command) {
	conn.WriteString("PONG")
}

func (app *App) quit(conn redcon.Conn, cmd redcon.Command) {
	conn.WriteString("OK")
	conn.Close()
}

// encode takes a JSON airspace list and replies with the Cenfis image:
//
//	ENCODE <json>
func (app *App) encode(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 2 {
		conn.WriteError("ERR wrong number of arguments for '" + string(cmd.Args[0]) + "' command")
		return
	}

	image, count, err := app.encodeCenfis(cmd.Args[1])
	if err != nil {
		app.lo.Error("error encoding airspaces", "error", err)
		conn.WriteError(fmt.Sprintf("ERR %s", err))
		return
	}

	app.lo.Debug("encoded airspaces", "count", count, "size", len(image))
	conn.WriteBulk(image)
}

func (app *App) encodeCenfis(list []byte) ([]byte, int, error) {
	var out bytes.Buffer

	cfg := []cenfis.Config{cenfis.WithLogger(app.lo)}
	if app.fileInfo != "" {
		cfg = append(cfg, cenfis.WithFileInfo(app.fileInfo))
	}
	enc, err := cenfis.NewEncoder(&out, cfg...)
	if err != nil {
		return nil, 0, err
	}

	// Requests are small, so the whole list is decoded before encoding
	// starts and a malformed request encodes nothing.
	all, err := airspace.NewReader(bytes.NewReader(list)).ReadAll()
	if err != nil {
		return nil, 0, err
	}
	for _, as := range all {
		if err := enc.Encode(as); err != nil {
			return nil, 0, err
		}
	}

	if err := enc.Finalize(); err != nil {
		return nil, 0, err
	}
	return out.Bytes(), enc.Count(), nil
}
