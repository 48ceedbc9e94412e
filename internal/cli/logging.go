package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"pkt.systems/pslog"

	"sprinter/internal/config"
)

// newLogger writes structured logs to the configured file. The terminal
// belongs to the picker, so without a file logs are discarded.
func newLogger(cfg *config.Config) (pslog.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	opts := pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return pslog.NewWithOptions(w, opts), closeFn, nil
}

// bridgeStdLog routes the standard logger into logger until the returned
// function is called
func bridgeStdLog(logger pslog.Logger) func() {
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)
	return func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	}
}
