package main

import (
	"context"
	"io"
	"os"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"sprinter/internal/cli"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	// Replaced by the configured log file once flags are parsed
	logger := pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	ctx = pslog.ContextWithLogger(ctx, logger)
	return cli.Execute(ctx, os.Args[1:])
}
