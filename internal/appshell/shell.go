// Package appshell wires a command's run function to the process: signals,
// standard streams and the exit status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the shape of app.RunContext.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs fn with os.Args and exits with its status.
func Main(fn RunFunc) {
	os.Exit(Run(context.Background(), fn, os.Args[1:], os.Stdout, os.Stderr))
}

// Run calls fn under a context cancelled by SIGINT/SIGTERM. A run that was
// interrupted but reported success exits 130.
func Run(parent context.Context, fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
