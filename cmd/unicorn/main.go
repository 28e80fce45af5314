package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sayan-tan/Unicorn/internal/logging"
)

// exitError carries a process exit code out of a cobra command. A
// silent exitError skips the structured error log on the way out.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

func main() {
	code := runMain(Execute, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	if err := execute(); err != nil {
		return exitCodeForError(err, stderr)
	}
	return 0
}

func exitCodeForError(err error, stderr io.Writer) int {
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			emitCommandError(resolveErrorForExitError(ee, err), "command failed", ee.code, stderr)
		}
		return ee.code
	}

	if errors.Is(err, context.Canceled) {
		emitCommandError(err, "command canceled", 130, stderr)
		return 130
	}

	emitCommandError(err, "command failed", 1, stderr)
	return 1
}

func emitCommandError(err error, message string, exitCode int, stderr io.Writer) {
	cfg, cfgErr := logging.LoadConfigFromEnv()
	if cfgErr != nil {
		cfg = logging.DefaultConfig()
	}
	logger := logging.NewLogger(cfg, stderr, "unicorn")
	logger.Error(message, "exit_code", exitCode, "error", err)
}

func resolveErrorForExitError(ee *exitError, fallback error) error {
	if ee != nil && ee.err != nil {
		return ee.err
	}
	return fallback
}
