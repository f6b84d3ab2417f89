package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logFile *os.File

// newLogger builds the process logger from --log-level and --log-file.
// Without a log file, logs go to stderr for headless commands and are
// discarded otherwise so they cannot corrupt the alt screen.
func newLogger(headless bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		logFile = f
		w = f
	case headless:
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	}), nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
