package main

import (
	"fmt"
	"os"

	"github.com/ljpx/logging"
)

// stdoutLogger writes coordinator progress to standard output.
type stdoutLogger struct{}

var _ logging.Logger = &stdoutLogger{}

func (l *stdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}
