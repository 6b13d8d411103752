package main

import (
	"fmt"
	"os"
	"strings"
)

// stderrLogger adapts the guard's logger interface to plain stderr lines.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, keysAndValues ...interface{}) {
	// Demo output stays quiet at debug level.
}

func (stderrLogger) Info(msg string, keysAndValues ...interface{}) {
	logLine("INFO", msg, keysAndValues)
}

func (stderrLogger) Error(msg string, keysAndValues ...interface{}) {
	logLine("ERROR", msg, keysAndValues)
}

func logLine(level, msg string, keysAndValues []interface{}) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", level, msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	fmt.Fprintln(os.Stderr, sb.String())
}
