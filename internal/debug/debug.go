// Package debug prints timestamped diagnostics to stderr when enabled with
// --debug.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func emit(highlight, rest string) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	if noColor {
		fmt.Fprintf(out, "[DEBUG] %s %s%s\n", timestamp, highlight, rest)
		return
	}
	if highlight != "" {
		highlight = colorCyan + highlight + colorReset
	}
	fmt.Fprintf(out, "%s[DEBUG]%s %s%s%s %s%s\n",
		colorCyan, colorReset, colorGray, timestamp, colorReset, highlight, rest)
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	emit("", fmt.Sprintf(format, args...))
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	emit("=== "+section+" ===", "")
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	emit(key, fmt.Sprintf(" = %v", value))
}
