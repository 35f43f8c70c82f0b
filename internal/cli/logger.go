package cli

import (
	"fmt"

	"github.com/tacogips/crossgen/internal/debug"
)

// consoleLogger reports generator progress through the CLI output helpers.
type consoleLogger struct{}

func newConsoleLogger() *consoleLogger {
	return &consoleLogger{}
}

func (l *consoleLogger) Debugf(format string, args ...any) {
	debug.Debug("[generator] "+format, args...)
}

func (l *consoleLogger) Infof(format string, args ...any) {
	printInfo(fmt.Sprintf(format, args...))
}

func (l *consoleLogger) Warnf(format string, args ...any) {
	printWarning(fmt.Sprintf(format, args...))
}

func (l *consoleLogger) Errorf(format string, args ...any) {
	printErrorMsg(fmt.Sprintf(format, args...))
}
