// Package logger builds the process-wide zap logger. Each binary names
// itself so server, sweeper and worker entries can be told apart when they
// share a sink.
package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger

// NewLogger returns a production logger that tags every entry with the
// service name, and installs it as the package-level Log.
func NewLogger(service string) *zap.Logger {
	l, err := zap.NewProduction(zap.Fields(zap.String("service", service)))
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}
