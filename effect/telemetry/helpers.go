package telemetry

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewConsoleEmitter writes events to stdout with the development encoder.
func NewConsoleEmitter(opts ...EmitterOption) *Emitter {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return NewEmitter(zap.New(consoleCore), opts...)
}

// NewObservedEmitter captures events in memory so tests can assert on
// individual event fields.
func NewObservedEmitter(opts ...EmitterOption) (*Emitter, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewEmitter(zap.New(core), opts...), logs
}
