// Package runlog captures the ordered, timestamped execution log that
// accompanies every run report.
package runlog

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log accumulates human-readable log lines for one run. Lines are encoded by
// a zap console core with ISO8601 timestamps and captured in order instead of
// going to a terminal, so the finished report can carry the full log.
type Log struct {
	mu     sync.Mutex
	lines  []string
	logger *zap.SugaredLogger
}

func New() *Log {
	l := &Log{}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.LevelKey = "level"
	cfg.MessageKey = "msg"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(&lineCapture{log: l}),
		zap.DebugLevel,
	)
	l.logger = zap.New(core).Sugar()
	return l
}

func (l *Log) Infof(format string, args ...any)  { l.logger.Infof(format, args...) }
func (l *Log) Warnf(format string, args ...any)  { l.logger.Warnf(format, args...) }
func (l *Log) Errorf(format string, args ...any) { l.logger.Errorf(format, args...) }

// Append adds already-formatted lines, preserving their order. Used to stitch
// per-call logs back into the run log in deterministic order.
func (l *Log) Append(lines ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, lines...)
}

// Lines returns a copy of everything logged so far, in order.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Text renders the log as one newline-joined string.
func (l *Log) Text() string {
	return strings.Join(l.Lines(), "\n")
}

// lineCapture is the zap WriteSyncer backing a Log. The console encoder
// flushes one encoded entry per Write call, trailing newline included.
type lineCapture struct {
	log *Log
}

func (c *lineCapture) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if line != "" {
		c.log.Append(line)
	}
	return len(p), nil
}

func (c *lineCapture) Sync() error { return nil }

var _ fmt.Stringer = (*Log)(nil)

func (l *Log) String() string { return l.Text() }
