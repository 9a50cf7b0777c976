// Package logging provides pfqcore's leveled, rate-limited logger: a thin
// wrapper over a zap sugared logger (Default, SetDefault,
// Debugf/Infof/Warnf/Errorf) plus a per-key rate limiter for packet-path
// call sites.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Logger wraps a zap.SugaredLogger and adds a per-key rate limiter for
// the advisory, best-effort logging the log_msg/log_buff/log_packet
// combinators do: emission is rate-limited at source, no structured sink
// is assumed to always be listening.
type Logger struct {
	sugar *zap.SugaredLogger

	mu   sync.Mutex
	next map[string]time.Time
}

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// New wraps the given zap logger. A nil logger falls back to zap's
// production logger (or a no-op logger if that cannot be built) so call
// sites never need a nil check.
func New(base *zap.Logger) *Logger {
	if base == nil {
		base, _ = zap.NewProduction()
	}
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{
		sugar: base.Sugar(),
		next:  make(map[string]time.Time),
	}
}

// Default returns the process-wide default logger, creating a no-op one on
// first use so library code never has to guard against a nil logger.
func Default() *Logger {
	defaultMu.RLock()
	if defaultLogger != nil {
		defer defaultMu.RUnlock()
		return defaultLogger
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(zap.NewNop())
	}
	return defaultLogger
}

// SetDefault installs l as the process-wide default logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

func (l *Logger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Limited reports whether a caller tagged with key may log now, given a
// minimum spacing of everyMillis between admitted log calls under that key.
// A non-positive everyMillis always admits.
func (l *Logger) Limited(key string, everyMillis int64) bool {
	if everyMillis <= 0 {
		return true
	}
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if deadline, ok := l.next[key]; ok && now.Before(deadline) {
		return false
	}
	l.next[key] = now.Add(time.Duration(everyMillis) * time.Millisecond)
	return true
}

// Sync flushes any buffered log entries. Call before process exit.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
