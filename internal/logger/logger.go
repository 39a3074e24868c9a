// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	mu    sync.RWMutex
	once  sync.Once
)

// Init initializes the global logger for the given environment and level.
// "production" uses a JSON encoder, "test" discards output, anything else
// uses a human-readable console encoder. An empty or unknown level keeps the
// environment's default.
func Init(env, level string) {
	once.Do(func() {
		Set(build(env, level))
	})
}

func build(env, level string) *zap.SugaredLogger {
	var cfg zap.Config
	switch env {
	case "production":
		cfg = zap.NewProductionConfig()
	case "test":
		return zap.NewNop().Sugar()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	base, err := cfg.Build()
	if err != nil {
		// Fallback to nop logger if initialization fails.
		base = zap.NewNop()
	}
	return base.Sugar()
}

// Set replaces the global logger.
func Set(l *zap.SugaredLogger) {
	mu.Lock()
	sugar = l
	mu.Unlock()
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l == nil {
		Init("development", "")
		mu.RLock()
		l = sugar
		mu.RUnlock()
	}
	return l
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}
