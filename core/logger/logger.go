package logger

import (
	"fmt"
	"strings"

	"storage-kit/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a logger from cfg. The debug level selects zap's development preset,
// which adds caller info and ISO8601 timestamps.
func New(cfg *Config) (*zap.Logger, error) {
	zc, err := zapConfig(cfg)
	if err != nil {
		return nil, err
	}
	return zc.Build()
}

// NewConsole returns a colored debug logger for reporting CLI failures.
func NewConsole() (*zap.Logger, error) {
	return New(&Config{Level: "debug", Format: FormatConsole})
}

func zapConfig(cfg *Config) (zap.Config, error) {
	name := cfg.Level
	if name == "" {
		name = "info"
	}
	level, err := zap.ParseAtomicLevel(name)
	if err != nil {
		return zap.Config{}, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if level.Level() == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level

	switch strings.ToLower(cfg.Format) {
	case "", FormatJSON:
		zc.Encoding = FormatJSON
	case FormatConsole:
		zc.Encoding = FormatConsole
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	default:
		return zap.Config{}, fmt.Errorf("log format %q: want json or console", cfg.Format)
	}

	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.MessageKey = "message"
	return zc, nil
}

// WithRayID tags l with the request's ray id when the rayid middleware set one.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals(rayid.LocalsKey).(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
