package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config describes how the process-wide logger is built
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config for the given deployment environment.
// Source locations are only attached in development.
func NewConfig(level, format, serviceName, version, environment string) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   IsDevelopment(environment),
	}
}

// IsDevelopment reports whether env names a local development environment
func IsDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case EnvironmentDev, EnvironmentDevelopment:
		return true
	}
	return false
}

var levels = map[string]slog.Level{
	LevelDebug:   slog.LevelDebug,
	LevelInfo:    slog.LevelInfo,
	LevelWarn:    slog.LevelWarn,
	LevelWarning: slog.LevelWarn,
	LevelError:   slog.LevelError,
}

// LogLevel maps Level onto slog; unknown names log at info
func (c Config) LogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

// newHandler builds the slog handler for w, tagged with the service identity
func (c Config) newHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.LogLevel(), AddSource: c.AddSource}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if c.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	}
	return h.WithAttrs([]slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	})
}
