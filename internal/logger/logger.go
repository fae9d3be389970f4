// Package logger provides levelled logging for the Bong-Lore backend.
// Debug messages are only emitted in verbose mode (the --verbose flag) and
// help operators follow the enrichment pipeline call by call.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger settings.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is "text" (console) or "json".
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	mu      sync.RWMutex
	verbose bool
	level             = zerolog.InfoLevel
	format            = "text"
	output  io.Writer = os.Stderr
	log     zerolog.Logger
)

func init() {
	rebuild()
}

// Init applies cfg to the package logger.
func Init(cfg Config) error {
	lvl := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		lvl = parsed
	}

	f := strings.ToLower(cfg.Format)
	switch f {
	case "", "text", "console":
		f = "text"
	case "json":
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	mu.Lock()
	defer mu.Unlock()
	level = lvl
	format = f
	if cfg.Output != nil {
		output = cfg.Output
	}
	rebuild()
	return nil
}

// rebuild recreates the zerolog logger. Callers must hold mu.
func rebuild() {
	w := output
	if format == "text" {
		w = zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: time.RFC3339}
	}
	lvl := level
	if verbose {
		lvl = zerolog.DebugLevel
	}
	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// Logger returns a copy of the underlying zerolog logger tagged with component.
func Logger(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.With().Str("component", component).Logger()
}

// Debug logs a message when verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Section logs a section header when verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Str("section", name).Msgf("=== %s ===", name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error().Msgf(format, args...)
}
