package ports

import "io"

// Logger defines the interface for logging. Args are alternating key/value
// pairs, as in log/slog.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error, args ...any)

	// SetOutput redirects log output, used by tests and the TUI bridge.
	SetOutput(w io.Writer)
}
