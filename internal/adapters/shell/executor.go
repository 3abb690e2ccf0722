// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec. The unit's command is
// opaque to the cache and is handed to the shell verbatim.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs the unit's command with workDir as the working directory.
// Stdout and stderr stream to the logger line by line; when the context
// carries a telemetry vertex, they also stream to it.
func (e *Executor) Execute(ctx context.Context, unit *domain.WorkUnit, workDir string) error {
	if strings.TrimSpace(unit.Command) == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", unit.Command) //nolint:gosec // user provided command
	cmd.Dir = workDir
	cmd.Env = os.Environ()

	stdout := &logWriter{logger: e.logger, key: unit.Key, level: "info"}
	stderr := &logWriter{logger: e.logger, key: unit.Key, level: "error"}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(stdout, v.Stdout())
		cmd.Stderr = io.MultiWriter(stderr, v.Stderr())
	}

	err := cmd.Run()
	stdout.flush()
	stderr.flush()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "key", unit.Key), "exit_code", exitCode)
	}
	return nil
}

// logWriter turns a byte stream into one log record per line. Commands
// write in arbitrary chunks, so partial lines are buffered until their
// newline arrives; flush emits whatever remains once the command is done.
type logWriter struct {
	logger ports.Logger
	key    string
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.log(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) flush() {
	if len(w.buf) == 0 {
		return
	}
	w.log(string(w.buf))
	w.buf = nil
}

func (w *logWriter) log(line string) {
	if w.level == "info" {
		w.logger.Info(line, "key", w.key)
	} else {
		w.logger.Warn(line, "key", w.key)
	}
}

