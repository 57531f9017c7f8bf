package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// MaxOutputBytes caps each captured stream.
const MaxOutputBytes = 1 << 20

const truncatedMarker = "\n[output truncated]"

// Result is the outcome of one finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports a zero exit status.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes a program synchronously.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// PathResolver reports whether an executable can be found on PATH.
type PathResolver func(name string) (string, error)

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	// Timeout bounds every call when positive. Zero leaves calls unbounded,
	// which installs and updates rely on.
	Timeout time.Duration
}

// NewExecRunner creates a runner with an optional per-call timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run starts name with args, waits for it and returns the captured streams.
// The returned error is non-nil only if the process could not be started or
// was killed because ctx ended.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	stdout := &limitWriter{buf: &stdoutBuf, limit: MaxOutputBytes}
	stderr := &limitWriter{buf: &stderrBuf, limit: MaxOutputBytes}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return res, fmt.Errorf("%s: %w", name, ctx.Err())
		}
		return res, fmt.Errorf("failed to start %s: %w", name, err)
	}

	return res, nil
}

// limitWriter stops buffering after limit bytes but keeps counting so the
// caller can tell the stream was cut.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
	n     int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.n
	w.n += len(p)
	if remaining > 0 {
		if len(p) > remaining {
			w.buf.Write(p[:remaining])
		} else {
			w.buf.Write(p)
		}
	}
	return len(p), nil
}

func (w *limitWriter) String() string {
	if w.n > w.limit {
		return w.buf.String() + truncatedMarker
	}
	return w.buf.String()
}

// LookPath is the default PathResolver.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
