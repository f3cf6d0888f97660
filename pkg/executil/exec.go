// Package executil provides process execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs external commands.
type Executor interface {
	// Run executes a command and returns its stdout.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunDir executes a command in a specific directory and returns its stdout.
	RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual commands.
type RealExecutor struct{}

func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.RunDir(ctx, "", cmd, args...)
}

// RunDir executes cmd in dir (empty means inherit cwd). Stdout is returned
// untouched so callers can parse it; on failure stderr becomes the error
// message, capped at 500 bytes. The original *exec.ExitError is preserved via
// wrapping so callers can inspect exit codes with errors.As.
func (e *RealExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	if dir != "" {
		c.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &limitedWriter{buf: &stderr, max: maxStderrLen}

	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return stdout.Bytes(), fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return stdout.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
	}
	return stdout.Bytes(), nil
}

// Available reports whether cmd resolves to an executable on PATH.
func Available(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
