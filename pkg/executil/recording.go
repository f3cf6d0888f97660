package executil

import (
	"context"
	"strings"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir  string
	Cmd  string
	Args []string
}

// Line returns the command and its arguments joined by single spaces.
func (c RecordedCommand) Line() string {
	return strings.Join(append([]string{c.Cmd}, c.Args...), " ")
}

// RecordingExecutor captures commands for testing.
//
// Outputs and Errors are looked up by the most specific key first: the full
// command line ("git rev-parse --verify main"), then the command with its first
// argument ("git rev-parse"), then the bare command name ("git").
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	Outputs map[string][]byte
	Errors  map[string]error
}

func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record("", cmd, args...)
}

func (e *RecordingExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return e.record(dir, cmd, args...)
}

func (e *RecordingExecutor) record(dir, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rc := RecordedCommand{Dir: dir, Cmd: cmd, Args: args}
	e.Commands = append(e.Commands, rc)

	keys := []string{rc.Line()}
	if len(args) > 0 {
		keys = append(keys, cmd+" "+args[0])
	}
	keys = append(keys, cmd)

	for _, k := range keys {
		if err, ok := e.Errors[k]; ok {
			return nil, err
		}
		if out, ok := e.Outputs[k]; ok {
			return out, nil
		}
	}
	return nil, nil
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
