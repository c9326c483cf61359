package ports

import (
	"context"
	"io"
)

// RunOptions controls subprocess execution.
type RunOptions struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult carries the captured output of a finished subprocess.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// CommandRunner executes an external command and captures its output. The
// managers depend on this instead of os/exec directly so tests can fake
// the subprocess layer.
type CommandRunner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error)
}
