// Package runner provides the os/exec implementation of
// ports.CommandRunner.
package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/bmaertens/upkeep/internal/ports"
)

type CmdRunner struct{}

var _ ports.CommandRunner = CmdRunner{}

func NewCmdRunner() CmdRunner {
	return CmdRunner{}
}

func (CmdRunner) Run(ctx context.Context, command string, args []string, opts ports.RunOptions) (ports.RunResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	stdoutWriter := io.Writer(&stdoutBuf)
	if opts.Stdout != nil {
		stdoutWriter = io.MultiWriter(&stdoutBuf, opts.Stdout)
	}
	stderrWriter := io.Writer(&stderrBuf)
	if opts.Stderr != nil {
		stderrWriter = io.MultiWriter(&stderrBuf, opts.Stderr)
	}

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	err := cmd.Run()
	return ports.RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}, err
}
