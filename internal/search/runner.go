package search

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunOutput is the captured outcome of one external process run.
type RunOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner spawns the external search process. A non-zero exit is reported in
// RunOutput.ExitCode, not as an error; the error return is reserved for
// failing to start the process at all. Tests substitute a Runner that
// returns scripted output without touching the filesystem.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (RunOutput, error)
}

// execRunner is the production Runner backed by os/exec. The spawned process
// gets no controlling terminal; stdout and stderr are captured in full. The
// context is deliberately not wired to the process: a caller that goes away
// mid-search must not kill the engine, the run completes and its result is
// discarded.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (RunOutput, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := RunOutput{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, err
	}
	return out, nil
}
