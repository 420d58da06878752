package hotspot

import (
	"context"
	"os/exec"
	"time"
)

// Runner executes one external command and returns its combined output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner implements Runner using os/exec
type ExecRunner struct {
	// Timeout bounds each command; zero means one minute
	Timeout time.Duration
}

// Run executes name with args and returns stdout and stderr combined
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
