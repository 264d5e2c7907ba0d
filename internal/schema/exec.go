package schema

import (
	"context"
	"os/exec"
)

// Exec is an implementation wrapping external process invocation.
type Exec struct{}

// Run invokes an external executable with the given arguments, blocking until
// the process exits or the [context.Context] is canceled. It returns the
// combined standard output and standard error of the process, also in the
// failure case.
func (*Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	return cmd.CombinedOutput()
}

// LookPath wraps around [exec.LookPath].
func (*Exec) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
