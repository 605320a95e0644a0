// Package execution runs packed hook commands through the shell, serially
// or with bounded parallelism, and collects their output.
package execution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Batch is one hook's set of commands plus the environment they run in.
type Batch struct {
	Commands []string
	WorkDir  string
	EnvSet   map[string]string
	EnvUnset []string
	Verbose  bool
	Serial   bool
}

// CommandResult captures one command's outcome. Err is set only when the
// command could not be started; a hook that ran and failed reports
// through ExitCode.
type CommandResult struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Failed reports whether the command did not complete successfully.
func (r CommandResult) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// Run executes every command of the batch, serially when the hook demands
// it and otherwise with one worker per CPU. Results keep the order of
// batch.Commands regardless of completion order.
func Run(ctx context.Context, batch Batch) []CommandResult {
	results := make([]CommandResult, len(batch.Commands))

	if batch.Serial {
		for i, command := range batch.Commands {
			results[i] = runOne(ctx, batch, command)
		}
		return results
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, command := range batch.Commands {
		g.Go(func() error {
			results[i] = runOne(ctx, batch, command)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, results carry them

	return results
}

// runOne dispatches a single command through `sh -c` with the batch's
// environment overlay applied.
func runOne(ctx context.Context, batch Batch, command string) CommandResult {
	result := CommandResult{Command: command}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = batch.WorkDir
	cmd.Env = overlayEnv(batch.EnvSet, batch.EnvUnset)

	var stdout, stderr strings.Builder
	if batch.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	// Output may be arbitrary bytes; keep it displayable.
	result.Stdout = strings.ToValidUTF8(stdout.String(), "�")
	result.Stderr = strings.ToValidUTF8(stderr.String(), "�")

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.Err = fmt.Errorf("failed to run command: %w", err)
		}
	}

	return result
}

// overlayEnv builds the child environment: the inherited environment minus
// the unset keys, with the set keys applied on top.
func overlayEnv(set map[string]string, unset []string) []string {
	env := make([]string, 0, len(os.Environ())+len(set))
	for _, entry := range os.Environ() {
		key, _, _ := strings.Cut(entry, "=")
		if slices.Contains(unset, key) {
			continue
		}
		if _, overridden := set[key]; overridden {
			continue
		}
		env = append(env, entry)
	}
	for key, value := range set {
		env = append(env, key+"="+value)
	}
	return env
}

// Summarize reports whether every command of every result succeeded.
func Summarize(results []CommandResult) bool {
	for _, result := range results {
		if result.Failed() {
			return false
		}
	}
	return true
}

// LogFailures writes each failed command's output through the logger,
// prefixed with the command so interleaved batches stay attributable.
func LogFailures(logger *slog.Logger, results []CommandResult) {
	for _, result := range results {
		if !result.Failed() {
			continue
		}
		if result.Err != nil {
			logger.Error("command failed to start",
				"command", result.Command, "error", result.Err)
			continue
		}
		logger.Error("command failed",
			"command", result.Command, "exit_code", result.ExitCode)
		if out := strings.TrimRight(result.Stdout, "\n"); out != "" {
			for _, line := range strings.Split(out, "\n") {
				logger.Info(line)
			}
		}
		if errOut := strings.TrimRight(result.Stderr, "\n"); errOut != "" {
			for _, line := range strings.Split(errOut, "\n") {
				logger.Warn(line)
			}
		}
	}
}
