// SPDX-License-Identifier: MPL-2.0

// Package executor runs a targeted terraform operation as a supervised child
// process. An interrupt while the child runs forwards a termination request
// to it and reports the invocation as cancelled rather than failed.
package executor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sync/atomic"

	"tfocus/pkg/terraform"
)

var (
	// ErrNoTargets is returned when an invocation would run without a
	// single -target flag. Blanket, untargeted operations are disallowed.
	ErrNoTargets = errors.New("no targets specified")

	// ErrNoResources is returned when the working directory cannot be
	// resolved because no resources were selected.
	ErrNoResources = errors.New("no resources specified")

	// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
	ErrCommandFailed = errors.New("terraform command failed")
)

type (
	// Outcome is the tri-state result of one invocation. Cancellation is a
	// distinct outcome, not an error: downstream tooling must be able to
	// tell "the user stopped this on purpose" apart from "terraform failed".
	Outcome int

	// CommandFailedError is returned when terraform exits non-zero.
	CommandFailedError struct {
		Operation terraform.Operation
		ExitCode  int
	}

	// Invocation supervises one terraform run. The running flag and child
	// process pointer are the only state shared with the asynchronous
	// signal handler; both are accessed atomically and live no longer than
	// the invocation itself.
	Invocation struct {
		// Bin is the terraform executable to invoke, resolved via PATH.
		Bin string

		running atomic.Bool
		child   atomic.Pointer[os.Process]
	}
)

const (
	// OutcomeSucceeded means the child exited zero with no cancellation.
	OutcomeSucceeded Outcome = iota
	// OutcomeCancelled means the user interrupted the run.
	OutcomeCancelled
	// OutcomeFailed means the child could not be run or exited non-zero.
	OutcomeFailed
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("terraform %s failed with exit status %d", e.Operation, e.ExitCode)
}

// Unwrap returns ErrCommandFailed so callers can use errors.Is.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }

// NewInvocation creates an Invocation running the given terraform binary
// ("terraform" when empty).
func NewInvocation(bin string) *Invocation {
	if bin == "" {
		bin = "terraform"
	}
	inv := &Invocation{Bin: bin}
	inv.running.Store(true)
	return inv
}

// TargetOptions converts the selected resources into -target flags, one per
// resource in input order.
func TargetOptions(resources []terraform.Resource) ([]string, error) {
	if len(resources) == 0 {
		return nil, ErrNoTargets
	}
	options := make([]string, len(resources))
	for i, r := range resources {
		options[i] = "-target=" + r.TargetString()
	}
	return options, nil
}

// WorkingDirectory resolves the directory terraform runs in: the parent
// directory of the first selected resource's file.
func WorkingDirectory(resources []terraform.Resource) (string, error) {
	if len(resources) == 0 {
		return "", ErrNoResources
	}
	return filepath.Dir(resources[0].FilePath), nil
}

// Run executes the operation with the given target flags in workDir,
// inheriting the parent's stdio. It blocks until the child exits; there is
// no timeout. Apply runs unattended with -auto-approve, since the targets
// were already chosen interactively.
func (inv *Invocation) Run(op terraform.Operation, targetOptions []string, workDir string) (Outcome, error) {
	disarm := inv.armSignalHandler()
	defer disarm()

	args := make([]string, 0, len(targetOptions)+2)
	args = append(args, op.String())
	args = append(args, targetOptions...)
	if op == terraform.OperationApply {
		args = append(args, "-auto-approve")
	}

	cmd := exec.Command(inv.Bin, args...)
	cmd.Dir = workDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Debug("executing terraform command", "bin", inv.Bin, "args", args, "dir", workDir)

	if err := cmd.Start(); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to launch %s: %w", inv.Bin, err)
	}
	inv.child.Store(cmd.Process)

	err := cmd.Wait()

	// Once the user asked to abort, the child's own status is irrelevant.
	if !inv.running.Load() {
		return OutcomeCancelled, nil
	}
	if err == nil {
		return OutcomeSucceeded, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		failure := &CommandFailedError{Operation: op, ExitCode: exitErr.ExitCode()}
		slog.Error("terraform command failed", "operation", op.String(), "exit_code", exitErr.ExitCode())
		return OutcomeFailed, failure
	}
	return OutcomeFailed, fmt.Errorf("failed to wait for %s: %w", inv.Bin, err)
}

// armSignalHandler subscribes to interrupts for the duration of the run and
// returns the function that unsubscribes. The handler goroutine never blocks
// on the main flow; it only flips the running flag and signals the child.
func (inv *Invocation) armSignalHandler() func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigCh:
			inv.cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// cancel marks the invocation as interrupted and asks the child, if one has
// been spawned, to terminate.
func (inv *Invocation) cancel() {
	inv.running.Store(false)
	if p := inv.child.Load(); p != nil {
		if err := terminateProcess(p); err != nil {
			slog.Debug("failed to signal child process", "pid", p.Pid, "error", err)
		}
	}
}
