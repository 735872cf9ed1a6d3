// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"tfocus/pkg/terraform"
)

func TestTargetOptions(t *testing.T) {
	t.Parallel()

	resources := []terraform.Resource{
		{Type: "aws_instance", Name: "web", FilePath: "main.tf"},
		{Type: "aws_instance", Name: "app", FilePath: "main.tf", HasCount: true, Index: "0"},
		{Name: "vpc", IsModule: true, FilePath: "network.tf"},
	}

	options, err := TargetOptions(resources)
	if err != nil {
		t.Fatalf("TargetOptions() error: %v", err)
	}

	want := []string{
		"-target=aws_instance.web",
		"-target=aws_instance.app[0]",
		"-target=module.vpc",
	}
	if !slices.Equal(options, want) {
		t.Errorf("TargetOptions() = %v, want %v", options, want)
	}
}

func TestTargetOptions_Empty(t *testing.T) {
	t.Parallel()

	_, err := TargetOptions(nil)
	if !errors.Is(err, ErrNoTargets) {
		t.Fatalf("expected ErrNoTargets, got %v", err)
	}
}

func TestWorkingDirectory(t *testing.T) {
	t.Parallel()

	resources := []terraform.Resource{
		{Type: "aws_instance", Name: "web", FilePath: filepath.Join("envs", "prod", "main.tf")},
		{Type: "aws_instance", Name: "db", FilePath: filepath.Join("envs", "dev", "main.tf")},
	}

	dir, err := WorkingDirectory(resources)
	if err != nil {
		t.Fatalf("WorkingDirectory() error: %v", err)
	}
	if want := filepath.Join("envs", "prod"); dir != want {
		t.Errorf("WorkingDirectory() = %q, want %q", dir, want)
	}
}

func TestWorkingDirectory_Empty(t *testing.T) {
	t.Parallel()

	_, err := WorkingDirectory(nil)
	if !errors.Is(err, ErrNoResources) {
		t.Fatalf("expected ErrNoResources, got %v", err)
	}
}

func TestWorkingDirectory_BareFileName(t *testing.T) {
	t.Parallel()

	dir, err := WorkingDirectory([]terraform.Resource{{Type: "local_file", Name: "x", FilePath: "main.tf"}})
	if err != nil {
		t.Fatalf("WorkingDirectory() error: %v", err)
	}
	if dir != "." {
		t.Errorf("WorkingDirectory() = %q, want %q", dir, ".")
	}
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeSucceeded, "succeeded"},
		{OutcomeCancelled, "cancelled"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.expected {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.expected)
		}
	}
}

func TestCommandFailedError(t *testing.T) {
	t.Parallel()

	var err error = &CommandFailedError{Operation: terraform.OperationPlan, ExitCode: 2}
	if !errors.Is(err, ErrCommandFailed) {
		t.Error("CommandFailedError must unwrap to ErrCommandFailed")
	}
	want := "terraform plan failed with exit status 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
