// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"tfocus/pkg/terraform"
)

func TestOperationFromChoice(t *testing.T) {
	t.Parallel()

	op, err := operationFromChoice(choicePlan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != terraform.OperationPlan {
		t.Errorf("choice %q = %s, want plan", choicePlan, op)
	}

	op, err = operationFromChoice(choiceApply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != terraform.OperationApply {
		t.Errorf("choice %q = %s, want apply", choiceApply, op)
	}
}

func TestOperationFromChoice_Invalid(t *testing.T) {
	t.Parallel()

	_, err := operationFromChoice("3")
	if !errors.Is(err, errInvalidOperation) {
		t.Fatalf("expected errInvalidOperation, got %v", err)
	}
}

func TestTargetFor(t *testing.T) {
	t.Parallel()

	resource := terraform.Resource{Type: "aws_instance", Name: "web"}
	target := targetFor(resource)
	if target.Kind != terraform.TargetResource || target.Type != "aws_instance" || target.Name != "web" {
		t.Errorf("unexpected target for resource: %+v", target)
	}

	module := terraform.Resource{Name: "vpc", IsModule: true}
	target = targetFor(module)
	if target.Kind != terraform.TargetModule || target.Name != "vpc" {
		t.Errorf("unexpected target for module: %+v", target)
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("home", "user", "infra")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "inside root",
			path:     filepath.Join(root, "envs", "prod", "main.tf"),
			expected: filepath.Join("envs", "prod", "main.tf"),
		},
		{
			name:     "outside root stays absolute",
			path:     filepath.Join("tmp", "elsewhere", "main.tf"),
			expected: filepath.Join("tmp", "elsewhere", "main.tf"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayPath(tt.path, root); got != tt.expected {
				t.Errorf("displayPath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
