// SPDX-License-Identifier: MPL-2.0

package terraform

type (
	// Operation is a terraform subcommand tfocus can run.
	Operation int
)

const (
	// OperationPlan shows the changes that would be made.
	OperationPlan Operation = iota
	// OperationApply executes the planned changes.
	OperationApply
)

// String returns the terraform subcommand keyword.
func (o Operation) String() string {
	switch o {
	case OperationPlan:
		return "plan"
	case OperationApply:
		return "apply"
	default:
		return "unknown"
	}
}
