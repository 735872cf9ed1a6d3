// SPDX-License-Identifier: MPL-2.0

// Package terraform defines the domain model for discovered Terraform
// declarations: resources, modules, targets, and operations.
//
// This package is a leaf dependency: it imports only the standard library.
// It knows nothing about where files come from or how terraform is invoked.
package terraform

import "fmt"

type (
	// Resource represents a resource or module declaration found in a
	// Terraform file. Modules are represented with IsModule set and an
	// empty Type.
	Resource struct {
		// Type is the resource type (e.g. "aws_instance"). Empty for modules.
		Type string
		// Name is the declared identifier.
		Name string
		// IsModule reports whether this is a module declaration.
		IsModule bool
		// FilePath is the path of the file the declaration was found in.
		FilePath string
		// HasCount reports whether the block body contains a count assignment.
		HasCount bool
		// HasForEach reports whether the block body contains a for_each assignment.
		HasForEach bool
		// Index is an optional concrete instance index (a count index or a
		// for_each key). Discovery never sets it; callers that disambiguate
		// a specific instance may.
		Index string
	}
)

// FullName returns the resource address in Terraform format:
// "module.<name>" for modules, "<type>.<name>" for resources.
func (r Resource) FullName() string {
	if r.IsModule {
		return "module." + r.Name
	}
	return r.Type + "." + r.Name
}

// TargetString returns the address to pass to terraform's -target flag.
// The index is appended only when the declaration uses count or for_each
// and an index is set. The index is not validated; the caller is
// responsible for supplying a value terraform will accept.
func (r Resource) TargetString() string {
	if r.Index != "" && (r.HasCount || r.HasForEach) {
		return fmt.Sprintf("%s[%s]", r.FullName(), r.Index)
	}
	return r.FullName()
}
