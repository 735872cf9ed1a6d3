// SPDX-License-Identifier: MPL-2.0

package terraform

type (
	// TargetKind discriminates the scope a user selected.
	TargetKind int

	// Target is a user-chosen scope used to filter resources before an
	// operation: a whole file, a module by name, or a single resource by
	// type and name.
	Target struct {
		Kind TargetKind
		// Path is set for TargetFile.
		Path string
		// Type is set for TargetResource.
		Type string
		// Name is set for TargetModule and TargetResource.
		Name string
	}
)

const (
	// TargetFile selects every declaration in one file.
	TargetFile TargetKind = iota
	// TargetModule selects module declarations by name.
	TargetModule
	// TargetResource selects one resource by type and name.
	TargetResource
)

// FileTarget returns a Target selecting every declaration in path.
func FileTarget(path string) Target {
	return Target{Kind: TargetFile, Path: path}
}

// ModuleTarget returns a Target selecting module declarations named name.
func ModuleTarget(name string) Target {
	return Target{Kind: TargetModule, Name: name}
}

// ResourceTarget returns a Target selecting the resource typ.name.
func ResourceTarget(typ, name string) Target {
	return Target{Kind: TargetResource, Type: typ, Name: name}
}

// Matches reports whether r falls within the target's scope.
func (t Target) Matches(r Resource) bool {
	switch t.Kind {
	case TargetFile:
		return r.FilePath == t.Path
	case TargetModule:
		return r.IsModule && r.Name == t.Name
	case TargetResource:
		return !r.IsModule && r.Type == t.Type && r.Name == t.Name
	default:
		return false
	}
}
