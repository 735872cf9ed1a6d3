// SPDX-License-Identifier: MPL-2.0

// Package project builds and queries the in-memory index of all resource and
// module declarations discovered in a Terraform project. A Project is
// populated once by ParseDirectory and is read-only afterwards.
package project

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"tfocus/internal/discovery"
	"tfocus/pkg/terraform"
)

// ErrNoTerraformFiles is returned by ParseDirectory when the scan finds no
// .tf files at all, as opposed to a scan or read failure.
var ErrNoTerraformFiles = errors.New("no terraform files found")

type (
	// Project is the immutable index of one parse session.
	Project struct {
		resources []terraform.Resource
	}
)

// ParseDirectory scans root for Terraform files and parses every one of
// them. A failure to read any file aborts the whole operation; there is no
// partial index.
func ParseDirectory(root string, scanner *discovery.Scanner) (*Project, error) {
	tfFiles, err := scanner.Find(root)
	if err != nil {
		return nil, err
	}
	if len(tfFiles) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTerraformFiles, root)
	}

	p := &Project{}
	for _, path := range tfFiles {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read terraform file: %w", err)
		}
		parsed := terraform.ParseConfig(path, string(content))
		slog.Debug("parsed terraform file", "path", path, "declarations", len(parsed))
		p.resources = append(p.resources, parsed...)
	}

	return p, nil
}

// UniqueFiles returns the distinct declaring file paths, sorted.
func (p *Project) UniqueFiles() []string {
	seen := make(map[string]struct{})
	var files []string
	for _, r := range p.resources {
		if _, ok := seen[r.FilePath]; !ok {
			seen[r.FilePath] = struct{}{}
			files = append(files, r.FilePath)
		}
	}
	slices.Sort(files)
	return files
}

// Modules returns the distinct module names, sorted. Two module blocks that
// share a name in different files merge into one entry here: the name is the
// identity used for module targeting.
func (p *Project) Modules() []string {
	var modules []string
	for _, r := range p.resources {
		if r.IsModule {
			modules = append(modules, r.Name)
		}
	}
	slices.Sort(modules)
	return slices.Compact(modules)
}

// AllResources returns every declaration, modules before resources, each
// group sorted by full name.
func (p *Project) AllResources() []terraform.Resource {
	resources := slices.Clone(p.resources)
	slices.SortStableFunc(resources, func(a, b terraform.Resource) int {
		if a.IsModule != b.IsModule {
			if a.IsModule {
				return -1
			}
			return 1
		}
		return strings.Compare(a.FullName(), b.FullName())
	})
	return resources
}

// ResourcesByTarget returns the declarations within the target's scope. An
// empty result is not an error; the caller decides whether that is fatal.
func (p *Project) ResourcesByTarget(target terraform.Target) []terraform.Resource {
	var matched []terraform.Resource
	for _, r := range p.resources {
		if target.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}
