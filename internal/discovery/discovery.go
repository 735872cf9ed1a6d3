// SPDX-License-Identifier: MPL-2.0

// Package discovery locates Terraform declaration files under a project root.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// Directories that are never descended into. The .terraform directory holds
// provider binaries and module caches whose .tf files must not be offered as
// targets.
var defaultExcludes = []string{".terraform", ".git"}

type (
	// Scanner finds .tf files by recursive descent, pruning excluded
	// directory names before entering them.
	Scanner struct {
		excludes map[string]struct{}
	}
)

// NewScanner creates a Scanner that prunes the tool-state and VCS
// directories plus any extra directory names given.
func NewScanner(extraExcludes ...string) *Scanner {
	excludes := make(map[string]struct{}, len(defaultExcludes)+len(extraExcludes))
	for _, name := range defaultExcludes {
		excludes[name] = struct{}{}
	}
	for _, name := range extraExcludes {
		if name != "" {
			excludes[name] = struct{}{}
		}
	}
	return &Scanner{excludes: excludes}
}

// Find returns every .tf file reachable from root. Excluded directories are
// skipped without being read. Any unreadable directory fails the whole scan;
// partial results are never returned. Ordering follows the walk and is not
// part of the contract; callers that display paths sort them first.
func (s *Scanner) Find(root string) ([]string, error) {
	var tfFiles []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, excluded := s.excludes[d.Name()]; excluded && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tf") {
			tfFiles = append(tfFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for terraform files: %w", root, err)
	}

	slog.Debug("scanned project for terraform files", "root", root, "count", len(tfFiles))
	return tfFiles, nil
}
