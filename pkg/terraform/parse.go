// SPDX-License-Identifier: MPL-2.0

package terraform

import (
	"regexp"
	"strings"
)

// Block extraction is a structural text scan, not an HCL parser. A block is
// recognized as a line-anchored keyword with its quoted labels, followed by
// the shortest body that ends with a closing brace on its own line. The
// count/for_each detection is a literal substring test over the raw block
// text, so a match inside a nested block or a comment also fires. That
// imprecision is accepted; targets only need the type/name labels, which the
// scan captures exactly.
var (
	resourceBlockRE = regexp.MustCompile(`(?m)^[ \t]*resource[ \t]+"([^"]+)"[ \t]+"([^"]+)"[ \t]*\{(?s:.*?)\n[ \t]*\}`)
	moduleBlockRE   = regexp.MustCompile(`(?m)^[ \t]*module[ \t]+"([^"]+)"[ \t]*\{(?s:.*?)\n[ \t]*\}`)
)

// ParseConfig extracts every resource and module declaration from the text
// of one Terraform file. filePath is recorded on each result; the content is
// not read from it. A file with no declarations yields an empty slice.
func ParseConfig(filePath, content string) []Resource {
	var resources []Resource

	for _, m := range resourceBlockRE.FindAllStringSubmatch(content, -1) {
		block := m[0]
		resources = append(resources, Resource{
			Type:       m[1],
			Name:       m[2],
			FilePath:   filePath,
			HasCount:   containsAssignment(block, "count"),
			HasForEach: containsAssignment(block, "for_each"),
		})
	}

	for _, m := range moduleBlockRE.FindAllStringSubmatch(content, -1) {
		block := m[0]
		resources = append(resources, Resource{
			Name:       m[1],
			IsModule:   true,
			FilePath:   filePath,
			HasCount:   containsAssignment(block, "count"),
			HasForEach: containsAssignment(block, "for_each"),
		})
	}

	return resources
}

// containsAssignment reports whether the raw block text assigns the given
// attribute, with or without a space before the equals sign.
func containsAssignment(block, attr string) bool {
	return strings.Contains(block, attr+" =") || strings.Contains(block, attr+"=")
}
