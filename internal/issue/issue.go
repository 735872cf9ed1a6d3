// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing guidance for the failure modes a human
// can actually fix, rendered as markdown, plus the error wrapper used to
// attach operation context to failures.
package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	NoTerraformFilesId Id = iota + 1
	NoMatchingResourcesId
	TerraformFailedId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to look up the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	noTerraformFilesIssue = &Issue{
		id: NoTerraformFilesId,
		mdMsg: `
# No Terraform files found!

We searched the project directory recursively but found no .tf files.

## Things you can try:
- Run tfocus from a directory that contains Terraform configuration:
~~~
$ cd /path/to/your/terraform/project
$ tfocus
~~~

- Or pass the project path explicitly:
~~~
$ tfocus ./infrastructure
~~~

Note: files inside .terraform/ and .git/ are intentionally ignored.`,
	}

	noMatchingResourcesIssue = &Issue{
		id: NoMatchingResourcesId,
		mdMsg: `
# No resources match the selected target!

The target you picked resolved to an empty set of declarations.

## Things you can try:
- Pick a different file, module, or resource
- Re-run tfocus after editing your configuration; the index is rebuilt on
  every run`,
	}

	terraformFailedIssue = &Issue{
		id: TerraformFailedId,
		mdMsg: `
# Terraform reported a failure!

The targeted operation ran, but terraform exited with a non-zero status.

## Things you can try:
- Read terraform's own output above for the actual cause
- Re-run with verbose tfocus logging to see the exact command:
~~~
$ tfocus --verbose
~~~

- Run terraform init if providers or modules are missing:
~~~
$ terraform init
~~~`,
	}

	issues = map[Id]*Issue{
		noTerraformFilesIssue.Id():    noTerraformFilesIssue,
		noMatchingResourcesIssue.Id(): noMatchingResourcesIssue,
		terraformFailedIssue.Id():     terraformFailedIssue,
	}
)

func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
