// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"tfocus/internal/discovery"
	"tfocus/internal/executor"
	"tfocus/internal/issue"
	"tfocus/internal/project"
	"tfocus/internal/tui"
	"tfocus/pkg/terraform"

	"github.com/spf13/cobra"
)

// Payloads for the target-type and operation pickers.
const (
	modeFile     = "1"
	modeModule   = "2"
	modeResource = "3"

	choicePlan  = "1"
	choiceApply = "2"
)

// errInvalidOperation is returned when the operation picker hands back a
// payload outside the offered set. Unreachable with the fixed item list;
// kept as a guard.
var errInvalidOperation = errors.New("invalid operation selected")

// runFocus drives the whole pipeline: parse the project, resolve the user's
// scope to a resource list, pick an operation, and supervise terraform.
func runFocus(_ *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	cfg := currentConfig()

	scanner := discovery.NewScanner(cfg.ExcludeDirs...)
	proj, err := project.ParseDirectory(root, scanner)
	if err != nil {
		if errors.Is(err, project.ErrNoTerraformFiles) {
			printIssue(issue.NoTerraformFilesId)
		}
		return issue.WrapWithContext(err, "parse project", root)
	}

	printFoundFiles(proj, root)

	target, ok, err := selectTarget(proj, root)
	if err != nil {
		return issue.WrapWithOperation(err, "select target")
	}
	if !ok {
		fmt.Println("\nOperation cancelled")
		return nil
	}

	resources := proj.ResourcesByTarget(target)
	if len(resources) == 0 {
		printIssue(issue.NoMatchingResourcesId)
		return errors.New("no resources match the selected target")
	}

	targetOptions, err := executor.TargetOptions(resources)
	if err != nil {
		return err
	}
	workDir, err := executor.WorkingDirectory(resources)
	if err != nil {
		return err
	}

	op, ok, err := selectOperation()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("\nOperation cancelled")
		return nil
	}

	if op == terraform.OperationApply {
		confirmed, err := tui.Confirm(
			"Run terraform apply with -auto-approve?",
			fmt.Sprintf("%d target(s), working directory %s", len(resources), workDir),
		)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("\nOperation cancelled")
			return nil
		}
	}

	printCommand(op, targetOptions)

	inv := executor.NewInvocation(cfg.TerraformBin)
	outcome, err := inv.Run(op, targetOptions, workDir)
	switch outcome {
	case executor.OutcomeSucceeded:
		fmt.Println(SuccessStyle.Render("Operation completed successfully"))
		if op == terraform.OperationPlan {
			printApplyHint(targetOptions)
		}
		return nil
	case executor.OutcomeCancelled:
		fmt.Println(TitleStyle.Render("\nOperation cancelled by user"))
		return nil
	default:
		var cmdErr *executor.CommandFailedError
		if errors.As(err, &cmdErr) {
			printIssue(issue.TerraformFailedId)
			return &ExitError{Code: cmdErr.ExitCode, Err: err}
		}
		return err
	}
}

// selectTarget asks for a scope kind, then the concrete file, module, or
// resource. ok is false when the user aborted either prompt.
func selectTarget(proj *project.Project, root string) (terraform.Target, bool, error) {
	mode, ok, err := tui.Select(tui.SelectOptions{
		Title: "Select target type",
		Items: []tui.SelectItem{
			{Display: "file     - All resources in one file", Search: "file path", Data: modeFile},
			{Display: "module   - All instances of one module", Search: "module name", Data: modeModule},
			{Display: "resource - One specific resource", Search: "resource type name", Data: modeResource},
		},
	})
	if err != nil || !ok {
		return terraform.Target{}, false, err
	}

	switch mode {
	case modeFile:
		files := proj.UniqueFiles()
		items := make([]tui.SelectItem, len(files))
		for i, path := range files {
			items[i] = tui.SelectItem{Display: displayPath(path, root), Search: path, Data: path}
		}
		path, ok, err := tui.Select(tui.SelectOptions{Title: "Select file", Items: items})
		if err != nil || !ok {
			return terraform.Target{}, false, err
		}
		return terraform.FileTarget(path), true, nil

	case modeModule:
		modules := proj.Modules()
		items := make([]tui.SelectItem, len(modules))
		for i, name := range modules {
			items[i] = tui.SelectItem{Display: "module." + name, Search: "module " + name, Data: name}
		}
		name, ok, err := tui.Select(tui.SelectOptions{Title: "Select module", Items: items})
		if err != nil || !ok {
			return terraform.Target{}, false, err
		}
		return terraform.ModuleTarget(name), true, nil

	case modeResource:
		all := proj.AllResources()
		items := make([]tui.SelectItem, len(all))
		for i, r := range all {
			items[i] = tui.SelectItem{
				Display: fmt.Sprintf("%s  (%s)", r.FullName(), displayPath(r.FilePath, root)),
				Search:  r.FullName() + " " + r.FilePath,
				Data:    strconv.Itoa(i),
			}
		}
		data, ok, err := tui.Select(tui.SelectOptions{Title: "Select resource", Items: items})
		if err != nil || !ok {
			return terraform.Target{}, false, err
		}
		idx, err := strconv.Atoi(data)
		if err != nil || idx < 0 || idx >= len(all) {
			return terraform.Target{}, false, fmt.Errorf("invalid resource selection %q", data)
		}
		return targetFor(all[idx]), true, nil
	}

	return terraform.Target{}, false, fmt.Errorf("invalid target type %q", mode)
}

// targetFor narrows a picked declaration to its exact target.
func targetFor(r terraform.Resource) terraform.Target {
	if r.IsModule {
		return terraform.ModuleTarget(r.Name)
	}
	return terraform.ResourceTarget(r.Type, r.Name)
}

// selectOperation asks whether to plan or apply. ok is false when the user
// aborted, which is not an error.
func selectOperation() (terraform.Operation, bool, error) {
	data, ok, err := tui.Select(tui.SelectOptions{
		Title: "Select operation",
		Items: []tui.SelectItem{
			{Display: "plan  - Show changes to be made", Search: "plan terraform show changes", Data: choicePlan},
			{Display: "apply - Execute the planned changes", Search: "apply terraform execute changes", Data: choiceApply},
		},
	})
	if err != nil || !ok {
		return 0, false, err
	}

	op, err := operationFromChoice(data)
	if err != nil {
		return 0, false, err
	}
	return op, true, nil
}

// operationFromChoice maps a picker payload to an Operation.
func operationFromChoice(data string) (terraform.Operation, error) {
	switch data {
	case choicePlan:
		return terraform.OperationPlan, nil
	case choiceApply:
		return terraform.OperationApply, nil
	default:
		return 0, fmt.Errorf("%w: %q", errInvalidOperation, data)
	}
}

// displayPath shortens a path relative to the project root for display.
func displayPath(path, root string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func printFoundFiles(proj *project.Project, root string) {
	fmt.Println(TitleStyle.Render("\nFound Terraform files:"))
	for _, f := range proj.UniqueFiles() {
		fmt.Println("  " + displayPath(f, root))
	}
	fmt.Println()
}

func printCommand(op terraform.Operation, targetOptions []string) {
	line := "terraform " + op.String() + " " + strings.Join(targetOptions, " ")
	if op == terraform.OperationApply {
		line += " -auto-approve"
	}
	fmt.Println(TitleStyle.Render("Executing:"))
	fmt.Println("  " + CmdStyle.Render(line))
	fmt.Println()
}

// printApplyHint suggests the apply command matching a successful plan, with
// the exact same target flags.
func printApplyHint(targetOptions []string) {
	fmt.Println(TitleStyle.Render("\nTo apply these changes, run:"))
	fmt.Println("  " + CmdStyle.Render("terraform apply "+strings.Join(targetOptions, " ")))
}

// printIssue renders the markdown guidance for a known failure mode.
func printIssue(id issue.Id) {
	i := issue.Get(id)
	if i == nil {
		return
	}
	if out, err := i.Render("dark"); err == nil {
		fmt.Print(out)
	}
}
