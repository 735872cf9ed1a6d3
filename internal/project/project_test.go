// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"tfocus/internal/discovery"
	"tfocus/pkg/terraform"
)

const mixedConfig = `
resource "aws_instance" "web" {
  count = 2
  ami = "ami-123456"
  instance_type = "t2.micro"
}

module "app" {
  source = "./modules/app"
}
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func TestParseDirectory(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.tf":    mixedConfig,
		"network.tf": `module "vpc" {` + "\n" + `  source = "./modules/vpc"` + "\n" + `}`,
	})

	p, err := ParseDirectory(root, discovery.NewScanner())
	if err != nil {
		t.Fatalf("ParseDirectory() error: %v", err)
	}

	all := p.AllResources()
	if len(all) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(all))
	}
}

func TestParseDirectory_NoTerraformFiles(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{"README.md": "nothing here"})

	_, err := ParseDirectory(root, discovery.NewScanner())
	if !errors.Is(err, ErrNoTerraformFiles) {
		t.Fatalf("expected ErrNoTerraformFiles, got %v", err)
	}
}

func TestParseDirectory_ScanFailure(t *testing.T) {
	t.Parallel()

	_, err := ParseDirectory(filepath.Join(t.TempDir(), "missing"), discovery.NewScanner())
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrNoTerraformFiles) {
		t.Fatal("scan failure must be distinct from the empty-project error")
	}
}

func TestProject_UniqueFiles(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"b.tf": "resource \"aws_instance\" \"one\" {\n  ami = \"ami-1\"\n}\n\nresource \"aws_instance\" \"two\" {\n  ami = \"ami-2\"\n}\n",
		"a.tf": "module \"vpc\" {\n  source = \"./vpc\"\n}\n",
	})

	p, err := ParseDirectory(root, discovery.NewScanner())
	if err != nil {
		t.Fatalf("ParseDirectory() error: %v", err)
	}

	files := p.UniqueFiles()
	want := []string{filepath.Join(root, "a.tf"), filepath.Join(root, "b.tf")}
	if !slices.Equal(files, want) {
		t.Errorf("UniqueFiles() = %v, want %v", files, want)
	}
}

func TestProject_Modules_Deduplicated(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"one.tf": `module "shared" {` + "\n" + `  source = "./a"` + "\n" + `}`,
		"two.tf": `module "shared" {` + "\n" + `  source = "./b"` + "\n" + `}` + "\n" + `module "extra" {` + "\n" + `  source = "./c"` + "\n" + `}`,
	})

	p, err := ParseDirectory(root, discovery.NewScanner())
	if err != nil {
		t.Fatalf("ParseDirectory() error: %v", err)
	}

	modules := p.Modules()
	want := []string{"extra", "shared"}
	if !slices.Equal(modules, want) {
		t.Errorf("Modules() = %v, want %v", modules, want)
	}
}

func TestProject_AllResources_Ordering(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.tf": `
resource "aws_s3_bucket" "assets" {
  bucket = "assets"
}

resource "aws_instance" "web" {
  ami = "ami-123456"
}

module "zebra" {
  source = "./z"
}

module "alpha" {
  source = "./a"
}
`,
	})

	p, err := ParseDirectory(root, discovery.NewScanner())
	if err != nil {
		t.Fatalf("ParseDirectory() error: %v", err)
	}

	var names []string
	for _, r := range p.AllResources() {
		names = append(names, r.FullName())
	}
	want := []string{"module.alpha", "module.zebra", "aws_instance.web", "aws_s3_bucket.assets"}
	if !slices.Equal(names, want) {
		t.Errorf("AllResources() order = %v, want %v", names, want)
	}
}

func TestProject_ResourcesByTarget(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{"main.tf": mixedConfig})
	p, err := ParseDirectory(root, discovery.NewScanner())
	if err != nil {
		t.Fatalf("ParseDirectory() error: %v", err)
	}

	mainTF := filepath.Join(root, "main.tf")

	byFile := p.ResourcesByTarget(terraform.FileTarget(mainTF))
	if len(byFile) != 2 {
		t.Errorf("file target matched %d declarations, want 2", len(byFile))
	}

	byResource := p.ResourcesByTarget(terraform.ResourceTarget("aws_instance", "web"))
	if len(byResource) != 1 {
		t.Fatalf("resource target matched %d declarations, want 1", len(byResource))
	}
	if !byResource[0].HasCount {
		t.Error("matched resource should carry its count flag")
	}

	byModule := p.ResourcesByTarget(terraform.ModuleTarget("app"))
	if len(byModule) != 1 {
		t.Fatalf("module target matched %d declarations, want 1", len(byModule))
	}
	if !byModule[0].IsModule {
		t.Error("module target must only match modules")
	}

	if got := p.ResourcesByTarget(terraform.ModuleTarget("missing")); len(got) != 0 {
		t.Errorf("expected empty result for unknown module, got %v", got)
	}
}
