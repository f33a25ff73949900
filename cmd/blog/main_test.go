package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/store"
)

func stubModuleBuilder(t *testing.T, files fstest.MapFS) {
	t.Helper()
	previous := moduleBuilder
	moduleBuilder = func(cfg blog.Config) (*blog.Module, error) {
		cfg.Logging.Provider = "none"
		return blog.New(cfg, blog.WithStore(store.NewFS(files)))
	}
	t.Cleanup(func() { moduleBuilder = previous })
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetArgs(args)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func sampleFiles() fstest.MapFS {
	return fstest.MapFS{
		"hello.md": {Data: []byte("---\ntitle: Hello\ndate: 2024-01-01\n---\n# Hi\n")},
		"intro.md": {Data: []byte("---\ntitle: Intro\ndate: 2023-01-01\n---\n`code`\n")},
	}
}

func TestListCommand(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())

	out, err := runCommand(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "intro") || !strings.Contains(lines[1], "hello") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
}

func TestListCommandOrderFlag(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())

	out, err := runCommand(t, "list", "--order", "desc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Index(out, "hello") > strings.Index(out, "intro") {
		t.Fatalf("expected newest first:\n%s", out)
	}
}

func TestSlugsCommand(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())

	out, err := runCommand(t, "slugs")
	if err != nil {
		t.Fatalf("slugs: %v", err)
	}
	if out != "hello\nintro\n" {
		t.Fatalf("unexpected slugs %q", out)
	}
}

func TestShowCommand(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())

	out, err := runCommand(t, "show", "hello", "--html")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "<h1>Hi</h1>") {
		t.Fatalf("expected rendered heading, got %q", out)
	}

	out, err = runCommand(t, "show", "hello")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(out, "---\n") || !strings.Contains(out, "title: Hello") {
		t.Fatalf("expected serialized document, got %q", out)
	}
}

func TestShowCommandMissingPost(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())

	if _, err := runCommand(t, "show", "does-not-exist"); err == nil {
		t.Fatal("expected error for missing post")
	}
}

func TestExportCommand(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())
	outDir := t.TempDir()

	out, err := runCommand(t, "export", "--out", outDir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "exported 2 posts") {
		t.Fatalf("unexpected output %q", out)
	}
	for _, name := range []string{"index.json", "slugs.json", "manifest.json", filepath.Join("posts", "hello.html")} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestConfigFileIsApplied(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())
	cfgPath := filepath.Join(t.TempDir(), "blog.yaml")
	if err := os.WriteFile(cfgPath, []byte("listing:\n  order: desc\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCommand(t, "--config", cfgPath, "slugs")
	if err != nil {
		t.Fatalf("slugs: %v", err)
	}
	if out != "hello\nintro\n" {
		t.Fatalf("unexpected slugs %q", out)
	}

	out, err = runCommand(t, "--config", cfgPath, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Index(out, "hello") > strings.Index(out, "intro") {
		t.Fatalf("expected config order desc:\n%s", out)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	stubModuleBuilder(t, sampleFiles())

	if _, err := runCommand(t, "list", "--order", "sideways"); err == nil {
		t.Fatal("expected invalid order to fail")
	}
}
