package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with the given args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSupportsAlwaysSucceeds(t *testing.T) {
	for _, renderer := range []string{"html", "pandoc", "typst", "epub"} {
		if _, err := execute(t, "supports", renderer); err != nil {
			t.Errorf("supports %s: %v", renderer, err)
		}
	}
}

func TestSupportsRequiresRenderer(t *testing.T) {
	if _, err := execute(t, "supports"); err == nil {
		t.Error("supports without a renderer should fail")
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "cache", "path", "--dir", dir)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path printed %q, want %q", strings.TrimSpace(out), dir)
	}
}

func TestCacheClearRemovesOnlyPrefixedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"diagram-abc.svg", "diagram-def.png", "unrelated.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := execute(t, "cache", "clear", "--dir", dir)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached diagrams") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "unrelated.txt")); err != nil {
		t.Errorf("unrelated file must survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "diagram-abc.svg")); !os.IsNotExist(err) {
		t.Errorf("prefixed artifact should be gone, stat err = %v", err)
	}
}

func TestRenderFilePassthrough(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chapter.md")
	content := "# Heading\n\nNo diagrams here.\n\n```rust\nfn main() {}\n```\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	config := filepath.Join(dir, "book.toml")
	if err := os.WriteFile(config, []byte("[preprocessor.diagrams]\nfiles_path = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "render-file", input, "--config", config)
	if err != nil {
		t.Fatalf("render-file: %v", err)
	}
	if out != content {
		t.Errorf("diagram-free file must pass through unchanged:\n got %q\nwant %q", out, content)
	}
}

func TestRenderFileRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chapter.md")
	if err := os.WriteFile(input, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	config := filepath.Join(dir, "book.toml")
	if err := os.WriteFile(config, []byte("[preprocessor.diagrams]\noutput_format = \"bmp\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "render-file", input, "--config", config)
	if err == nil {
		t.Fatal("invalid output_format must fail before any processing")
	}
	if !strings.Contains(err.Error(), "output_format") {
		t.Errorf("error should mention output_format: %v", err)
	}
}
