package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ollama-buildgen/template"
)

func writeDockerfile(t *testing.T, model string, additional []string) string {
	t.Helper()

	content, err := template.RenderDockerfile(model, additional)
	if err != nil {
		t.Fatalf("RenderDockerfile: %v", err)
	}

	path := filepath.Join(t.TempDir(), "Dockerfile-test")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write Dockerfile: %v", err)
	}
	return path
}

func TestParseGeneratedDockerfile(t *testing.T) {
	path := writeDockerfile(t, "gemma:2b", nil)

	info, err := ParseDockerfile(path)
	if err != nil {
		t.Fatalf("ParseDockerfile: %v", err)
	}

	if info.From != "ollama/ollama" {
		t.Errorf("From = %q, want ollama/ollama", info.From)
	}
	if info.Workdir != "/" {
		t.Errorf("Workdir = %q, want /", info.Workdir)
	}
	// buildkit appends a trailing empty node to legacy-form ENV
	// instructions; the parsed values must not carry stray spaces.
	if got := info.Env["OLLAMA_KEEP_ALIVE"]; got != "-1" {
		t.Errorf("OLLAMA_KEEP_ALIVE = %q, want -1", got)
	}
	if got := info.Env["HOME"]; got != "/root" {
		t.Errorf("HOME = %q, want /root", got)
	}
	if diff := cmp.Diff([]string{"ollama", "serve"}, info.Entrypoint); diff != "" {
		t.Errorf("Entrypoint mismatch (-want +got):\n%s", diff)
	}
}

func TestPulledModels(t *testing.T) {
	path := writeDockerfile(t, "gemma:2b", []string{"llama3.1"})

	info, err := ParseDockerfile(path)
	if err != nil {
		t.Fatalf("ParseDockerfile: %v", err)
	}

	want := []string{"gemma:2b", "llama3.1"}
	if diff := cmp.Diff(want, PulledModels(info)); diff != "" {
		t.Errorf("PulledModels mismatch (-want +got):\n%s", diff)
	}
}

func TestPulledModelsModelNameWithSpaces(t *testing.T) {
	path := writeDockerfile(t, "gemma 2b", []string{"my local model"})

	info, err := ParseDockerfile(path)
	if err != nil {
		t.Fatalf("ParseDockerfile: %v", err)
	}

	want := []string{"gemma 2b", "my local model"}
	if diff := cmp.Diff(want, PulledModels(info)); diff != "" {
		t.Errorf("PulledModels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDockerfileMissingFile(t *testing.T) {
	if _, err := ParseDockerfile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing Dockerfile")
	}
}
