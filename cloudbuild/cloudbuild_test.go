package cloudbuild

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestForModel(t *testing.T) {
	got := ForModel("gemma-2b")

	want := Config{
		Steps: []Step{
			{
				Name: "gcr.io/cloud-builders/docker",
				Args: []string{"build", "-t", "gcr.io/$PROJECT_ID/ollama:gemma-2b", "-f", "Dockerfile-gemma-2b", "."},
			},
			{
				Name: "gcr.io/cloud-builders/docker",
				Args: []string{"push", "gcr.io/$PROJECT_ID/ollama:gemma-2b"},
			},
		},
		Images: []string{"gcr.io/$PROJECT_ID/ollama:gemma-2b"},
		Options: Options{
			MachineType: "E2_HIGHCPU_8",
			DiskSizeGB:  200,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ForModel mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := ForModel("llama3-1")

	out, err := WriteYAML(cfg)
	if err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var decoded Config
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("generated YAML does not decode: %v\n%s", err, out)
	}
	if diff := cmp.Diff(cfg, decoded); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}

	// Cloud Build is picky about these keys, so check the raw output too.
	if !strings.Contains(out, "machineType: E2_HIGHCPU_8") {
		t.Errorf("YAML is missing the machine type:\n%s", out)
	}
	if !strings.Contains(out, "diskSizeGb: 200") {
		t.Errorf("YAML is missing the disk size:\n%s", out)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("gemma-2b"); got != "gemma-2b-cloudbuild.yaml" {
		t.Errorf("FileName = %q, want gemma-2b-cloudbuild.yaml", got)
	}
}
