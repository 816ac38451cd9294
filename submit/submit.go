// Package submit drives the external Cloud Build CLI, one invocation per
// model, in list order. A failed submission is reported and the remaining
// models are still processed.
package submit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"ollama-buildgen/cloudbuild"
	"ollama-buildgen/model"
)

// Submitter invokes "gcloud builds submit" for generated configs.
type Submitter struct {
	// Gcloud is the binary to invoke. Tests substitute a stub here.
	Gcloud string
	// BuildDir holds the generated configs and is passed as the build source.
	BuildDir string
}

// New returns a Submitter using the gcloud binary from PATH.
func New(buildDir string) *Submitter {
	return &Submitter{
		Gcloud:   "gcloud",
		BuildDir: buildDir,
	}
}

// SubmitAll submits one build per model, sequentially, and returns how
// many submissions failed. There is no retry and no cleanup; a failure
// only affects its own model.
func (s *Submitter) SubmitAll(models []string) int {
	failures := 0
	for _, name := range models {
		if err := s.submit(name); err != nil {
			fmt.Printf("❌ Error submitting build for %s: %v\n", name, err)
			failures++
			continue
		}
		fmt.Printf("✅ Build submitted successfully for %s\n", name)
	}
	return failures
}

func (s *Submitter) submit(name string) error {
	modelID := model.ID(name)
	configPath := filepath.Join(s.BuildDir, cloudbuild.FileName(modelID))

	fmt.Printf("Submitting build for model: %s (ID: %s)\n", name, modelID)

	cmd := exec.Command(s.Gcloud, "builds", "submit", "--config", configPath, s.BuildDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gcloud builds submit failed: %w", err)
	}
	return nil
}
