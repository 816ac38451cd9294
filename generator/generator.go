// Package generator writes the per-model build artifacts to the build
// directory: a Dockerfile, a Cloud Build config, and optionally the shell
// scripts that submit the builds.
package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"ollama-buildgen/cloudbuild"
	"ollama-buildgen/model"
	"ollama-buildgen/template"
)

// Options control artifact generation for one run.
type Options struct {
	// BuildDir is the shared output root; it is created if absent.
	BuildDir string
	// AdditionalModels are baked into every image on top of its primary model.
	AdditionalModels []string
	// BuildScripts enables the per-model scripts and the umbrella script.
	BuildScripts bool
}

// Artifact records the files generated for one model.
type Artifact struct {
	Model      string
	ModelID    string
	Dockerfile string
	Config     string
	// BuildScript is empty when script generation is suppressed.
	BuildScript string
}

// UmbrellaScriptName is the aggregate script invoking all per-model scripts.
const UmbrellaScriptName = "build-all.sh"

// Generate writes the artifacts for every model, in list order, and
// returns what was written. Models that sanitize to the same ID silently
// overwrite each other's files; duplicates are processed redundantly.
func Generate(models []string, opts Options) ([]Artifact, error) {
	if err := os.MkdirAll(opts.BuildDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create build directory %s: %w", opts.BuildDir, err)
	}

	var artifacts []Artifact
	var scripts []string

	for _, name := range models {
		modelID := model.ID(name)
		fmt.Printf("Generating files for model: %s (ID: %s)\n", name, modelID)

		artifact := Artifact{
			Model:      name,
			ModelID:    modelID,
			Dockerfile: filepath.Join(opts.BuildDir, "Dockerfile-"+modelID),
			Config:     filepath.Join(opts.BuildDir, cloudbuild.FileName(modelID)),
		}

		dockerfile, err := template.RenderDockerfile(name, opts.AdditionalModels)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(artifact.Dockerfile, []byte(dockerfile), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", artifact.Dockerfile, err)
		}

		config, err := cloudbuild.WriteYAML(cloudbuild.ForModel(modelID))
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(artifact.Config, []byte(config), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", artifact.Config, err)
		}

		if opts.BuildScripts {
			script, err := template.RenderBuildScript(opts.BuildDir, modelID)
			if err != nil {
				return nil, err
			}
			scriptPath := filepath.Join(opts.BuildDir, "build-"+modelID+".sh")
			if err := writeExecutable(scriptPath, script); err != nil {
				return nil, err
			}
			artifact.BuildScript = scriptPath
			scripts = append(scripts, scriptPath)
		}

		artifacts = append(artifacts, artifact)
	}

	if opts.BuildScripts && len(scripts) > 0 {
		umbrellaPath := filepath.Join(opts.BuildDir, UmbrellaScriptName)
		if err := writeExecutable(umbrellaPath, template.UmbrellaScript(scripts)); err != nil {
			return nil, err
		}
	}

	return artifacts, nil
}

func writeExecutable(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile only applies the mode on creation; reruns overwrite
	// existing files, so reassert the executable bit.
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}
