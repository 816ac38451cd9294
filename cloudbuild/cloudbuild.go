// Package cloudbuild models the Google Cloud Build configuration generated
// for each model image. The config is assembled as typed data and encoded
// to YAML instead of being stitched together as text.
package cloudbuild

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the subset of the Cloud Build schema these builds use.
type Config struct {
	Steps   []Step   `yaml:"steps"`
	Images  []string `yaml:"images"`
	Options Options  `yaml:"options"`
}

// Step is a single Cloud Build step.
type Step struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

// Options carries the build machine settings.
type Options struct {
	MachineType string `yaml:"machineType"`
	DiskSizeGB  int    `yaml:"diskSizeGb"`
}

const dockerBuilder = "gcr.io/cloud-builders/docker"

// FileName returns the config file name for a model ID. The naming
// convention is contractual: the generated build scripts reference it.
func FileName(modelID string) string {
	return modelID + "-cloudbuild.yaml"
}

// ImageTag returns the registry tag the build produces. $PROJECT_ID is
// substituted by Cloud Build at submission time, not by this tool.
func ImageTag(modelID string) string {
	return "gcr.io/$PROJECT_ID/ollama:" + modelID
}

// ForModel assembles the build-and-push pipeline for one model image.
func ForModel(modelID string) Config {
	image := ImageTag(modelID)
	return Config{
		Steps: []Step{
			{
				Name: dockerBuilder,
				Args: []string{"build", "-t", image, "-f", "Dockerfile-" + modelID, "."},
			},
			{
				Name: dockerBuilder,
				Args: []string{"push", image},
			},
		},
		Images: []string{image},
		Options: Options{
			MachineType: "E2_HIGHCPU_8",
			// Model layers overflow the default build disk.
			DiskSizeGB: 200,
		},
	}
}

// WriteYAML converts a Config to formatted YAML.
func WriteYAML(cfg Config) (string, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	encoder.Close()

	return buf.String(), nil
}
