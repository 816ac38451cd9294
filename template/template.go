// Package template holds the textual skeletons for the generated build
// artifacts. The skeletons use Jinja-style placeholders and are rendered
// with pongo2, so they stay readable as the files they produce.
package template

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Ollama environment variable definitions:
// https://github.com/ollama/ollama/issues/2941
const dockerfileSkeleton = `FROM ollama/ollama
ENV HOME /root
WORKDIR /
ENV OLLAMA_KEEP_ALIVE -1
RUN ollama serve & sleep 10 && ollama pull {{ model }}
{% if additional_models %}{% for additional_model in additional_models %}
RUN ollama serve & sleep 10 && ollama pull {{ additional_model }}{% endfor %}{% endif %}
ENTRYPOINT ["ollama","serve"]
`

const buildScriptSkeleton = `#!/bin/bash
set -x
pushd {{ build_dir }}
gcloud builds submit --config {{ model_id }}-cloudbuild.yaml
popd
`

var (
	dockerfileTemplate  = pongo2.Must(pongo2.FromString(dockerfileSkeleton))
	buildScriptTemplate = pongo2.Must(pongo2.FromString(buildScriptSkeleton))
)

func init() {
	// Outputs are Dockerfile/shell syntax, not HTML.
	pongo2.SetAutoescape(false)
}

// RenderDockerfile fills the Dockerfile skeleton for the given model.
// Each entry of additionalModels becomes an extra "ollama pull" layer, so
// one image can bake in several models.
func RenderDockerfile(model string, additionalModels []string) (string, error) {
	out, err := dockerfileTemplate.Execute(pongo2.Context{
		"model":             model,
		"additional_models": additionalModels,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render Dockerfile template: %w", err)
	}
	return out, nil
}

// RenderBuildScript fills the per-model shell script that submits the
// model's Cloud Build config from inside the build directory.
func RenderBuildScript(buildDir, modelID string) (string, error) {
	out, err := buildScriptTemplate.Execute(pongo2.Context{
		"build_dir": buildDir,
		"model_id":  modelID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render build script template: %w", err)
	}
	return out, nil
}

// UmbrellaScript produces the build-all script invoking every per-model
// build script in order. Unlike the per-model scripts it stops on the
// first failure.
func UmbrellaScript(scripts []string) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\nset -e\n\n")
	for _, script := range scripts {
		b.WriteString(script)
		b.WriteByte('\n')
	}
	return b.String()
}
