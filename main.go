package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"ollama-buildgen/generator"
	"ollama-buildgen/model"
	"ollama-buildgen/parser"
	"ollama-buildgen/submit"
)

type cliOptions struct {
	models           *string
	additionalModels *string
	buildDir         *string
	submit           *bool
	noBuildScripts   *bool
	verbose          *bool
}

func main() {

	cliOptions := defineFlags()

	fmt.Println("🚀 Ollama Cloud Build Generator")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	models := model.ParseList(*cliOptions.models)
	if len(models) == 0 {
		fmt.Fprintf(os.Stderr, "Error: -models contained no model names\n")
		os.Exit(1)
	}
	additionalModels := model.ParseList(*cliOptions.additionalModels)

	// Generate Dockerfile, cloudbuild.yaml and build scripts per model
	fmt.Println("=== GENERATING BUILD FILES ===")
	artifacts, err := generator.Generate(models, generator.Options{
		BuildDir:         *cliOptions.buildDir,
		AdditionalModels: additionalModels,
		BuildScripts:     !*cliOptions.noBuildScripts,
	})
	if err != nil {
		fmt.Printf("❌ Error generating build files: %v\n", err)
		os.Exit(1)
	}

	// Parse the generated Dockerfiles back to catch template regressions
	verifyArtifacts(artifacts, *cliOptions.verbose)

	if *cliOptions.submit {
		fmt.Println("=== SUBMITTING BUILDS ===")
		submitter := submit.New(*cliOptions.buildDir)
		if failures := submitter.SubmitAll(models); failures > 0 {
			fmt.Printf("⚠️  %d of %d builds failed to submit\n", failures, len(models))
		}
		return
	}

	fmt.Println("\nFiles generated successfully. To submit builds, run:")
	fmt.Printf("  %s\n", filepath.Join(*cliOptions.buildDir, generator.UmbrellaScriptName))
	fmt.Println("Or specify -submit when running this tool")
}

func defineFlags() cliOptions {
	// Define CLI flags
	models := flag.String("models", "", "Comma-separated list of model names (e.g., gemma:2b,llama3.1)")
	additionalModels := flag.String("additional-models", "", "Comma-separated models baked into every image on top of its primary model")
	buildDir := flag.String("build-dir", "./build", "Directory where build files will be created")
	submitBuilds := flag.Bool("submit", false, "Submit builds to Google Cloud")
	noBuildScripts := flag.Bool("no-build-scripts", false, "Don't generate build scripts")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generates Dockerfile and cloudbuild.yaml templates for Ollama models.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -models gemma:2b,llama3.1\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -models qwen3:32b -build-dir ./build -submit\n", os.Args[0])
	}

	flag.Parse()

	// Validate required argument
	if *models == "" {
		fmt.Fprintf(os.Stderr, "Error: -models flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	return cliOptions{
		models:           models,
		additionalModels: additionalModels,
		buildDir:         buildDir,
		submit:           submitBuilds,
		noBuildScripts:   noBuildScripts,
		verbose:          verbose,
	}
}

func verifyArtifacts(artifacts []generator.Artifact, verbose bool) {
	fmt.Println("=== VERIFYING GENERATED DOCKERFILES ===")

	for _, artifact := range artifacts {
		info, err := parser.ParseDockerfile(artifact.Dockerfile)
		if err != nil {
			fmt.Printf("❌ Error parsing %s: %v\n", artifact.Dockerfile, err)
			continue
		}

		if !slices.Contains(parser.PulledModels(info), artifact.Model) {
			fmt.Printf("⚠️  %s does not pull %s\n", artifact.Dockerfile, artifact.Model)
			continue
		}

		if verbose {
			parser.PrintDockerfileInfo(artifact.Dockerfile, info)
		} else {
			fmt.Printf("✅ %s pulls %s\n", filepath.Base(artifact.Dockerfile), artifact.Model)
		}
	}

	fmt.Println()
}
