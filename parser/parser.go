// Package parser reads a generated Dockerfile back so the CLI can confirm
// the artifact actually pulls the model it was generated for.
//
// Instead of matching the file text, we feed it to buildkit's Dockerfile
// parser and walk the AST: result.AST.Children is one node per instruction,
// node.Value is the instruction name, node.Next the argument list, and
// node.Attributes marks JSON-form commands. That way a template regression
// that breaks Dockerfile syntax is caught here, before anything is
// submitted to Cloud Build.
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// DockerfileInfo contains the instructions the generated Dockerfiles use.
type DockerfileInfo struct {
	From       string            // Base image
	Env        map[string]string // ENV variables
	Workdir    string            // WORKDIR path
	Runs       []string          // RUN commands
	Entrypoint []string          // ENTRYPOINT
}

// ParseDockerfile parses a Dockerfile with the buildkit parser.
func ParseDockerfile(path string) (*DockerfileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Dockerfile: %w", err)
	}
	defer f.Close()

	result, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Dockerfile: %w", err)
	}

	info := &DockerfileInfo{
		Env: make(map[string]string),
	}

	for _, node := range result.AST.Children {
		switch strings.ToUpper(node.Value) {
		case "FROM":
			if node.Next != nil {
				info.From = node.Next.Value
			}

		case "ENV":
			key, value := parseKeyValue(node.Next)
			info.Env[key] = value

		case "WORKDIR":
			if node.Next != nil {
				info.Workdir = node.Next.Value
			}

		case "RUN":
			info.Runs = append(info.Runs, reconstructCommand(node.Next))

		case "ENTRYPOINT":
			info.Entrypoint = parseCommandArray(node)
		}
	}

	return info, nil
}

// PulledModels extracts the models fetched by "ollama pull" RUN commands,
// in the order they appear. The model is everything after "pull" up to the
// next shell operator, so names containing spaces survive intact.
func PulledModels(info *DockerfileInfo) []string {
	var models []string
	for _, run := range info.Runs {
		for _, segment := range shellSegments(run) {
			fields := strings.Fields(segment)
			if len(fields) >= 3 && fields[0] == "ollama" && fields[1] == "pull" {
				models = append(models, strings.Join(fields[2:], " "))
			}
		}
	}
	return models
}

// shellSegments splits a shell command on its operators (&&, ||, ;, &)
// into trimmed simple commands.
func shellSegments(cmd string) []string {
	cmd = strings.ReplaceAll(cmd, "||", ";")
	cmd = strings.ReplaceAll(cmd, "&&", ";")
	cmd = strings.ReplaceAll(cmd, "&", ";")

	segments := strings.Split(cmd, ";")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	return segments
}

// parseCommandArray handles both JSON and shell format commands.
// buildkit tells us if it's JSON via node.Attributes["json"].
func parseCommandArray(node *parser.Node) []string {
	if node.Attributes != nil && node.Attributes["json"] {
		var result []string
		for n := node.Next; n != nil; n = n.Next {
			result = append(result, n.Value)
		}
		return result
	}

	cmd := reconstructCommand(node.Next)
	if cmd != "" {
		return []string{"/bin/sh", "-c", cmd}
	}
	return nil
}

// reconstructCommand joins node values back into a single command string.
// Legacy-form instructions like "ENV KEY value" carry a trailing empty
// node; skip those so the joined command has no stray spaces.
func reconstructCommand(node *parser.Node) string {
	var parts []string
	for n := node; n != nil; n = n.Next {
		if n.Value == "" {
			continue
		}
		parts = append(parts, n.Value)
	}
	return strings.Join(parts, " ")
}

// parseKeyValue extracts key=value or key value pairs.
func parseKeyValue(node *parser.Node) (string, string) {
	if node == nil {
		return "", ""
	}

	fullValue := reconstructCommand(node)

	if strings.Contains(fullValue, "=") {
		parts := strings.SplitN(fullValue, "=", 2)
		return parts[0], parts[1]
	}

	parts := strings.SplitN(fullValue, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}

	return fullValue, ""
}

// PrintDockerfileInfo displays a parsed Dockerfile.
func PrintDockerfileInfo(path string, info *DockerfileInfo) {
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("%s\n", path)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("  📦 Base: %s\n", info.From)

	if info.Workdir != "" {
		fmt.Printf("  📁 Workdir: %s\n", info.Workdir)
	}

	if len(info.Env) > 0 {
		fmt.Println("  🌍 ENV:")
		for k, v := range info.Env {
			fmt.Printf("     • %s = %s\n", k, v)
		}
	}

	if len(info.Runs) > 0 {
		fmt.Printf("  ⚙️  RUN commands: %d\n", len(info.Runs))
		for _, run := range info.Runs {
			fmt.Printf("     • %s\n", truncate(run, 70))
		}
	}

	if len(info.Entrypoint) > 0 {
		fmt.Printf("  🚀 Entrypoint: %v\n", info.Entrypoint)
	}

	fmt.Println()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
