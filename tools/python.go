package tools

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

const (
	pythonTimeout   = 5 * time.Second
	maxPythonOutput = 500
	pythonLogPrefix = "[python]"
)

// pythonDenylist contains substrings that reject a code snippet outright.
// This is a textual gate appropriate for a trusted local tool, not a
// sandbox; run the whole service in an externally sandboxed environment.
var pythonDenylist = []string{"import os", "import sys", "exec", "eval", "__"}

// ExecutePythonTool runs Python snippets in an isolated subprocess with a
// short timeout, capturing stdout and stderr.
type ExecutePythonTool struct{}

func (t *ExecutePythonTool) Name() string {
	return "execute_python"
}

func (t *ExecutePythonTool) Description() string {
	return "Execute a short Python snippet (best-effort safety checks). Args: code (string)"
}

func (t *ExecutePythonTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	code := args["code"]
	if code == "" {
		code = args["query"]
	}
	if code == "" {
		return "", fmt.Errorf("code is required")
	}

	for _, banned := range pythonDenylist {
		if strings.Contains(code, banned) {
			return fmt.Sprintf("%s Unsafe code - forbidden construct %q", errorMarker, banned), nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, pythonTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "python3", "-c", code)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Printf("%s run inline code (%d bytes)", pythonLogPrefix, len(code))

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		log.Printf("%s TIMEOUT after %v", pythonLogPrefix, pythonTimeout)
		return fmt.Sprintf("%s Timeout - code ran longer than %s", errorMarker, pythonTimeout), nil
	}

	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	if len(output) > maxPythonOutput {
		output = output[:maxPythonOutput] + "\n... (output truncated)"
	}

	if err != nil {
		log.Printf("%s FAILED (%v) - %v", pythonLogPrefix, duration, err)
		if output == "" {
			return "", fmt.Errorf("execution failed: %w", err)
		}
		// Non-zero exit with captured output is still a usable result; the
		// stderr text tells the model what went wrong.
		return fmt.Sprintf("🐍 Output:\n%s", output), nil
	}

	log.Printf("%s OK (%v) stdout=%d stderr=%d", pythonLogPrefix, duration, stdout.Len(), stderr.Len())
	return fmt.Sprintf("🐍 Output:\n%s", output), nil
}
