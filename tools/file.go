package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	maxReadChars   = 500
	maxListEntries = 20
	fileLogPrefix  = "[file]"
)

// ReadFileTool reads files from disk, returning at most the first
// maxReadChars characters.
type ReadFileTool struct{}

func (t *ReadFileTool) Name() string {
	return "read_file"
}

func (t *ReadFileTool) Description() string {
	return "Read the contents of a file. Args: path (string)"
}

func (t *ReadFileTool) Execute(_ context.Context, args map[string]string) (string, error) {
	path := args["path"]
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	log.Printf("%s read %s", fileLogPrefix, path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("%s File '%s' does not exist", errorMarker, path), nil
		}
		return "", fmt.Errorf("reading file: %w", err)
	}

	text := string(content)
	if len(text) > maxReadChars {
		return fmt.Sprintf("📄 Contents of '%s':\n%s...", path, text[:maxReadChars]), nil
	}
	return fmt.Sprintf("📄 Contents of '%s':\n%s", path, text), nil
}

// WriteFileTool writes text into the sandbox directory. Only the basename of
// the requested path is used; directory components are stripped so a write
// can never escape the sandbox root. Writes to the same destination are
// serialized with a per-path lock to avoid interleaved partial writes.
type WriteFileTool struct {
	sandboxDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWriteFileTool creates a write tool confined to sandboxDir.
func NewWriteFileTool(sandboxDir string) *WriteFileTool {
	if sandboxDir == "" {
		sandboxDir = "./mcp_workspace"
	}
	return &WriteFileTool{
		sandboxDir: sandboxDir,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (t *WriteFileTool) Name() string {
	return "write_file"
}

func (t *WriteFileTool) Description() string {
	return "Write text to a file inside the sandbox directory. Args: path (string), content (string)"
}

func (t *WriteFileTool) Execute(_ context.Context, args map[string]string) (string, error) {
	path := args["path"]
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	content := args["content"]

	if err := os.MkdirAll(t.sandboxDir, 0755); err != nil {
		return "", fmt.Errorf("creating sandbox directory: %w", err)
	}

	safePath := filepath.Join(t.sandboxDir, filepath.Base(path))

	lock := t.pathLock(safePath)
	lock.Lock()
	defer lock.Unlock()

	if err := os.WriteFile(safePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	log.Printf("%s wrote %d bytes to %s", fileLogPrefix, len(content), safePath)
	return fmt.Sprintf("✅ Wrote %d characters to '%s'", len(content), safePath), nil
}

func (t *WriteFileTool) pathLock(path string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[path] = lock
	}
	return lock
}

// ListDirectoryTool lists up to maxListEntries entries of a directory,
// tagging each as file or directory.
type ListDirectoryTool struct{}

func (t *ListDirectoryTool) Name() string {
	return "list_directory"
}

func (t *ListDirectoryTool) Description() string {
	return "List files in a directory. Args: path (string, default '.')"
}

func (t *ListDirectoryTool) Execute(_ context.Context, args map[string]string) (string, error) {
	path := args["path"]
	if path == "" {
		path = "."
	}

	log.Printf("%s list %s", fileLogPrefix, path)

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("listing directory: %w", err)
	}

	if len(entries) > maxListEntries {
		entries = entries[:maxListEntries]
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		tag := "📄"
		if entry.IsDir() {
			tag = "📁"
		}
		lines = append(lines, fmt.Sprintf("%s %s", tag, entry.Name()))
	}

	return fmt.Sprintf("📂 Contents of '%s':\n%s", path, strings.Join(lines, "\n")), nil
}
