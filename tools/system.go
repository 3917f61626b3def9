package tools

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// SystemInfoTool reports OS, release, architecture, processor and runtime
// version.
type SystemInfoTool struct{}

func (t *SystemInfoTool) Name() string {
	return "system_info"
}

func (t *SystemInfoTool) Description() string {
	return "Return system information (OS, release, architecture)"
}

func (t *SystemInfoTool) Execute(_ context.Context, _ map[string]string) (string, error) {
	release := "Unknown"
	processor := "Unknown"

	var uname unix.Utsname
	if err := unix.Uname(&uname); err == nil {
		release = unixString(uname.Release[:])
		if p := unixString(uname.Machine[:]); p != "" {
			processor = p
		}
	}

	lines := []string{
		fmt.Sprintf("- System: %s", capitalize(runtime.GOOS)),
		fmt.Sprintf("- Release: %s", release),
		fmt.Sprintf("- Machine: %s", runtime.GOARCH),
		fmt.Sprintf("- Processor: %s", processor),
		fmt.Sprintf("- Runtime: %s", runtime.Version()),
	}
	return "💻 System information:\n" + strings.Join(lines, "\n"), nil
}

func unixString(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DateTimeTool returns the current local timestamp and weekday name.
type DateTimeTool struct{}

func (t *DateTimeTool) Name() string {
	return "get_datetime"
}

func (t *DateTimeTool) Description() string {
	return "Return the current date and time"
}

func (t *DateTimeTool) Execute(_ context.Context, _ map[string]string) (string, error) {
	now := time.Now()
	return fmt.Sprintf("🕐 %s (%s)", now.Format("2006-01-02 15:04:05"), now.Weekday()), nil
}

// CountWordsTool returns word, character and line counts for a text.
type CountWordsTool struct{}

func (t *CountWordsTool) Name() string {
	return "count_words"
}

func (t *CountWordsTool) Description() string {
	return "Count words in a text. Args: text (string)"
}

func (t *CountWordsTool) Execute(_ context.Context, args map[string]string) (string, error) {
	text := args["text"]
	if text == "" {
		text = args["query"]
	}

	words := len(strings.Fields(text))
	chars := len(text)
	lines := len(strings.Split(text, "\n"))

	return fmt.Sprintf("📊 Text statistics:\n- Words: %d\n- Characters: %d\n- Lines: %d", words, chars, lines), nil
}
