package tools

import (
	"regexp"
	"strings"
)

// Call is a single tool invocation extracted from model output.
type Call struct {
	Tool string
	Args map[string]string
}

// callPattern matches the embedded call grammar [TOOL:name]args[/TOOL].
// The args segment is non-greedy and may span multiple lines.
var callPattern = regexp.MustCompile(`(?s)\[TOOL:(\w+)\](.*?)\[/TOOL\]`)

// ParseCalls scans generated text for embedded tool calls and returns them
// in left-to-right order of appearance. It performs no check that the tool
// name is registered; that belongs to the Registry at execution time.
//
// Args containing "=" are parsed as |-separated key=value pairs. Without
// "=", the whole segment maps to a single positional argument whose key
// depends on the tool (see positionalArgs).
func ParseCalls(text string) []Call {
	matches := callPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	calls := make([]Call, 0, len(matches))
	for _, m := range matches {
		name, argsText := m[1], m[2]

		var args map[string]string
		if strings.Contains(argsText, "=") {
			args = parseKeyValueArgs(argsText)
		} else {
			args = positionalArgs(name, argsText)
		}

		calls = append(calls, Call{Tool: name, Args: args})
	}
	return calls
}

// parseKeyValueArgs splits "k1=v1|k2=v2" into a map, trimming whitespace.
// Segments without "=" are silently skipped.
func parseKeyValueArgs(argsText string) map[string]string {
	args := make(map[string]string)
	for _, pair := range strings.Split(argsText, "|") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		args[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return args
}

// positionalArgs applies the per-tool fallback for a bare argument segment.
func positionalArgs(tool, argsText string) map[string]string {
	args := make(map[string]string)

	switch tool {
	case "read_file":
		args["path"] = strings.TrimSpace(argsText)
	case "write_file":
		path, content, _ := strings.Cut(argsText, "|")
		args["path"] = strings.TrimSpace(path)
		args["content"] = strings.TrimSpace(content)
	case "tavily_scrape", "fetch_page":
		args["url"] = strings.TrimSpace(argsText)
	default:
		// web_search, calculator, count_words, tavily_search,
		// tavily_search_scrape, deep_research and any unknown tool all
		// take the segment as a query.
		args["query"] = strings.TrimSpace(argsText)
	}
	return args
}
