package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallsPositionalQuery(t *testing.T) {
	calls := ParseCalls("Let me check: [TOOL:calculator]2+2[/TOOL]")

	require.Len(t, calls, 1)
	assert.Equal(t, "calculator", calls[0].Tool)
	assert.Equal(t, map[string]string{"query": "2+2"}, calls[0].Args)
}

func TestParseCallsKeyValue(t *testing.T) {
	calls := ParseCalls("[TOOL:write_file]path=notes.txt|content=hello world[/TOOL]")

	require.Len(t, calls, 1)
	assert.Equal(t, "write_file", calls[0].Tool)
	assert.Equal(t, "notes.txt", calls[0].Args["path"])
	assert.Equal(t, "hello world", calls[0].Args["content"])
}

func TestParseCallsKeyValueTrimsWhitespace(t *testing.T) {
	calls := ParseCalls("[TOOL:tavily_search] query = go releases | num_results = 5 [/TOOL]")

	require.Len(t, calls, 1)
	assert.Equal(t, "go releases", calls[0].Args["query"])
	assert.Equal(t, "5", calls[0].Args["num_results"])
}

func TestParseCallsWriteFilePositional(t *testing.T) {
	calls := ParseCalls("[TOOL:write_file]notes.txt|remember the milk[/TOOL]")

	require.Len(t, calls, 1)
	assert.Equal(t, "notes.txt", calls[0].Args["path"])
	assert.Equal(t, "remember the milk", calls[0].Args["content"])
}

func TestParseCallsReadFilePositional(t *testing.T) {
	calls := ParseCalls("[TOOL:read_file]  todo.md  [/TOOL]")

	require.Len(t, calls, 1)
	assert.Equal(t, map[string]string{"path": "todo.md"}, calls[0].Args)
}

func TestParseCallsURLTools(t *testing.T) {
	for _, name := range []string{"tavily_scrape", "fetch_page"} {
		calls := ParseCalls("[TOOL:" + name + "]https://example.com/page[/TOOL]")
		require.Len(t, calls, 1, name)
		assert.Equal(t, "https://example.com/page", calls[0].Args["url"], name)
	}
}

func TestParseCallsMultipleInOrder(t *testing.T) {
	text := "First [TOOL:calculator]1+1[/TOOL] then [TOOL:get_datetime][/TOOL] done"

	calls := ParseCalls(text)

	require.Len(t, calls, 2)
	assert.Equal(t, "calculator", calls[0].Tool)
	assert.Equal(t, "get_datetime", calls[1].Tool)
}

func TestParseCallsMultiline(t *testing.T) {
	text := "[TOOL:execute_python]code=print('a')\nprint('b')[/TOOL]"

	calls := ParseCalls(text)

	require.Len(t, calls, 1)
	assert.Equal(t, "print('a')\nprint('b')", calls[0].Args["code"])
}

func TestParseCallsNoMatches(t *testing.T) {
	assert.Nil(t, ParseCalls("Just a plain answer with no tool markers."))
	assert.Nil(t, ParseCalls("[TOOL:broken]no closing marker"))
	assert.Nil(t, ParseCalls(""))
}

func TestParseCallsUnknownToolDefaultsToQuery(t *testing.T) {
	calls := ParseCalls("[TOOL:made_up_tool]some argument[/TOOL]")

	require.Len(t, calls, 1)
	assert.Equal(t, "made_up_tool", calls[0].Tool)
	assert.Equal(t, "some argument", calls[0].Args["query"])
}

func TestParseCallsSkipsPairsWithoutEquals(t *testing.T) {
	calls := ParseCalls("[TOOL:tavily_search]query=golang|stray[/TOOL]")

	require.Len(t, calls, 1)
	assert.Equal(t, map[string]string{"query": "golang"}, calls[0].Args)
}
