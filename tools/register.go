package tools

import (
	"chatbot-local/research"
)

// RegisterDefaults wires the local built-in tool set into the registry.
// sandboxDir confines write_file; all other tools are stateless.
func RegisterDefaults(registry *Registry, sandboxDir string) {
	registry.Register(&ReadFileTool{})
	registry.Register(NewWriteFileTool(sandboxDir))
	registry.Register(&ListDirectoryTool{})
	registry.Register(NewWebSearchTool())
	registry.Register(NewFetchPageTool())
	registry.Register(&CalculatorTool{})
	registry.Register(&ExecutePythonTool{})
	registry.Register(&SystemInfoTool{})
	registry.Register(&DateTimeTool{})
	registry.Register(&CountWordsTool{})
}

// RegisterResearch wires the research tool set. The client may be nil, in
// which case every research tool answers with a fixed "not available"
// message instead of calling out.
func RegisterResearch(registry *Registry, client *research.Client) {
	registry.Register(NewTavilySearchTool(client))
	registry.Register(NewTavilyScrapeTool(client))
	registry.Register(NewTavilySearchScrapeTool(client))
	registry.Register(NewDeepResearchTool(client))
	registry.Register(NewResearchStatusTool(client))
}
