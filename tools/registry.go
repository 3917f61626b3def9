package tools

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

const registryLogPrefix = "[registry]"

// errorMarker prefixes every failure result returned by Execute. Callers that
// need to distinguish success from failure programmatically match on this
// prefix; Execute itself never returns an error or panics.
const errorMarker = "❌"

// Registry holds all registered tools and executes them by name.
//
// The descriptor table is populated at startup and read-mostly afterwards;
// an RWMutex makes concurrent Execute calls safe. Enumeration order is
// registration order (stable across calls).
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. Registering a name twice overwrites
// the previous tool (last registration wins) while keeping its original
// position in the enumeration order. Collisions are a wiring bug, not a
// runtime case; they are logged but not rejected.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		log.Printf("%s overwriting tool %q", registryLogPrefix, name)
	} else {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Get retrieves a tool by name. Absence is a distinct outcome from an
// execution failure; callers must check ok.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tool names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Describe returns a catalog of all tools (name plus description) suitable
// for inclusion in a system prompt.
func (r *Registry) Describe() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	for _, name := range r.order {
		sb.WriteString("- ")
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(r.tools[name].Description())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Execute looks up a tool by name and runs it with the given arguments.
//
// This is the failure-isolation boundary: every outcome is a string. An
// unknown name yields a fixed not-found message, a handler error is
// flattened to a marker-prefixed message carrying the tool's name, and a
// panicking handler is recovered and reported the same way. One tool's
// fault never crashes the batch of calls or the caller.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]string) (result string) {
	tool, ok := r.Get(name)
	if !ok {
		return fmt.Sprintf("%s Tool '%s' does not exist", errorMarker, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("%s tool %s panicked: %v", registryLogPrefix, name, rec)
			result = fmt.Sprintf("%s Tool '%s' failed: %v", errorMarker, name, rec)
		}
	}()

	out, err := tool.Execute(ctx, args)
	if err != nil {
		log.Printf("%s tool %s failed: %v", registryLogPrefix, name, err)
		return fmt.Sprintf("%s Tool '%s' failed: %v", errorMarker, name, err)
	}
	return out
}
