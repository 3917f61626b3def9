// Package tools provides the tool interface, the registry, and the built-in
// tool implementations the model can invoke.
package tools

import "context"

// Tool defines the interface that all tools must implement.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description for the LLM,
	// including an informal argument schema.
	Description() string

	// Execute runs the tool with the given arguments and returns the result.
	// The context should be used for cancellation and timeouts.
	//
	// Returning an error is allowed; the Registry converts it into a
	// marker-prefixed result string so a failing tool never halts a batch.
	Execute(ctx context.Context, args map[string]string) (string, error)
}
