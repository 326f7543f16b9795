// Package toolkit is the tool-orchestration layer editkit exposes to AI
// clients. A Toolkit holds Parent tool groups, each Parent holds Child tools,
// and a single request can invoke several children across several parents.
//
// Core concepts:
//   - Toolkit: top-level registry routing requests to Parents
//   - Parent: a named group of related tools (e.g. "files", "session")
//   - Child: one invocable tool with typed args and a handler
//
// This file defines the interfaces every Parent and Child must satisfy.
package toolkit

import (
	"context"
	"encoding/json"
)

// Parent is a named collection of related Child tools. It routes child
// requests, validates them, and aggregates their responses while keeping the
// request's ordering.
type Parent interface {
	// GetName returns the parent's unique name within its toolkit.
	GetName() string

	// GetDescription describes the parent's purpose for schema output.
	GetDescription() string

	// GetChildren returns the child tools keyed by their names.
	GetChildren() map[string]Child

	// HandleChildren executes a batch of child requests in order and
	// collects a ParentResponse. Context is propagated to every child so
	// cancellation and deadlines reach the handlers.
	HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse
}

// Child is one invocable tool. Implementations unmarshal their raw JSON args,
// run the operation, and return a result or a structured error.
type Child interface {
	// GetName returns the child's unique name within its parent.
	GetName() string

	// GetDescription describes what the tool does for schema output.
	GetDescription() string

	// GetInputSchema returns the JSON schema of the tool's arguments.
	GetInputSchema() interface{}

	// Handle runs the tool. Errors should be ToolKitError values so the
	// transport can surface a {code, message} pair instead of raw text.
	Handle(ctx context.Context, args json.RawMessage) (interface{}, error)
}
