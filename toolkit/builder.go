// Builders for Parent and Child implementations, so tool packages only write
// typed handler functions.
package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
)

// validate checks `validate` struct tags on child args after unmarshaling.
// One shared instance; the validator caches struct metadata internally.
var validate = validator.New(validator.WithRequiredStructEnabled())

// --- Parent builder ---

// builtParent is the standard Parent produced by NewParent.
type builtParent struct {
	name        string
	description string
	children    map[string]Child
}

// NewParent groups children under one named parent. Nil children are skipped
// with a warning and duplicate child names overwrite earlier ones.
func NewParent(name, description string, children ...Child) Parent {
	childMap := make(map[string]Child, len(children))
	for _, c := range children {
		if c == nil {
			log.Printf("Warning: nil child provided to NewParent(%q), skipping.", name)
			continue
		}
		if _, exists := childMap[c.GetName()]; exists {
			log.Printf("Warning: Duplicate child name '%s' in parent '%s'. Overwriting.", c.GetName(), name)
		}
		childMap[c.GetName()] = c
	}
	return &builtParent{name: name, description: description, children: childMap}
}

func (p *builtParent) GetName() string              { return p.name }
func (p *builtParent) GetDescription() string       { return p.description }
func (p *builtParent) GetChildren() map[string]Child { return p.children }

// HandleChildren runs each requested child in order. A child failure becomes
// an error entry in that child's slot; it never aborts the batch, so clients
// always get one response per request.
func (p *builtParent) HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse {
	response := ParentResponse{Name: p.name}

	for _, req := range childRequests {
		child, ok := p.children[req.Name]
		if !ok {
			log.Printf("Parent '%s': requested child '%s' not found", p.name, req.Name)
			response.AddResponse(ChildResponse{
				Name:     req.Name,
				Response: NewError("child_not_found", fmt.Sprintf("Child tool '%s' not registered under parent '%s'", req.Name, p.name)),
			})
			continue
		}

		result, err := child.Handle(ctx, req.Args)
		if err != nil {
			// Preserve structured errors; wrap plain ones.
			if tkErr, ok := err.(ToolKitError); ok {
				response.AddResponse(ChildResponse{Name: req.Name, Response: tkErr})
			} else {
				response.AddResponse(ChildResponse{
					Name:     req.Name,
					Response: NewError("handler_execution_error", err.Error()),
				})
			}
			continue
		}
		response.AddResponse(ChildResponse{Name: req.Name, Response: result})
	}
	return response
}

// --- Child builder ---

// builtChild adapts a typed handler function to the Child interface.
type builtChild[T any] struct {
	name        string
	description string
	schema      interface{}
	handler     func(ctx context.Context, args T) (interface{}, error)
}

// NewChild wraps a typed handler as a Child. The input schema is reflected
// from T's jsonschema tags once, at construction. Handle unmarshals the raw
// args into T, checks its validate tags, and calls the handler.
func NewChild[T any](name, description string, handler func(ctx context.Context, args T) (interface{}, error)) Child {
	return &builtChild[T]{
		name:        name,
		description: description,
		schema:      GenerateSchema[T](),
		handler:     handler,
	}
}

func (c *builtChild[T]) GetName() string             { return c.name }
func (c *builtChild[T]) GetDescription() string      { return c.description }
func (c *builtChild[T]) GetInputSchema() interface{} { return c.schema }

func (c *builtChild[T]) Handle(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, NewError("invalid_arguments", fmt.Sprintf("arguments for '%s' do not match the expected schema: %v", c.name, err))
		}
	}
	if err := validate.StructCtx(ctx, &args); err != nil {
		return nil, NewError("invalid_arguments", fmt.Sprintf("arguments for '%s' failed validation: %v", c.name, err))
	}
	return c.handler(ctx, args)
}
