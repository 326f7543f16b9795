// Request, response, error and schema types for the toolkit layer.
package toolkit

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// --- Request/Response Structures ---

// ToolKit is the top-level execution request. One request may fan out to
// several parents and children, which cuts round trips for clients that batch
// tool calls.
type ToolKit struct {
	Name           string          `json:"name" jsonschema:"required,description=The name of the toolkit."`
	ToolKitParents []ToolKitParent `json:"parents" jsonschema:"required,description=The parent toolkits to execute within the toolkit."`
}

// ToolKitParent names one parent and the child invocations to run under it.
type ToolKitParent struct {
	Name          string         `json:"name" jsonschema:"required,description=The name of the parent toolkit to execute."`
	ToolKitChilds []ToolKitChild `json:"childs" jsonschema:"required,description=The child tools to execute within this parent."`
}

// ToolKitChild is one child invocation. Args stay raw JSON so the child's
// handler unmarshals them into its own typed struct.
type ToolKitChild struct {
	Name string          `json:"name" jsonschema:"required,description=The name of the child tool to execute."`
	Args json.RawMessage `json:"args" jsonschema:"required,description=The arguments for the child tool, as a JSON object."`
}

// ToolKitResponse mirrors the request shape: one ParentResponse per requested
// parent, in request order.
type ToolKitResponse struct {
	Name      string           `json:"name"`
	Responses []ParentResponse `json:"responses,omitempty"`
}

// ParentResponse aggregates the child results of one parent, in the order the
// children were requested.
type ParentResponse struct {
	Name            string          `json:"name"`
	ChildsResponses []ChildResponse `json:"childsResponses,omitempty"`
}

// ChildResponse holds one child's result. Response carries either the
// handler's return value or a ToolKitError, so clients process success and
// failure uniformly.
type ChildResponse struct {
	Name     string      `json:"name"`
	Response interface{} `json:"response,omitempty"`
}

// --- Error Handling ---

// ToolKitError is the structured error every tool surfaces to clients:
// a machine-readable code and a human-readable message.
type ToolKitError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Error implements the error interface so ToolKitError flows through normal
// Go error handling without losing its structure.
func (e ToolKitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a ToolKitError. Handlers should prefer this over ad-hoc
// errors so every failure reaching the client carries a code.
//
// Codes used by the framework itself:
//   - "invalid_arguments": args did not match the child's schema
//   - "handler_execution_error": the handler returned a plain error
//   - "child_not_found" / "parent_not_found": unknown tool names
func NewError(code, message string) error {
	return ToolKitError{Code: code, Message: message}
}

// --- Response Helpers ---

// AddResponse appends a ParentResponse while building a ToolKitResponse.
func (tr *ToolKitResponse) AddResponse(pr ParentResponse) {
	tr.Responses = append(tr.Responses, pr)
}

// AddResponse appends a ChildResponse while building a ParentResponse.
func (pr *ParentResponse) AddResponse(cr ChildResponse) {
	pr.ChildsResponses = append(pr.ChildsResponses, cr)
}

// --- Schema Generation ---

// GenerateSchema reflects a JSON schema for T, honoring jsonschema struct
// tags (required, description). The result is self-contained (no $refs) so it
// can be handed straight to an LLM tool registration call.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	return reflector.Reflect(&v)
}

// GetToolKitSchemaForAnthropic returns the request schema in the shape
// Anthropic's tool-use API expects for the top-level ToolKit input.
func GetToolKitSchemaForAnthropic() interface{} {
	return GenerateSchema[ToolKit]()
}
