// Toolkit registry and request processing.
package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Toolkit routes execution requests to registered Parent tool groups and is
// the object a transport (or an LLM client loop) holds on to.
type Toolkit struct {
	parents map[string]Parent
	name    string
}

// New builds a Toolkit registering the given parents. Nil parents are skipped
// with a warning; a duplicate parent name overwrites the earlier registration.
func New(name string, parents ...Parent) *Toolkit {
	parentMap := make(map[string]Parent, len(parents))
	for _, p := range parents {
		if p == nil {
			log.Println("Warning: nil parent provided to toolkit.New, skipping.")
			continue
		}
		if _, exists := parentMap[p.GetName()]; exists {
			log.Printf("Warning: Duplicate parent name '%s' detected in toolkit.New. Overwriting.", p.GetName())
		}
		parentMap[p.GetName()] = p
	}

	return &Toolkit{
		parents: parentMap,
		name:    name,
	}
}

// GetToolkitName returns the toolkit's configured name. It is echoed in
// responses, which helps when several toolkits serve one process.
func (t *Toolkit) GetToolkitName() string {
	return t.name
}

// GetToolkitSchema returns the JSON schema for the toolkit request structure
// for the given provider. Anthropic is the only provider today and serves as
// the fallback for anything else.
func (t *Toolkit) GetToolkitSchema(provider string) interface{} {
	switch provider {
	case "anthropic":
		return GetToolKitSchemaForAnthropic()
	default:
		log.Printf("Warning: Unsupported schema provider '%s', defaulting to Anthropic schema", provider)
		return GetToolKitSchemaForAnthropic()
	}
}

// GetToolkitDescription renders an XML-like listing of every parent and child
// with its input schema. The output is written for an LLM system prompt: it
// explains the toolkit/parent/child hierarchy and how invocation nests.
func (t *Toolkit) GetToolkitDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("In this environment, you have access to the following <toolkit name=\"%s\">:\n", t.name))
	sb.WriteString("A <toolkit> is a collection of <parents>, a <parent> is a collection of <childs>.\n")
	sb.WriteString("Below is the list of available <parents> and their <childs>:\n")

	for _, parent := range t.parents {
		sb.WriteString(fmt.Sprintf("<parent name=\"%s\" description=\"%s\"></parent>\n", parent.GetName(), parent.GetDescription()))

		for _, child := range parent.GetChildren() {
			schemaStr := "schema_error"
			if schemaBytes, err := json.Marshal(child.GetInputSchema()); err == nil {
				schemaStr = string(schemaBytes)
			} else {
				log.Printf("Error marshaling schema for %s.%s: %v", parent.GetName(), child.GetName(), err)
			}
			sb.WriteString(fmt.Sprintf("<child name=\"%s\" description=\"%s\"><input_schema>%s</input_schema></child>\n", child.GetName(), child.GetDescription(), schemaStr))
		}
		sb.WriteString("</parent>\n")
		sb.WriteString("**NOTE**: A child tool cannot be invoked directly, the parent tool must be invoked first via its parent.\n")
	}
	sb.WriteString("</toolkit>")

	return sb.String()
}

// HandleToolKit is the request entry point: it parses the raw JSON request
// and runs it. Parse failures come back as a structured error response so the
// client still receives {code, message} rather than nothing.
func (t *Toolkit) HandleToolKit(ctx context.Context, input json.RawMessage) (ToolKitResponse, error) {
	tkRequest, err := t.parseToolKitInput(input)
	if err != nil {
		log.Printf("Error parsing toolkit input: %v", err)
		errResp := ToolKitResponse{
			Name: "toolkit_request_parse_error",
			Responses: []ParentResponse{
				{
					Name: "_parse_error",
					ChildsResponses: []ChildResponse{
						{Name: "_input_error", Response: NewError("invalid_input_json", err.Error())},
					},
				},
			},
		}
		return errResp, err
	}

	return t.processToolKit(ctx, tkRequest)
}

// processToolKit routes each parent request to its registered Parent and
// collects the responses. Unknown parents yield an error entry in place.
func (t *Toolkit) processToolKit(ctx context.Context, toolkitRequest ToolKit) (ToolKitResponse, error) {
	tlResponse := ToolKitResponse{
		Name: t.GetToolkitName(),
	}

	if len(toolkitRequest.ToolKitParents) == 0 {
		return tlResponse, NewError("no_toolkit_parents", "No toolkit parents specified in the request")
	}

	for _, parentReq := range toolkitRequest.ToolKitParents {
		parent, ok := t.parents[parentReq.Name]
		if !ok {
			log.Printf("Toolkit: Requested parent '%s' not found", parentReq.Name)
			errResp := ParentResponse{
				Name: parentReq.Name,
				ChildsResponses: []ChildResponse{
					{Name: "_parent_error", Response: NewError("parent_not_found", fmt.Sprintf("Parent toolkit '%s' not registered", parentReq.Name))},
				},
			}
			tlResponse.AddResponse(errResp)
			continue
		}

		parentResponse := parent.HandleChildren(ctx, parentReq.ToolKitChilds)
		tlResponse.AddResponse(parentResponse)
	}

	return tlResponse, nil
}

func (t *Toolkit) parseToolKitInput(input json.RawMessage) (ToolKit, error) {
	var toolkitRequest ToolKit
	if err := json.Unmarshal(input, &toolkitRequest); err != nil {
		return ToolKit{}, fmt.Errorf("error unmarshaling toolkit JSON input: %w", err)
	}
	return toolkitRequest, nil
}
