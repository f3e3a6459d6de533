package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/xeipuuv/gojsonschema"
)

// FormatURI marks a string property as an absolute URI
func FormatURI() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["format"] = "uri"
	}
}

// CompileInputSchema compiles the declared input schema of a tool
func CompileInputSchema(tool mcp.Tool) (*gojsonschema.Schema, error) {
	raw := tool.RawInputSchema
	if len(raw) == 0 {
		var err error
		raw, err = json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to encode input schema of %s: %w", tool.Name, err)
		}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid input schema for %s: %w", tool.Name, err)
	}
	return schema, nil
}

// ValidateArguments checks args against schema. Missing arguments are
// validated as an empty object.
func ValidateArguments(schema *gojsonschema.Schema, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var errs []string
		for _, e := range result.Errors() {
			errs = append(errs, e.String())
		}
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}

// ValidatedToolHandler rejects calls whose arguments do not match the
// tool's input schema before handler runs.
func ValidatedToolHandler(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) (mcpserver.ToolHandlerFunc, error) {
	schema, err := CompileInputSchema(tool)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ValidateArguments(schema, request.GetArguments()); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments for %s: %v", tool.Name, err)), nil
		}
		return handler(ctx, request)
	}, nil
}
