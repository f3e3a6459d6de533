package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetingbaas/meeting-mcp/internal/docs"
	"github.com/meetingbaas/meeting-mcp/internal/speaking"
)

// Resource URIs
const (
	PersonasURI = "meetingbaas://personas"
	ToolDocsURI = "meetingbaas://docs/tools"
)

// RegisterCatalogResources registers the persona catalog and tool
// documentation resources
func RegisterCatalogResources(s *mcpserver.MCPServer) {
	personasResource := mcp.NewResource(
		PersonasURI,
		"Speaking Bot Personas",
		mcp.WithResourceDescription("Persona names accepted by joinSpeakingMeeting, in catalog order"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(personasResource, handlePersonas)

	toolDocsResource := mcp.NewResource(
		ToolDocsURI,
		"Tool Documentation Links",
		mcp.WithResourceDescription("Meeting BaaS API reference page for each documented tool"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(toolDocsResource, handleToolDocs)
}

func handlePersonas(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(request.Params.URI, map[string]any{
		"personas": speaking.Personas(),
	})
}

func handleToolDocs(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	links := make(map[string]string)
	for _, name := range docs.ToolNames() {
		url, _ := docs.URLForTool(name)
		links[name] = url
	}
	return jsonContents(request.Params.URI, map[string]any{
		"baseUrl": docs.BaseURL,
		"tools":   links,
	})
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
