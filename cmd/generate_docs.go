package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate a markdown reference of every MCP tool, grouped the way serve
registers them. The output is built from the registered tool schemas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(cmd.Context(), outputFile, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// toolCategory is a titled group of tool definitions
type toolCategory struct {
	Title string
	Tools []mcp.Tool
}

func runGenerateDocs(ctx context.Context, outputFile string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// No credentials are needed to describe tools
	serverContext, err := server.NewServerContext(ctx, server.Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	categories, err := collectToolCategories(serverContext)
	if err != nil {
		return err
	}

	markdown := generateToolsMarkdown(categories)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
		return nil
	}

	_, err = io.WriteString(stdout, markdown)
	return err
}

// collectToolCategories registers each tool group on its own registry so the
// generated document can be organised by group
func collectToolCategories(sc *server.ServerContext) ([]toolCategory, error) {
	categories := make([]toolCategory, 0, len(toolGroups))
	for _, g := range toolGroups {
		b := common.NewRegistryBuilder(common.WithServerContext(sc))
		if err := g.register(b, sc); err != nil {
			return nil, fmt.Errorf("failed to register %s tools: %w", g.name, err)
		}

		registry := b.Build()
		category := toolCategory{Title: g.title}
		for _, name := range registry.Names() {
			tool, _ := registry.Tool(name)
			category.Tools = append(category.Tools, tool)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func generateToolsMarkdown(categories []toolCategory) string {
	var sb strings.Builder

	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("Tools exposed by `meeting-mcp serve`. Generated by `meeting-mcp generate-docs`; do not edit by hand.\n\n")

	sb.WriteString("## Table of Contents\n\n")
	for _, category := range categories {
		anchor := strings.ToLower(strings.ReplaceAll(category.Title, " ", "-"))
		fmt.Fprintf(&sb, "- [%s](#%s)\n", category.Title, anchor)
	}
	sb.WriteString("\n")

	sb.WriteString("## Authentication\n\n")
	sb.WriteString("Bot and calendar tools use the server's default API key (`MEETING_BAAS_API_KEY`) ")
	sb.WriteString("unless the HTTP request carries an `x-meeting-baas-api-key` header. ")
	sb.WriteString("Speaking bot tools take the key as the `meetingBaasApiKey` argument.\n\n")

	for _, category := range categories {
		fmt.Fprintf(&sb, "## %s\n\n", category.Title)
		for _, tool := range category.Tools {
			sb.WriteString(generateToolMarkdown(tool))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func generateToolMarkdown(tool mcp.Tool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "### %s\n\n", tool.Name)
	if tool.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", tool.Description)
	}

	props := tool.InputSchema.Properties
	if len(props) == 0 {
		return sb.String()
	}

	sb.WriteString("**Arguments:**\n")
	for _, name := range slices.Sorted(maps.Keys(props)) {
		prop, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		sb.WriteString(argumentLine(name, prop, slices.Contains(tool.InputSchema.Required, name)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// argumentLine renders one argument as "- `name` (type, required): description"
func argumentLine(name string, prop map[string]any, required bool) string {
	propType, ok := prop["type"].(string)
	if !ok {
		propType = "any"
	}
	presence := "optional"
	if required {
		presence = "required"
	}

	desc, ok := prop["description"].(string)
	if !ok {
		desc = propType + " parameter"
	}
	line := fmt.Sprintf("- `%s` (%s, %s): %s", name, propType, presence, desc)

	if values, ok := prop["enum"].([]string); ok && len(values) > 0 {
		line += fmt.Sprintf(" One of: `%s`.", strings.Join(values, "`, `"))
	}
	return line + "\n"
}
