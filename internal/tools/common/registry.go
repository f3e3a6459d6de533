package common

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetingbaas/meeting-mcp/internal/docs"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
	"github.com/meetingbaas/meeting-mcp/internal/server"
)

// Builder accumulates tool definitions. It is not safe for concurrent use;
// tools are added once at startup.
type Builder struct {
	sc     *server.ServerContext
	logger *slog.Logger
	tools  map[string]mcpserver.ServerTool
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithServerContext instruments every tool with the metrics and audit
// logger of sc
func WithServerContext(sc *server.ServerContext) BuilderOption {
	return func(b *Builder) {
		b.sc = sc
	}
}

// WithLogger sets the logger used for registration warnings
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// ToolOption configures a single tool added to a Builder
type ToolOption func(*toolConfig)

type toolConfig struct {
	service   string
	operation string
}

// WithService records the API area and operation behind a tool in its
// metrics, spans and audit entries
func WithService(service, operation string) ToolOption {
	return func(c *toolConfig) {
		c.service = service
		c.operation = operation
	}
}

// NewRegistryBuilder creates an empty Builder
func NewRegistryBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		tools: make(map[string]mcpserver.ServerTool),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		if b.sc != nil {
			b.logger = b.sc.Logger()
		} else {
			b.logger = slog.Default()
		}
	}
	return b
}

// Add registers a tool. The description gains its documentation link, and
// the handler is wrapped with argument validation and instrumentation.
// Adding a name twice replaces the earlier definition.
func (b *Builder) Add(tool mcp.Tool, handler mcpserver.ToolHandlerFunc, opts ...ToolOption) error {
	var cfg toolConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	tool.Description = docs.EnhanceDescription(tool.Name, tool.Description)

	validated, err := ValidatedToolHandler(tool, handler)
	if err != nil {
		return err
	}

	if _, exists := b.tools[tool.Name]; exists {
		b.logger.Warn("tool registered twice, replacing earlier definition", logging.Tool(tool.Name))
	}

	b.tools[tool.Name] = mcpserver.ServerTool{
		Tool:    tool,
		Handler: InstrumentedToolHandler(tool.Name, cfg.service, cfg.operation, b.sc, validated),
	}
	return nil
}

// Build returns an immutable snapshot of the tools added so far
func (b *Builder) Build() *Registry {
	r := &Registry{
		tools: make(map[string]mcpserver.ServerTool, len(b.tools)),
		names: make([]string, 0, len(b.tools)),
	}
	for name, tool := range b.tools {
		r.tools[name] = tool
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Registry is the fixed set of tools exposed by the server
type Registry struct {
	tools map[string]mcpserver.ServerTool
	names []string
}

// Names returns the sorted tool names
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Tool returns the definition of the named tool
func (r *Registry) Tool(name string) (mcp.Tool, bool) {
	st, ok := r.tools[name]
	return st.Tool, ok
}

// ServerTools returns every tool with its handler, sorted by name
func (r *Registry) ServerTools() []mcpserver.ServerTool {
	out := make([]mcpserver.ServerTool, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.tools[name])
	}
	return out
}

// Install adds every tool to the MCP server
func (r *Registry) Install(s *mcpserver.MCPServer) {
	s.AddTools(r.ServerTools()...)
}

// Call invokes the named tool directly, bypassing the MCP transport
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	st, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	var request mcp.CallToolRequest
	request.Params.Name = name
	request.Params.Arguments = args
	return st.Handler(ctx, request)
}
