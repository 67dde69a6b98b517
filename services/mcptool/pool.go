// Package mcptool connects the registered tool descriptors to their MCP
// servers and routes tool calls issued by the planner backend.
package mcptool

import (
	"context"
	"fmt"
	"strings"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"voyago/models"
)

// nameSeparator joins the descriptor name and the server-side tool name into
// one identifier the model can call, e.g. "flight-search__search_flights".
const nameSeparator = "__"

// ToolSchema is one invocable tool exposed by a connected server.
type ToolSchema struct {
	Name        string
	Description string
	InputSchema map[string]any
}

type route struct {
	client   *mcpclient.Client
	toolName string
}

// Pool holds the MCP clients that survived connection for one planning run.
type Pool struct {
	logger  *zap.Logger
	clients map[string]*mcpclient.Client
	tools   []ToolSchema
	routes  map[string]route
}

// Connect dials every descriptor and collects the tools of the servers that
// answered. Unreachable servers do not abort the run; each one becomes a
// ToolUnavailableError-backed notice and the pool carries on with the rest.
func Connect(ctx context.Context, descriptors []models.ToolDescriptor, logger *zap.Logger) (*Pool, []models.ToolNotice) {
	pool := &Pool{
		logger:  logger,
		clients: make(map[string]*mcpclient.Client),
		routes:  make(map[string]route),
	}
	var notices []models.ToolNotice

	for _, d := range descriptors {
		client, err := pool.connectOne(ctx, d)
		if err != nil {
			unavailable := models.ToolUnavailableError{Tool: d.Name, Err: err}
			logger.Warn("Tool server unreachable, continuing without it",
				zap.String("tool", d.Name), zap.Error(err))
			notices = append(notices, models.ToolNotice{Tool: d.Name, Message: unavailable.Error()})
			continue
		}
		pool.clients[d.Name] = client
	}

	return pool, notices
}

func (p *Pool) connectOne(ctx context.Context, d models.ToolDescriptor) (*mcpclient.Client, error) {
	kind, err := d.Kind()
	if err != nil {
		return nil, err
	}

	connectCtx := ctx
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	var client *mcpclient.Client
	switch kind {
	case models.TransportLocalCommand:
		env := make([]string, 0, len(d.Env))
		for k, v := range d.Env {
			env = append(env, k+"="+v)
		}
		client, err = mcpclient.NewStdioMCPClient(d.Local.Command, env, d.Local.Args...)
		if err != nil {
			return nil, err
		}
	case models.TransportRemoteHTTP:
		httpTransport, terr := transport.NewStreamableHTTP(d.Remote.URL)
		if terr != nil {
			return nil, terr
		}
		client = mcpclient.NewClient(httpTransport)
		if err := client.Start(connectCtx); err != nil {
			return nil, err
		}
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "voyago", Version: "1.0.0"}
	if _, err := client.Initialize(connectCtx, initReq); err != nil {
		client.Close()
		return nil, err
	}

	listed, err := client.ListTools(connectCtx, mcp.ListToolsRequest{})
	if err != nil {
		client.Close()
		return nil, err
	}

	for _, t := range listed.Tools {
		qualified := d.Name + nameSeparator + t.Name
		p.tools = append(p.tools, ToolSchema{
			Name:        qualified,
			Description: t.Description,
			InputSchema: schemaToMap(t.InputSchema),
		})
		p.routes[qualified] = route{client: client, toolName: t.Name}
	}
	return client, nil
}

// Names lists the descriptor names that connected successfully.
func (p *Pool) Names() []string {
	names := make([]string, 0, len(p.clients))
	for name := range p.clients {
		names = append(names, name)
	}
	return names
}

// Tools lists every invocable tool across the connected servers.
func (p *Pool) Tools() []ToolSchema {
	out := make([]ToolSchema, len(p.tools))
	copy(out, p.tools)
	return out
}

// Call routes a qualified tool name to its server and returns the text
// content of the result.
func (p *Pool) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	r, ok := p.routes[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = r.toolName
	req.Params.Arguments = args

	result, err := r.client.CallTool(ctx, req)
	if err != nil {
		server := strings.SplitN(name, nameSeparator, 2)[0]
		return "", models.ToolUnavailableError{Tool: server, Err: err}
	}

	var sb strings.Builder
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			sb.WriteString(text.Text)
		}
	}
	if result.IsError {
		return "", fmt.Errorf("tool %q reported an error: %s", name, sb.String())
	}
	return sb.String(), nil
}

// Close shuts down every connected client. Safe to call on an empty pool.
func (p *Pool) Close() {
	for name, client := range p.clients {
		if err := client.Close(); err != nil {
			p.logger.Warn("Failed to close tool client", zap.String("tool", name), zap.Error(err))
		}
	}
}

func schemaToMap(schema mcp.ToolInputSchema) map[string]any {
	out := map[string]any{"type": "object"}
	if schema.Type != "" {
		out["type"] = schema.Type
	}
	if len(schema.Properties) > 0 {
		out["properties"] = schema.Properties
	}
	if len(schema.Required) > 0 {
		out["required"] = schema.Required
	}
	return out
}
