// Package mcp adapts one subprocess-backed MCP session to the agent
// loop: list the catalog once, invoke named tools, extract text.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/harunnryd/tachi/internal/model/contract"

	"github.com/google/shlex"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// transportBuilder is overridden in tests to swap the stdio transport
// for an in-memory one.
var transportBuilder = buildCommandTransport

// Session owns one connected tool provider for the lifetime of one run.
type Session struct {
	session *mcpsdk.ClientSession
}

// Dial launches the tool server command as a child process and performs
// the MCP initialize handshake over stdio.
func Dial(ctx context.Context, command string) (*Session, error) {
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "tachi", Version: "dev"}, nil)

	transport, err := transportBuilder(ctx, command)
	if err != nil {
		return nil, err
	}

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect tool server: %w", err)
	}
	return &Session{session: session}, nil
}

func buildCommandTransport(ctx context.Context, command string) (mcpsdk.Transport, error) {
	parts, err := shlex.Split(strings.TrimSpace(command))
	if err != nil {
		return nil, fmt.Errorf("split tool server command: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("tool server command is empty")
	}

	// #nosec G204 -- the command comes from local operator config, not model output
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	return &mcpsdk.CommandTransport{Command: cmd}, nil
}

// ListTools fetches the full catalog as an immutable snapshot.
func (s *Session) ListTools(ctx context.Context) ([]contract.ToolDef, error) {
	var defs []contract.ToolDef
	for tool, err := range s.session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}
		schema, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal input schema for %s: %w", tool.Name, err)
		}
		defs = append(defs, contract.ToolDef{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		})
	}
	return defs, nil
}

// CallText invokes a named tool and returns its text content items
// joined by newlines. Non-text content is dropped.
func (s *Session) CallText(ctx context.Context, name string, args map[string]any) (string, error) {
	result, err := s.session.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", fmt.Errorf("call tool %s: %w", name, err)
	}

	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcpsdk.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Close shuts down the session and the child process.
func (s *Session) Close() error {
	if s == nil || s.session == nil {
		return nil
	}
	return s.session.Close()
}
