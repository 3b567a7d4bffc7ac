package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func setupTestSession(t *testing.T) *Session {
	t.Helper()
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "test-server", Version: "test"}, nil)
	registerTestTools(server)

	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		serverSession, err := server.Connect(ctx, serverTransport, nil)
		if err != nil {
			ready <- err
			return
		}
		ready <- nil
		<-ctx.Done()
		_ = serverSession.Close()
	}()

	originalBuilder := transportBuilder
	transportBuilder = func(ctx context.Context, command string) (mcpsdk.Transport, error) {
		return clientTransport, nil
	}
	t.Cleanup(func() {
		transportBuilder = originalBuilder
		cancel()
		<-done
	})

	session, err := Dial(context.Background(), "inmemory")
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })

	if err := <-ready; err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	return session
}

func registerTestTools(server *mcpsdk.Server) {
	server.AddTool(&mcpsdk.Tool{
		Name:        "echo",
		Description: "Echo input text",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"text": {Type: "string"},
			},
			Required: []string{"text"},
		},
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		var payload map[string]string
		if err := json.Unmarshal(req.Params.Arguments, &payload); err != nil {
			return nil, err
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: "echo:" + payload["text"]}},
		}, nil
	})

	server.AddTool(&mcpsdk.Tool{
		Name:        "multi",
		Description: "Multiple content items",
		InputSchema: &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}},
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: "first"},
				&mcpsdk.ImageContent{Data: []byte{0x1}, MIMEType: "image/png"},
				&mcpsdk.TextContent{Text: "second"},
			},
		}, nil
	})
}

func TestListTools(t *testing.T) {
	session := setupTestSession(t)

	defs, err := session.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("len(defs) = %d, want 2", len(defs))
	}

	byName := map[string]int{}
	for i, def := range defs {
		byName[def.Name] = i
	}
	echo, ok := byName["echo"]
	if !ok {
		t.Fatalf("echo tool missing from catalog: %+v", defs)
	}
	if defs[echo].Description != "Echo input text" {
		t.Fatalf("unexpected description: %q", defs[echo].Description)
	}
	if !strings.Contains(string(defs[echo].InputSchema), `"text"`) {
		t.Fatalf("input schema not carried through: %s", defs[echo].InputSchema)
	}
}

func TestCallText(t *testing.T) {
	session := setupTestSession(t)

	out, err := session.CallText(context.Background(), "echo", map[string]any{"text": "hello"})
	if err != nil {
		t.Fatalf("CallText failed: %v", err)
	}
	if out != "echo:hello" {
		t.Fatalf("out = %q, want %q", out, "echo:hello")
	}
}

func TestCallText_JoinsTextDropsRest(t *testing.T) {
	session := setupTestSession(t)

	out, err := session.CallText(context.Background(), "multi", map[string]any{})
	if err != nil {
		t.Fatalf("CallText failed: %v", err)
	}
	if out != "first\nsecond" {
		t.Fatalf("out = %q, want text items joined and image dropped", out)
	}
}

func TestCallText_UnknownTool(t *testing.T) {
	session := setupTestSession(t)

	if _, err := session.CallText(context.Background(), "nope", map[string]any{}); err == nil {
		t.Fatalf("expected error for unknown tool")
	}
}

func TestBuildCommandTransport_BadCommand(t *testing.T) {
	if _, err := buildCommandTransport(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty command")
	}
	if _, err := buildCommandTransport(context.Background(), `sh -c "unterminated`); err == nil {
		t.Fatalf("expected error for unbalanced quoting")
	}
}

func TestClose_NilSafe(t *testing.T) {
	var s *Session
	if err := s.Close(); err != nil {
		t.Fatalf("nil session Close returned %v", err)
	}
	if err := (&Session{}).Close(); err != nil {
		t.Fatalf("empty session Close returned %v", err)
	}
}
