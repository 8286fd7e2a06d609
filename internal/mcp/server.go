package mcpserver

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"outline/internal/service"
)

// Server is the MCP server for the outline store. It exposes page and
// block tools so AI agents can read and edit outlines alongside the UI.
type Server struct {
	mcp      *server.MCPServer
	emitter  EventEmitter
	approval *ApprovalQueue
	log      zerolog.Logger

	// Services (injected from the app layer)
	pages  *service.PageService
	blocks *service.BlockService

	// Active page context (set by the set_active_page tool)
	activePageID uint64
}

// Deps holds all dependencies passed from the app layer to the MCP server.
type Deps struct {
	Emitter EventEmitter
	Pages   *service.PageService
	Blocks  *service.BlockService
	Logger  zerolog.Logger
}

// New creates and configures a new MCP server with all tools registered.
func New(ctx context.Context, deps Deps) *Server {
	s := &Server{
		emitter:  deps.Emitter,
		approval: NewApprovalQueue(ctx, deps.Emitter),
		log:      deps.Logger,
		pages:    deps.Pages,
		blocks:   deps.Blocks,
	}

	s.mcp = server.NewMCPServer(
		"outline-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerPageTools()
	s.registerBlockTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info().Msg("starting mcp stdio server")
	return server.ServeStdio(s.mcp)
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// emitBlocksChanged notifies the UI collaborator that blocks changed on a page.
func (s *Server) emitBlocksChanged(ctx context.Context, pageID uint64) {
	s.emitter.Emit(ctx, "mcp:blocks-changed", map[string]uint64{"pageId": pageID})
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// getUint reads a positive integer tool argument. JSON numbers arrive as
// float64.
func getUint(args map[string]any, key string) (uint64, bool) {
	v, ok := args[key].(float64)
	if !ok || v < 1 {
		return 0, false
	}
	return uint64(v), true
}

// resolvePageID returns the pageId from tool args or falls back to the
// active page.
func (s *Server) resolvePageID(args map[string]any) (uint64, error) {
	if id, ok := getUint(args, "pageId"); ok {
		return id, nil
	}
	if s.activePageID != 0 {
		return s.activePageID, nil
	}
	return 0, fmt.Errorf("no pageId provided and no active page set (use set_active_page first)")
}
