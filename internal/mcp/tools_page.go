package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPageTools() {
	// ── create_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_page",
		mcp.WithDescription("Create a new page. Returns the page with its id."),
		mcp.WithString("title", mcp.Description("Page title (optional, defaults to \"New Page\")")),
	), s.handleCreatePage)

	// ── list_pages ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List all pages in creation order"),
	), s.handleListPages)

	// ── rename_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("rename_page",
		mcp.WithDescription("Rename a page"),
		mcp.WithNumber("pageId", mcp.Description("Page ID"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title"), mcp.Required()),
	), s.handleRenamePage)

	// ── set_active_page ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_page",
		mcp.WithDescription("Set the page that block tools default to when no pageId is given"),
		mcp.WithNumber("pageId", mcp.Description("Page ID"), mcp.Required()),
	), s.handleSetActivePage)

	// ── get_outline ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_outline",
		mcp.WithDescription("Get the full nested block tree of a page"),
		mcp.WithNumber("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleGetOutline)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreatePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	title, _ := args["title"].(string)

	p := s.pages.CreatePage(ctx, title)
	s.activePageID = p.ID
	return jsonResult(p)
}

func (s *Server) handleListPages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.pages.ListPages())
}

func (s *Server) handleRenamePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID, ok := getUint(args, "pageId")
	if !ok {
		return nil, fmt.Errorf("pageId is required")
	}
	title, _ := args["title"].(string)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	if err := s.pages.RenamePage(ctx, pageID, title); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Renamed page %d to %q", pageID, title)), nil
}

func (s *Server) handleSetActivePage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, ok := getUint(req.GetArguments(), "pageId")
	if !ok {
		return nil, fmt.Errorf("pageId is required")
	}
	if _, err := s.pages.GetPage(pageID); err != nil {
		return nil, err
	}

	s.activePageID = pageID
	return textResult(fmt.Sprintf("Active page is now %d", pageID)), nil
}

func (s *Server) handleGetOutline(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := s.resolvePageID(req.GetArguments())
	if err != nil {
		return nil, err
	}

	outline, err := s.pages.Outline(pageID)
	if err != nil {
		return nil, err
	}
	return jsonResult(outline)
}
