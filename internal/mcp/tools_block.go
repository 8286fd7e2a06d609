package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"outline/internal/domain"
)

func (s *Server) registerBlockTools() {
	// ── create_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_block",
		mcp.WithDescription("Create a new block on a page. Nest it by passing parentId."),
		mcp.WithString("type",
			mcp.Description("Block type: text, todo, heading"),
			mcp.Required(),
		),
		mcp.WithNumber("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithNumber("parentId", mcp.Description("Parent block ID (optional, omit for root level)")),
		mcp.WithString("content", mcp.Description("Initial content (optional)")),
	), s.handleCreateBlock)

	// ── update_block_content ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_block_content",
		mcp.WithDescription("Replace the content of an existing block"),
		mcp.WithNumber("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
		mcp.WithNumber("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleUpdateBlockContent)

	// ── toggle_todo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("toggle_todo",
		mcp.WithDescription("Flip the checked state of a todo block"),
		mcp.WithNumber("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleToggleTodo)

	// ── delete_block (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_block",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a block. Its children are re-attached in its place. Requires user approval."),
		mcp.WithNumber("blockId", mcp.Description("Block ID to delete"), mcp.Required()),
		mcp.WithNumber("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteBlock)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreateBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	typ, _ := args["type"].(string)
	if typ == "" {
		return nil, fmt.Errorf("type is required")
	}

	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	parentID, _ := getUint(args, "parentId")

	var b *domain.Block
	if content, ok := args["content"].(string); ok && content != "" {
		b, err = s.blocks.CreateBlockWithContent(ctx, pageID, domain.BlockType(typ), parentID, content)
	} else {
		b, err = s.blocks.CreateBlock(ctx, pageID, domain.BlockType(typ), parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("create block: %w", err)
	}

	s.emitBlocksChanged(ctx, pageID)
	return jsonResult(b)
}

func (s *Server) handleUpdateBlockContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	blockID, ok := getUint(args, "blockId")
	if !ok {
		return nil, fmt.Errorf("blockId is required")
	}
	content, ok := args["content"].(string)
	if !ok {
		return nil, fmt.Errorf("content is required")
	}
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}

	if err := s.blocks.UpdateContent(ctx, pageID, blockID, content); err != nil {
		return nil, err
	}

	s.emitBlocksChanged(ctx, pageID)
	return textResult(fmt.Sprintf("Updated block %d", blockID)), nil
}

func (s *Server) handleToggleTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	blockID, ok := getUint(args, "blockId")
	if !ok {
		return nil, fmt.Errorf("blockId is required")
	}
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}

	checked, err := s.blocks.ToggleTodo(ctx, pageID, blockID)
	if err != nil {
		return nil, err
	}

	s.emitBlocksChanged(ctx, pageID)
	return textResult(fmt.Sprintf("Block %d is now checked=%t", blockID, checked)), nil
}

func (s *Server) handleDeleteBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	blockID, ok := getUint(args, "blockId")
	if !ok {
		return nil, fmt.Errorf("blockId is required")
	}
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}

	approved, err := s.approval.Request("delete_block",
		fmt.Sprintf("Delete block %d on page %d (children are kept and re-attached)", blockID, pageID))
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, fmt.Errorf("deletion not approved")
	}

	if err := s.blocks.DeleteBlock(ctx, pageID, blockID); err != nil {
		return nil, err
	}

	s.emitBlocksChanged(ctx, pageID)
	return textResult(fmt.Sprintf("Deleted block %d", blockID)), nil
}
