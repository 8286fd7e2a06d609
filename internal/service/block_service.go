package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"outline/internal/domain"
	"outline/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Block Service — business logic for outline blocks
// ─────────────────────────────────────────────────────────────

// BlockService manages the lifecycle of blocks across all pages. It shares
// the mutation mutex with PageService (see PageService).
type BlockService struct {
	mu      *sync.Mutex
	pages   *storage.PageStore
	emitter EventEmitter
	log     zerolog.Logger
}

// NewBlockService creates a BlockService.
func NewBlockService(mu *sync.Mutex, pages *storage.PageStore, emitter EventEmitter, log zerolog.Logger) *BlockService {
	return &BlockService{mu: mu, pages: pages, emitter: emitter, log: log}
}

// CreateBlock creates a block of the given type on a page with a default
// payload. parentID 0 places it at root level; an unknown parentID also
// lands at root level rather than failing (the store's never-lose-data
// policy).
func (s *BlockService) CreateBlock(ctx context.Context, pageID uint64, typ domain.BlockType, parentID uint64) (*domain.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pages.Page(pageID)
	if !ok {
		return nil, fmt.Errorf("create block on page %d: %w", pageID, ErrPageNotFound)
	}

	id := p.Blocks.CreateBlock(typ, nil, parentID)
	b, _ := p.Blocks.Block(id)

	s.log.Debug().Uint64("pageId", pageID).Uint64("blockId", id).Str("type", string(b.Type)).Msg("block created")
	s.emitter.Emit(ctx, "block:created", map[string]any{"pageId": pageID, "blockId": id, "type": b.Type})
	return b, nil
}

// CreateBlockWithContent creates a block and sets its initial content in
// one step.
func (s *BlockService) CreateBlockWithContent(ctx context.Context, pageID uint64, typ domain.BlockType, parentID uint64, content string) (*domain.Block, error) {
	b, err := s.CreateBlock(ctx, pageID, typ, parentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b.SetContent(content)
	return b, nil
}

// GetBlock returns a block by page and id.
func (s *BlockService) GetBlock(pageID, blockID uint64) (*domain.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getBlock(pageID, blockID)
}

// UpdateContent replaces a block's content. Unlike the store, which treats
// an unknown id as a no-op, the service reports it so collaborators can
// surface the mistake.
func (s *BlockService) UpdateContent(ctx context.Context, pageID, blockID uint64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pages.Page(pageID)
	if !ok {
		return fmt.Errorf("update block on page %d: %w", pageID, ErrPageNotFound)
	}
	if _, ok := p.Blocks.Block(blockID); !ok {
		return fmt.Errorf("update block %d: %w", blockID, ErrBlockNotFound)
	}
	p.Blocks.UpdateContent(blockID, text)

	s.emitter.Emit(ctx, "block:updated", map[string]any{"pageId": pageID, "blockId": blockID})
	return nil
}

// ToggleTodo flips the checked state of a todo block and returns the new
// state. The content is untouched; this is an in-place payload edit
// through the stored block.
func (s *BlockService) ToggleTodo(ctx context.Context, pageID, blockID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.getBlock(pageID, blockID)
	if err != nil {
		return false, err
	}
	d, ok := b.Data.(domain.TodoData)
	if !ok {
		return false, fmt.Errorf("block %d is a %s block, not a todo", blockID, b.Type)
	}
	d.Checked = !d.Checked
	b.Data = d

	s.emitter.Emit(ctx, "block:updated", map[string]any{"pageId": pageID, "blockId": blockID, "checked": d.Checked})
	return d.Checked, nil
}

// DeleteBlock removes a block; its children are spliced into the position
// it occupied.
func (s *BlockService) DeleteBlock(ctx context.Context, pageID, blockID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pages.Page(pageID)
	if !ok {
		return fmt.Errorf("delete block on page %d: %w", pageID, ErrPageNotFound)
	}
	if !p.Blocks.DeleteBlock(blockID) {
		return fmt.Errorf("delete block %d: %w", blockID, ErrBlockNotFound)
	}

	s.log.Debug().Uint64("pageId", pageID).Uint64("blockId", blockID).Msg("block deleted")
	s.emitter.Emit(ctx, "block:deleted", map[string]any{"pageId": pageID, "blockId": blockID})
	return nil
}

func (s *BlockService) getBlock(pageID, blockID uint64) (*domain.Block, error) {
	p, ok := s.pages.Page(pageID)
	if !ok {
		return nil, fmt.Errorf("page %d: %w", pageID, ErrPageNotFound)
	}
	b, ok := p.Blocks.Block(blockID)
	if !ok {
		return nil, fmt.Errorf("block %d: %w", blockID, ErrBlockNotFound)
	}
	return b, nil
}
