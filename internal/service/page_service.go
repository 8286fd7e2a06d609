package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"outline/internal/domain"
	"outline/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Page Service — page lifecycle and outline assembly
// ─────────────────────────────────────────────────────────────

// Sentinel errors for lookups. The stores signal "not found" with booleans;
// the services wrap that into errors collaborators can report and match
// with errors.Is.
var (
	ErrPageNotFound  = errors.New("page not found")
	ErrBlockNotFound = errors.New("block not found")
)

// OutlineNode is one rendered node of a page's tree. Checked is set only
// for todo blocks.
type OutlineNode struct {
	ID       uint64           `json:"id"`
	Type     domain.BlockType `json:"type"`
	Content  string           `json:"content"`
	Checked  *bool            `json:"checked,omitempty"`
	Children []OutlineNode    `json:"children,omitempty"`
}

// PageOutline is the full tree returned to rendering collaborators.
type PageOutline struct {
	PageID uint64        `json:"pageId"`
	Title  string        `json:"title"`
	Blocks []OutlineNode `json:"blocks"`
}

// PageService manages pages.
//
// All mutation funnels through one mutex shared with BlockService, so the
// lock-free stores only ever see a single writer even when the MCP and
// HTTP surfaces are driven concurrently.
type PageService struct {
	mu      *sync.Mutex
	store   *storage.PageStore
	emitter EventEmitter
	log     zerolog.Logger
}

// NewPageService creates a PageService. mu is the per-app mutation gate,
// shared with the block service.
func NewPageService(mu *sync.Mutex, store *storage.PageStore, emitter EventEmitter, log zerolog.Logger) *PageService {
	return &PageService{mu: mu, store: store, emitter: emitter, log: log}
}

// CreatePage creates a page. An empty title keeps the store default.
func (s *PageService) CreatePage(ctx context.Context, title string) *storage.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.store.CreatePage()
	p, _ := s.store.Page(id)
	if title != "" {
		p.Title = title
	}

	s.log.Debug().Uint64("pageId", id).Str("title", p.Title).Msg("page created")
	s.emitter.Emit(ctx, "page:created", map[string]any{"pageId": id, "title": p.Title})
	return p
}

// GetPage returns a page by id.
func (s *PageService) GetPage(id uint64) (*storage.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Page(id)
	if !ok {
		return nil, fmt.Errorf("page %d: %w", id, ErrPageNotFound)
	}
	return p, nil
}

// ListPages returns all pages in creation order.
func (s *PageService) ListPages() []*storage.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Pages()
}

// RenamePage replaces a page's title.
func (s *PageService) RenamePage(ctx context.Context, id uint64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Page(id)
	if !ok {
		return fmt.Errorf("rename page %d: %w", id, ErrPageNotFound)
	}
	p.Title = title

	s.emitter.Emit(ctx, "page:renamed", map[string]any{"pageId": id, "title": title})
	return nil
}

// Outline assembles the full nested tree of a page for rendering, walking
// the root ordering list and each block's Children. Ids that no longer
// resolve are skipped.
func (s *PageService) Outline(pageID uint64) (*PageOutline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Page(pageID)
	if !ok {
		return nil, fmt.Errorf("outline of page %d: %w", pageID, ErrPageNotFound)
	}
	return &PageOutline{
		PageID: p.ID,
		Title:  p.Title,
		Blocks: buildOutline(p.Blocks, p.Blocks.RootOrder()),
	}, nil
}

func buildOutline(store *storage.BlockStore, order []uint64) []OutlineNode {
	var nodes []OutlineNode
	for _, id := range order {
		b, ok := store.Block(id)
		if !ok {
			continue
		}
		n := OutlineNode{
			ID:      b.ID,
			Type:    b.Type,
			Content: b.Content(),
		}
		if d, ok := b.Data.(domain.TodoData); ok {
			checked := d.Checked
			n.Checked = &checked
		}
		if len(b.Children) > 0 {
			n.Children = buildOutline(store, b.Children)
		}
		nodes = append(nodes, n)
	}
	return nodes
}
