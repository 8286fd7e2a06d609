// Package app wires the stores and services together and exposes the
// procedural API that UI collaborators call: create a page, get a page,
// create/update/delete a block, and read the outline for display.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"outline/internal/domain"
	"outline/internal/service"
	"outline/internal/storage"
)

// App owns the page store and both services. It holds the single mutation
// mutex the services share: the stores themselves are lock-free and expect
// one writer, and every caller — embedding UI, MCP server, HTTP API — goes
// through the services, so the mutex is the only serialization point.
type App struct {
	mu     sync.Mutex
	log    zerolog.Logger
	pages  *service.PageService
	blocks *service.BlockService
}

// New builds a fully wired App. Events are logged at debug level until a
// UI collaborator installs a real emitter via the service constructors.
func New(log zerolog.Logger) *App {
	a := &App{log: log}
	store := storage.NewPageStore()
	emitter := &logEmitter{log: log}
	a.pages = service.NewPageService(&a.mu, store, emitter, log)
	a.blocks = service.NewBlockService(&a.mu, store, emitter, log)
	return a
}

// Pages returns the page service.
func (a *App) Pages() *service.PageService { return a.pages }

// Blocks returns the block service.
func (a *App) Blocks() *service.BlockService { return a.blocks }

// Emitter returns the emitter services publish to.
func (a *App) Emitter() service.EventEmitter { return &logEmitter{log: a.log} }

// ── Procedural facade ──────────────────────────────────────
// Convenience wrappers for embedding callers that don't carry a context.

func (a *App) CreatePage(title string) *storage.Page {
	return a.pages.CreatePage(context.Background(), title)
}

func (a *App) GetPage(id uint64) (*storage.Page, error) {
	return a.pages.GetPage(id)
}

func (a *App) CreateBlock(pageID uint64, typ domain.BlockType, parentID uint64) (uint64, error) {
	b, err := a.blocks.CreateBlock(context.Background(), pageID, typ, parentID)
	if err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (a *App) UpdateContent(pageID, blockID uint64, text string) error {
	return a.blocks.UpdateContent(context.Background(), pageID, blockID, text)
}

func (a *App) DeleteBlock(pageID, blockID uint64) error {
	return a.blocks.DeleteBlock(context.Background(), pageID, blockID)
}

func (a *App) Outline(pageID uint64) (*service.PageOutline, error) {
	return a.pages.Outline(pageID)
}

// logEmitter publishes service events to the log. A GUI collaborator would
// replace this with a bridge into its own event loop.
type logEmitter struct {
	log zerolog.Logger
}

func (e *logEmitter) Emit(_ context.Context, event string, data any) {
	e.log.Debug().Str("event", event).Interface("data", data).Msg("event")
}
