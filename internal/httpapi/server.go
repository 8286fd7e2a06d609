// Package httpapi exposes the outline store as a JSON HTTP API, the
// network-facing counterpart of the MCP surface. It consumes the service
// layer only; all tree logic stays in the stores.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"outline/internal/service"
)

// Server routes HTTP requests to the page and block services.
type Server struct {
	pages  *service.PageService
	blocks *service.BlockService
	log    zerolog.Logger
	router *mux.Router
}

// New creates the API server and registers all routes.
func New(pages *service.PageService, blocks *service.BlockService, log zerolog.Logger) *Server {
	s := &Server{
		pages:  pages,
		blocks: blocks,
		log:    log,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/pages", s.handleListPages).Methods(http.MethodGet)
	r.HandleFunc("/pages", s.handleCreatePage).Methods(http.MethodPost)
	r.HandleFunc("/pages/{pageID}", s.handleGetPage).Methods(http.MethodGet)
	r.HandleFunc("/pages/{pageID}", s.handleRenamePage).Methods(http.MethodPatch)
	r.HandleFunc("/pages/{pageID}/outline", s.handleGetOutline).Methods(http.MethodGet)

	r.HandleFunc("/pages/{pageID}/blocks", s.handleCreateBlock).Methods(http.MethodPost)
	r.HandleFunc("/pages/{pageID}/blocks/{blockID}", s.handleGetBlock).Methods(http.MethodGet)
	r.HandleFunc("/pages/{pageID}/blocks/{blockID}", s.handleUpdateBlock).Methods(http.MethodPatch)
	r.HandleFunc("/pages/{pageID}/blocks/{blockID}", s.handleDeleteBlock).Methods(http.MethodDelete)
	r.HandleFunc("/pages/{pageID}/blocks/{blockID}/toggle", s.handleToggleTodo).Methods(http.MethodPost)
}

// ── Response helpers ───────────────────────────────────────

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound), errors.Is(err, service.ErrBlockNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}

func pathID(r *http.Request, key string) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
