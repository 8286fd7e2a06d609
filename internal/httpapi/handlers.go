package httpapi

import (
	"net/http"

	json "github.com/goccy/go-json"

	"outline/internal/domain"
)

type createPageRequest struct {
	Title string `json:"title"`
}

type renamePageRequest struct {
	Title string `json:"title"`
}

type createBlockRequest struct {
	Type     domain.BlockType `json:"type"`
	ParentID uint64           `json:"parentId"`
	Content  string           `json:"content"`
}

type updateBlockRequest struct {
	Content string `json:"content"`
}

// pageResponse is the page representation returned over HTTP; the block
// tree itself is served by the outline endpoint.
type pageResponse struct {
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	RootOrder []uint64 `json:"rootOrder"`
}

// ── Pages ──────────────────────────────────────────────────

func (s *Server) handleListPages(w http.ResponseWriter, _ *http.Request) {
	pages := s.pages.ListPages()
	out := make([]pageResponse, 0, len(pages))
	for _, p := range pages {
		out = append(out, pageResponse{ID: p.ID, Title: p.Title, RootOrder: p.Blocks.RootOrder()})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}

	p := s.pages.CreatePage(r.Context(), req.Title)
	respondJSON(w, http.StatusCreated, pageResponse{ID: p.ID, Title: p.Title, RootOrder: p.Blocks.RootOrder()})
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	p, err := s.pages.GetPage(pageID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{ID: p.ID, Title: p.Title, RootOrder: p.Blocks.RootOrder()})
}

func (s *Server) handleRenamePage(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}
	var req renamePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := s.pages.RenamePage(r.Context(), pageID, req.Title); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	outline, err := s.pages.Outline(pageID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, outline)
}

// ── Blocks ─────────────────────────────────────────────────

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}
	var req createBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Type == "" {
		respondError(w, http.StatusBadRequest, "type is required")
		return
	}

	var (
		b   *domain.Block
		err error
	)
	if req.Content != "" {
		b, err = s.blocks.CreateBlockWithContent(r.Context(), pageID, req.Type, req.ParentID, req.Content)
	} else {
		b, err = s.blocks.CreateBlock(r.Context(), pageID, req.Type, req.ParentID)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBlock(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}
	blockID, ok := pathID(r, "blockID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid block id")
		return
	}

	b, err := s.blocks.GetBlock(pageID, blockID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}
	blockID, ok := pathID(r, "blockID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid block id")
		return
	}
	var req updateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := s.blocks.UpdateContent(r.Context(), pageID, blockID, req.Content); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}
	blockID, ok := pathID(r, "blockID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid block id")
		return
	}

	if err := s.blocks.DeleteBlock(r.Context(), pageID, blockID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(r, "pageID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid page id")
		return
	}
	blockID, ok := pathID(r, "blockID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid block id")
		return
	}

	checked, err := s.blocks.ToggleTodo(r.Context(), pageID, blockID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"blockId": blockID, "checked": checked})
}
