package httpapi_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outline/internal/httpapi"
	"outline/internal/service"
	"outline/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mu := &sync.Mutex{}
	store := storage.NewPageStore()
	emitter := &service.MockEmitter{}
	log := zerolog.Nop()
	api := httpapi.New(
		service.NewPageService(mu, store, emitter, log),
		service.NewBlockService(mu, store, emitter, log),
		log,
	)
	ts := httptest.NewServer(api.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type pageJSON struct {
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	RootOrder []uint64 `json:"rootOrder"`
}

type blockJSON struct {
	ID       uint64         `json:"id"`
	Type     string         `json:"type"`
	Data     map[string]any `json:"data"`
	Parent   uint64         `json:"parent"`
	Children []uint64       `json:"children"`
}

func TestAPI_PageLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var p pageJSON
	resp := doJSON(t, http.MethodPost, ts.URL+"/pages", map[string]string{"title": "Trip plan"}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Trip plan", p.Title)
	require.NotZero(t, p.ID)

	var got pageJSON
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/pages/%d", ts.URL, p.ID), nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, p.ID, got.ID)

	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/pages/%d", ts.URL, p.ID), map[string]string{"title": "Trip plan v2"}, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var list []pageJSON
	resp = doJSON(t, http.MethodGet, ts.URL+"/pages", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, "Trip plan v2", list[0].Title)
}

func TestAPI_GetPage_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/pages/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_BlockLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var p pageJSON
	doJSON(t, http.MethodPost, ts.URL+"/pages", nil, &p)
	blocksURL := fmt.Sprintf("%s/pages/%d/blocks", ts.URL, p.ID)

	var heading blockJSON
	resp := doJSON(t, http.MethodPost, blocksURL, map[string]any{"type": "heading", "content": "Day 1"}, &heading)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "heading", heading.Type)
	assert.Equal(t, "Day 1", heading.Data["content"])

	var todo blockJSON
	resp = doJSON(t, http.MethodPost, blocksURL, map[string]any{"type": "todo", "parentId": heading.ID, "content": "pack bags"}, &todo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, heading.ID, todo.Parent)
	assert.Equal(t, false, todo.Data["checked"])

	var toggled map[string]any
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/%d/toggle", blocksURL, todo.ID), nil, &toggled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, toggled["checked"])

	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/%d", blocksURL, todo.ID), map[string]string{"content": "pack everything"}, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var outline struct {
		Title  string `json:"title"`
		Blocks []struct {
			ID       uint64 `json:"id"`
			Content  string `json:"content"`
			Checked  *bool  `json:"checked"`
			Children []struct {
				ID      uint64 `json:"id"`
				Content string `json:"content"`
				Checked *bool  `json:"checked"`
			} `json:"children"`
		} `json:"blocks"`
	}
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/pages/%d/outline", ts.URL, p.ID), nil, &outline)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, outline.Blocks, 1)
	require.Len(t, outline.Blocks[0].Children, 1)
	nested := outline.Blocks[0].Children[0]
	assert.Equal(t, "pack everything", nested.Content)
	require.NotNil(t, nested.Checked)
	assert.True(t, *nested.Checked)

	// Deleting the heading hoists the todo to root level.
	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/%d", blocksURL, heading.ID), nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var got pageJSON
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/pages/%d", ts.URL, p.ID), nil, &got)
	assert.Equal(t, []uint64{todo.ID}, got.RootOrder)
}

func TestAPI_BlockErrors(t *testing.T) {
	ts := newTestServer(t)

	var p pageJSON
	doJSON(t, http.MethodPost, ts.URL+"/pages", nil, &p)
	blocksURL := fmt.Sprintf("%s/pages/%d/blocks", ts.URL, p.ID)

	resp := doJSON(t, http.MethodPost, blocksURL, map[string]any{"content": "missing type"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, blocksURL+"/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPatch, blocksURL+"/99", map[string]string{"content": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
