package storage

// DefaultPageTitle is the title given to freshly created pages.
const DefaultPageTitle = "New Page"

// Page is a named document owning one independent tree of blocks. Each
// page has exactly one BlockStore, created with it and never shared.
type Page struct {
	ID     uint64      `json:"id"`
	Title  string      `json:"title"`
	Blocks *BlockStore `json:"-"`
}

// PageStore owns all pages and their creation order.
type PageStore struct {
	pages     map[uint64]*Page
	rootOrder []uint64
	ids       idAllocator
}

// NewPageStore creates an empty PageStore with its id counter at 1.
func NewPageStore() *PageStore {
	return &PageStore{
		pages: make(map[uint64]*Page),
		ids:   newIDAllocator(),
	}
}

// CreatePage allocates a page with a fresh empty BlockStore and the default
// title, appends it to the creation-order list, and returns its id.
// CreatePage has no failure mode.
func (s *PageStore) CreatePage() uint64 {
	id := s.ids.alloc()
	s.pages[id] = &Page{
		ID:     id,
		Title:  DefaultPageTitle,
		Blocks: NewBlockStore(),
	}
	s.rootOrder = append(s.rootOrder, id)
	return id
}

// Page returns the page for id, or ok=false when no such page exists.
func (s *PageStore) Page(id uint64) (*Page, bool) {
	p, ok := s.pages[id]
	return p, ok
}

// Pages returns all pages in creation order.
func (s *PageStore) Pages() []*Page {
	out := make([]*Page, 0, len(s.rootOrder))
	for _, id := range s.rootOrder {
		if p, ok := s.pages[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// RootOrder returns a copy of the page ids in creation order.
func (s *PageStore) RootOrder() []uint64 {
	out := make([]uint64, len(s.rootOrder))
	copy(out, s.rootOrder)
	return out
}

// Len returns the number of pages in the store.
func (s *PageStore) Len() int {
	return len(s.pages)
}
