package storage

import "outline/internal/domain"

// BlockStore owns every block of one page, in memory.
//
// Blocks live in a map keyed by id; all parent/child relationships are
// stored as ids and resolved through that map on each access, so deleting
// a block can only leave a stale id behind, never a dangling pointer.
// Every stored id appears in exactly one ordering list: rootOrder when the
// block's Parent is 0, otherwise the Children list of the block named by
// Parent.
type BlockStore struct {
	blocks    map[uint64]*domain.Block
	rootOrder []uint64
	ids       idAllocator
}

// NewBlockStore creates an empty BlockStore with its id counter at 1.
func NewBlockStore() *BlockStore {
	return &BlockStore{
		blocks: make(map[uint64]*domain.Block),
		ids:    newIDAllocator(),
	}
}

// CreateBlock allocates a fresh block and links it into the tree, returning
// its id. When data is nil, or its variant does not match typ, the payload
// is defaulted for the type (empty content; todos start unchecked).
//
// Linking: parentID 0 appends the block to the root list; a parentID that
// resolves appends it to that block's Children. A nonzero parentID that
// resolves to nothing falls back to root level so the block is never lost —
// the caller is not told the requested parent was invalid.
//
// CreateBlock has no failure mode.
func (s *BlockStore) CreateBlock(typ domain.BlockType, data domain.BlockData, parentID uint64) uint64 {
	if data == nil || data.Kind() != typ {
		data = domain.DefaultData(typ)
	}

	id := s.ids.alloc()
	b := &domain.Block{
		ID:   id,
		Type: data.Kind(),
		Data: data,
	}

	if parentID != 0 {
		if p, ok := s.blocks[parentID]; ok {
			b.Parent = parentID
			p.Children = append(p.Children, id)
		}
	}
	if b.Parent == 0 {
		s.rootOrder = append(s.rootOrder, id)
	}

	s.blocks[id] = b
	return id
}

// DeleteBlock removes the block with the given id and splices its children
// into the position it occupied, preserving their relative order. Returns
// false, leaving the store untouched, when no such block exists.
//
// The children land in the deleted block's own ordering list — its parent's
// Children, or the root list when it was root-level. When the recorded
// parent no longer resolves (a dangling reference), the children fall back
// to root level, the same never-lose-data policy CreateBlock applies to an
// unknown parent. Each surviving child has its Parent field updated to
// match; child ids that no longer resolve are skipped.
func (s *BlockStore) DeleteBlock(id uint64) bool {
	b, ok := s.blocks[id]
	if !ok {
		return false
	}

	target := &s.rootOrder
	newParent := uint64(0)
	if b.Parent != 0 {
		if p, ok := s.blocks[b.Parent]; ok {
			target = &p.Children
			newParent = b.Parent
		}
	}

	for _, cid := range b.Children {
		if c, ok := s.blocks[cid]; ok {
			c.Parent = newParent
		}
	}

	if i := indexOf(*target, id); i >= 0 {
		spliced := make([]uint64, 0, len(*target)-1+len(b.Children))
		spliced = append(spliced, (*target)[:i]...)
		spliced = append(spliced, b.Children...)
		spliced = append(spliced, (*target)[i+1:]...)
		*target = spliced
	} else if len(b.Children) > 0 {
		// The block is missing from its expected ordering list, so there is
		// no position to splice into. Append the children to the end of the
		// target list instead of leaving them unreachable.
		*target = append(*target, b.Children...)
	}

	b.Children = nil
	delete(s.blocks, id)
	return true
}

// UpdateContent replaces the content of the block's active payload variant
// with text. Other payload fields (Todo.Checked) are untouched. An unknown
// id is a silent no-op.
func (s *BlockStore) UpdateContent(id uint64, text string) {
	if b, ok := s.blocks[id]; ok {
		b.SetContent(text)
	}
}

// Block returns the block for id, or ok=false when no such block exists.
// The returned pointer refers to store-owned state; callers may edit
// payload fields in place (e.g. toggling a todo) but must not touch the
// tree links.
func (s *BlockStore) Block(id uint64) (*domain.Block, bool) {
	b, ok := s.blocks[id]
	return b, ok
}

// RootOrder returns a copy of the ids of the page's top-level blocks in
// display order.
func (s *BlockStore) RootOrder() []uint64 {
	out := make([]uint64, len(s.rootOrder))
	copy(out, s.rootOrder)
	return out
}

// Len returns the number of blocks in the store.
func (s *BlockStore) Len() int {
	return len(s.blocks)
}

func indexOf(list []uint64, id uint64) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}
