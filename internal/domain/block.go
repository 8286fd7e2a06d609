package domain

// BlockType tags which payload variant a block carries.
type BlockType string

const (
	BlockTypeText    BlockType = "text"
	BlockTypeTodo    BlockType = "todo"
	BlockTypeHeading BlockType = "heading"
)

// BlockData is the payload union. Exactly one variant is active per block
// and its Kind always matches the block's Type.
type BlockData interface {
	Kind() BlockType
}

// TextData is a plain paragraph of text.
type TextData struct {
	Content string `json:"content"`
}

// TodoData is a checkbox item.
type TodoData struct {
	Content string `json:"content"`
	Checked bool   `json:"checked"`
}

// HeadingData is a section heading.
type HeadingData struct {
	Content string `json:"content"`
}

func (TextData) Kind() BlockType    { return BlockTypeText }
func (TodoData) Kind() BlockType    { return BlockTypeTodo }
func (HeadingData) Kind() BlockType { return BlockTypeHeading }

// DefaultData returns the fresh payload for a block type: empty content,
// and for todos an unchecked box. Unrecognized types get a text payload.
func DefaultData(t BlockType) BlockData {
	switch t {
	case BlockTypeTodo:
		return TodoData{}
	case BlockTypeHeading:
		return HeadingData{}
	default:
		return TextData{}
	}
}

// Block is a single content node in a page's outline tree.
//
// Parent and Children are non-owning links by id, resolved through the
// owning BlockStore on each access; a Parent of 0 means the block sits at
// the page's root level. Children is the sole source of truth for the
// display order of a block's nested children.
type Block struct {
	ID       uint64    `json:"id"`
	Type     BlockType `json:"type"`
	Data     BlockData `json:"data"`
	Parent   uint64    `json:"parent"`
	Children []uint64  `json:"children"`
}

// Content returns the content field of the active payload variant.
func (b *Block) Content() string {
	switch d := b.Data.(type) {
	case TextData:
		return d.Content
	case TodoData:
		return d.Content
	case HeadingData:
		return d.Content
	}
	return ""
}

// SetContent replaces the content field of the active payload variant.
// Other payload fields (Todo.Checked) are left untouched.
func (b *Block) SetContent(text string) {
	switch d := b.Data.(type) {
	case TextData:
		d.Content = text
		b.Data = d
	case TodoData:
		d.Content = text
		b.Data = d
	case HeadingData:
		d.Content = text
		b.Data = d
	}
}
