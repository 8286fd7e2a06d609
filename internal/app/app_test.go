package app_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outline/internal/app"
	"outline/internal/domain"
)

// End-to-end pass over the procedural facade, the same call sequence a UI
// collaborator drives.
func TestApp_OutlineFlow(t *testing.T) {
	a := app.New(zerolog.Nop())

	p := a.CreatePage("Journal")
	require.NotNil(t, p)

	textID, err := a.CreateBlock(p.ID, domain.BlockTypeText, 0)
	require.NoError(t, err)
	todoID, err := a.CreateBlock(p.ID, domain.BlockTypeTodo, textID)
	require.NoError(t, err)

	require.NoError(t, a.UpdateContent(p.ID, todoID, "water plants"))

	outline, err := a.Outline(p.ID)
	require.NoError(t, err)
	require.Len(t, outline.Blocks, 1)
	require.Len(t, outline.Blocks[0].Children, 1)
	assert.Equal(t, "water plants", outline.Blocks[0].Children[0].Content)

	// Deleting the text block hoists the todo into its place.
	require.NoError(t, a.DeleteBlock(p.ID, textID))

	got, err := a.GetPage(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{todoID}, got.Blocks.RootOrder())

	err = a.DeleteBlock(p.ID, textID)
	assert.Error(t, err)
}
