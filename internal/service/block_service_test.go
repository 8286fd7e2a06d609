package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outline/internal/domain"
	"outline/internal/service"
)

func TestBlockService_CreateBlock(t *testing.T) {
	pages, blocks, emitter := newTestServices()
	ctx := context.Background()

	p := pages.CreatePage(ctx, "test")
	b, err := blocks.CreateBlock(ctx, p.ID, domain.BlockTypeTodo, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.BlockTypeTodo, b.Type)
	assert.Equal(t, domain.TodoData{}, b.Data)

	assert.Contains(t, eventNames(emitter), "block:created")
}

func TestBlockService_CreateBlock_UnknownPage(t *testing.T) {
	_, blocks, _ := newTestServices()

	_, err := blocks.CreateBlock(context.Background(), 42, domain.BlockTypeText, 0)
	assert.ErrorIs(t, err, service.ErrPageNotFound)
}

func TestBlockService_CreateBlockWithContent(t *testing.T) {
	pages, blocks, _ := newTestServices()
	ctx := context.Background()

	p := pages.CreatePage(ctx, "test")
	b, err := blocks.CreateBlockWithContent(ctx, p.ID, domain.BlockTypeHeading, 0, "Chapter 1")
	require.NoError(t, err)
	assert.Equal(t, "Chapter 1", b.Content())
}

func TestBlockService_UpdateContent(t *testing.T) {
	pages, blocks, emitter := newTestServices()
	ctx := context.Background()

	p := pages.CreatePage(ctx, "test")
	b, err := blocks.CreateBlock(ctx, p.ID, domain.BlockTypeText, 0)
	require.NoError(t, err)

	require.NoError(t, blocks.UpdateContent(ctx, p.ID, b.ID, "hello"))
	got, err := blocks.GetBlock(p.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content())
	assert.Contains(t, eventNames(emitter), "block:updated")

	err = blocks.UpdateContent(ctx, p.ID, 99, "ghost")
	assert.ErrorIs(t, err, service.ErrBlockNotFound)

	err = blocks.UpdateContent(ctx, 99, b.ID, "ghost")
	assert.ErrorIs(t, err, service.ErrPageNotFound)
}

func TestBlockService_ToggleTodo(t *testing.T) {
	pages, blocks, _ := newTestServices()
	ctx := context.Background()

	p := pages.CreatePage(ctx, "test")
	todo, err := blocks.CreateBlockWithContent(ctx, p.ID, domain.BlockTypeTodo, 0, "task")
	require.NoError(t, err)

	checked, err := blocks.ToggleTodo(ctx, p.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, checked)

	checked, err = blocks.ToggleTodo(ctx, p.ID, todo.ID)
	require.NoError(t, err)
	assert.False(t, checked)

	// Toggling must not clobber the content.
	got, err := blocks.GetBlock(p.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "task", got.Content())
}

func TestBlockService_ToggleTodo_WrongType(t *testing.T) {
	pages, blocks, _ := newTestServices()
	ctx := context.Background()

	p := pages.CreatePage(ctx, "test")
	text, err := blocks.CreateBlock(ctx, p.ID, domain.BlockTypeText, 0)
	require.NoError(t, err)

	_, err = blocks.ToggleTodo(ctx, p.ID, text.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a todo")
}

func TestBlockService_DeleteBlock(t *testing.T) {
	pages, blocks, emitter := newTestServices()
	ctx := context.Background()

	p := pages.CreatePage(ctx, "test")
	parent, err := blocks.CreateBlock(ctx, p.ID, domain.BlockTypeText, 0)
	require.NoError(t, err)
	child, err := blocks.CreateBlock(ctx, p.ID, domain.BlockTypeTodo, parent.ID)
	require.NoError(t, err)

	require.NoError(t, blocks.DeleteBlock(ctx, p.ID, parent.ID))
	assert.Contains(t, eventNames(emitter), "block:deleted")

	// The child was hoisted into the deleted block's position.
	got, err := pages.GetPage(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{child.ID}, got.Blocks.RootOrder())

	err = blocks.DeleteBlock(ctx, p.ID, parent.ID)
	assert.ErrorIs(t, err, service.ErrBlockNotFound)
}
