package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todoo-api/internal/domain"
)

func TestMemoryStore_CRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var created domain.Todo
	err := store.WithinSession(ctx, func(repo TodoRepository) error {
		created = domain.Todo{ID: 99, Content: "buy milk"}
		return repo.Create(&created)
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, created.ID)

	err = store.WithinSession(ctx, func(repo TodoRepository) error {
		todo, err := repo.FindOne(created.ID)
		if err != nil {
			return err
		}
		return repo.UpdateContent(todo, "buy eggs")
	})
	require.NoError(t, err)

	err = store.WithinSession(ctx, func(repo TodoRepository) error {
		todos, err := repo.List()
		require.NoError(t, err)
		require.Equal(t, []domain.Todo{{ID: 1, Content: "buy eggs"}}, todos)
		return nil
	})
	require.NoError(t, err)

	err = store.WithinSession(ctx, func(repo TodoRepository) error {
		todo, err := repo.FindOne(created.ID)
		if err != nil {
			return err
		}
		return repo.Delete(todo)
	})
	require.NoError(t, err)

	err = store.WithinSession(ctx, func(repo TodoRepository) error {
		_, err := repo.FindOne(created.ID)
		return err
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_IDsAreNeverReused(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	create := func(content string) int64 {
		todo := domain.Todo{Content: content}
		require.NoError(t, store.WithinSession(ctx, func(repo TodoRepository) error {
			return repo.Create(&todo)
		}))
		return todo.ID
	}

	first := create("a")
	require.NoError(t, store.WithinSession(ctx, func(repo TodoRepository) error {
		return repo.Delete(&domain.Todo{ID: first})
	}))
	second := create("b")
	require.Greater(t, second, first)
}

func TestMemoryStore_FailedSessionIsDiscarded(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinSession(ctx, func(repo TodoRepository) error {
		require.NoError(t, repo.Create(&domain.Todo{Content: "never visible"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.WithinSession(ctx, func(repo TodoRepository) error {
		todos, err := repo.List()
		require.NoError(t, err)
		require.Empty(t, todos)
		require.NotNil(t, todos)
		return nil
	}))
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewMemoryStore().WithinSession(ctx, func(repo TodoRepository) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestExactlyOne(t *testing.T) {
	_, err := exactlyOne(1, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)

	todo, err := exactlyOne(1, []domain.Todo{{ID: 1, Content: "x"}})
	require.NoError(t, err)
	require.Equal(t, "x", todo.Content)

	_, err = exactlyOne(1, []domain.Todo{{ID: 1}, {ID: 1}})
	require.ErrorIs(t, err, domain.ErrAmbiguousResult)
}
