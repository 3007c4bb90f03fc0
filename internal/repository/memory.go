package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Tomlord1122/todoo-api/internal/domain"
)

// MemoryStore is an in-process Store with the same semantics as the gorm
// store. Sessions are serialised and work on a copy that is only kept when
// the session succeeds.
type MemoryStore struct {
	mu     sync.Mutex
	rows   map[int64]domain.Todo
	nextID int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[int64]domain.Todo), nextID: 1}
}

func (s *MemoryStore) WithinSession(ctx context.Context, fn func(repo TodoRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &memoryRepository{rows: make(map[int64]domain.Todo, len(s.rows)), nextID: s.nextID}
	for id, todo := range s.rows {
		staged.rows[id] = todo
	}

	if err := fn(staged); err != nil {
		return err
	}

	s.rows = staged.rows
	s.nextID = staged.nextID
	return nil
}

type memoryRepository struct {
	rows   map[int64]domain.Todo
	nextID int64
}

func (r *memoryRepository) Create(todo *domain.Todo) error {
	todo.ID = r.nextID
	r.nextID++
	r.rows[todo.ID] = *todo
	return nil
}

func (r *memoryRepository) List() ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0, len(r.rows))
	for _, todo := range r.rows {
		todos = append(todos, todo)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (r *memoryRepository) FindOne(id int64) (*domain.Todo, error) {
	todo, ok := r.rows[id]
	if !ok {
		return exactlyOne(id, nil)
	}
	return exactlyOne(id, []domain.Todo{todo})
}

func (r *memoryRepository) UpdateContent(todo *domain.Todo, content string) error {
	if _, ok := r.rows[todo.ID]; !ok {
		return fmt.Errorf("update todo %d: %w", todo.ID, domain.ErrNotFound)
	}
	todo.Content = content
	r.rows[todo.ID] = *todo
	return nil
}

func (r *memoryRepository) Delete(todo *domain.Todo) error {
	if _, ok := r.rows[todo.ID]; !ok {
		return fmt.Errorf("delete todo %d: %w", todo.ID, domain.ErrNotFound)
	}
	delete(r.rows, todo.ID)
	return nil
}
