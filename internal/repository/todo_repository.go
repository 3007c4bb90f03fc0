package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todoo-api/internal/database"
	"github.com/Tomlord1122/todoo-api/internal/domain"
)

// TodoRepository defines the todo data operations available inside one session.
type TodoRepository interface {
	Create(todo *domain.Todo) error
	List() ([]domain.Todo, error)
	// FindOne returns the single row with the given id. It fails with
	// domain.ErrNotFound for zero rows and domain.ErrAmbiguousResult for more than one.
	FindOne(id int64) (*domain.Todo, error)
	UpdateContent(todo *domain.Todo, content string) error
	Delete(todo *domain.Todo) error
}

// Store hands out a TodoRepository bound to one session. The session is
// committed if fn returns nil, rolled back otherwise, and released either way.
type Store interface {
	WithinSession(ctx context.Context, fn func(repo TodoRepository) error) error
}

type gormStore struct {
	db database.Service
}

// NewGormStore creates a Store backed by the database connection pool.
func NewGormStore(db database.Service) Store {
	return &gormStore{db: db}
}

func (s *gormStore) WithinSession(ctx context.Context, fn func(repo TodoRepository) error) error {
	return s.db.Session(ctx, func(tx *gorm.DB) error {
		return fn(NewGormTodoRepository(tx))
	})
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a todo repository over db, usually a session transaction.
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(todo *domain.Todo) error {
	// The database assigns the id.
	todo.ID = 0
	if err := r.db.Create(todo).Error; err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *gormTodoRepository) List() ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)
	if err := r.db.Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}
	return todos, nil
}

func (r *gormTodoRepository) FindOne(id int64) (*domain.Todo, error) {
	// Fetch up to two rows so a duplicate id is detected instead of hidden.
	var rows []domain.Todo
	if err := r.db.Where("id = ?", id).Limit(2).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select todo %d: %w", id, err)
	}
	return exactlyOne(id, rows)
}

func (r *gormTodoRepository) UpdateContent(todo *domain.Todo, content string) error {
	result := r.db.Model(todo).Update("content", content)
	if result.Error != nil {
		return fmt.Errorf("update todo %d: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update todo %d: %w", todo.ID, domain.ErrNotFound)
	}
	todo.Content = content
	return nil
}

func (r *gormTodoRepository) Delete(todo *domain.Todo) error {
	result := r.db.Delete(todo)
	if result.Error != nil {
		return fmt.Errorf("delete todo %d: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete todo %d: %w", todo.ID, domain.ErrNotFound)
	}
	return nil
}

func exactlyOne(id int64, rows []domain.Todo) (*domain.Todo, error) {
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("todo with ID %d: %w", id, domain.ErrNotFound)
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("todo with ID %d: %w", id, domain.ErrAmbiguousResult)
	}
}
