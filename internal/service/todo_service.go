package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Tomlord1122/todoo-api/internal/domain"
	"github.com/Tomlord1122/todoo-api/internal/repository"
)

// DeleteConfirmation is the body returned by a successful delete.
const DeleteConfirmation = "Todo Deleted Successfully......"

// CreateTodoRequest holds the data needed to create a new todo.
// ID is accepted so clients can send a full todo object, but the database assigns it.
type CreateTodoRequest struct {
	ID      *int64  `json:"id"`
	Content *string `json:"content" validate:"required"`
}

// UpdateTodoRequest identifies a todo and carries its new content.
// Pointers distinguish an omitted field from an empty one.
type UpdateTodoRequest struct {
	ID      *int64  `json:"id" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// DeleteTodoRequest identifies the todo to delete. Content is accepted and ignored.
type DeleteTodoRequest struct {
	ID      *int64  `json:"id" validate:"required"`
	Content *string `json:"content"`
}

// TodoResponse is the representation of a Todo returned by the service.
type TodoResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// TodoService defines the operations for managing todos.
// Each call runs in exactly one database session.
type TodoService interface {
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error)
	GetAllTodos(ctx context.Context) ([]TodoResponse, error)
	UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, req DeleteTodoRequest) (string, error)
}

type todoService struct {
	store    repository.Store
	validate *validator.Validate
}

// NewTodoService creates a TodoService over store.
func NewTodoService(store repository.Store) TodoService {
	return &todoService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *todoService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	todo := &domain.Todo{Content: *req.Content}
	err := s.store.WithinSession(ctx, func(repo repository.TodoRepository) error {
		return repo.Create(todo)
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	return toResponse(todo), nil
}

func (s *todoService) GetAllTodos(ctx context.Context) ([]TodoResponse, error) {
	var todos []domain.Todo
	err := s.store.WithinSession(ctx, func(repo repository.TodoRepository) error {
		var err error
		todos, err = repo.List()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, *toResponse(&todo))
	}
	return responses, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*TodoResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	var updated *domain.Todo
	err := s.store.WithinSession(ctx, func(repo repository.TodoRepository) error {
		existing, err := repo.FindOne(*req.ID)
		if err != nil {
			return err
		}
		if err := repo.UpdateContent(existing, *req.Content); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update todo %d: %w", *req.ID, err)
	}

	return toResponse(updated), nil
}

func (s *todoService) DeleteTodo(ctx context.Context, req DeleteTodoRequest) (string, error) {
	if err := s.validateRequest(req); err != nil {
		return "", err
	}

	err := s.store.WithinSession(ctx, func(repo repository.TodoRepository) error {
		existing, err := repo.FindOne(*req.ID)
		if err != nil {
			return err
		}
		return repo.Delete(existing)
	})
	if err != nil {
		return "", fmt.Errorf("delete todo %d: %w", *req.ID, err)
	}

	return DeleteConfirmation, nil
}

// validateRequest runs the struct tags and reports failures as domain.ErrValidation.
func (s *todoService) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		missing := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			missing = append(missing, strings.ToLower(fe.Field()))
		}
		return fmt.Errorf("%w: missing required field(s): %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

func toResponse(todo *domain.Todo) *TodoResponse {
	return &TodoResponse{ID: todo.ID, Content: todo.Content}
}
