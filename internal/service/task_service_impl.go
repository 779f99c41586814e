package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks repository.TaskRepo
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Code = strings.TrimSpace(t.Code)
	if t.Name == "" {
		return &domain.ValidationError{Field: "name", Message: "is required"}
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now().UTC()
	return s.tasks.Create(ctx, t)
}

func (s *taskService) Resolve(ctx context.Context, ref string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return t, err
	}
	return s.tasks.GetByCode(ctx, ref)
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
