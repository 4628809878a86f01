package service

import (
	"context"
	"fmt"

	"artfeeds/internal/model"
	"artfeeds/internal/repository"
)

// CategoryService exposes the fixed category list.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Seed(ctx context.Context, names []string) (int, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// List returns all categories ordered by name.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

// Seed inserts any missing categories by name and returns how many were
// attempted.
func (s *categoryService) Seed(ctx context.Context, names []string) (int, error) {
	count := 0
	for _, name := range names {
		if err := s.repo.CreateIfMissing(ctx, name); err != nil {
			return count, fmt.Errorf("seed category %q: %w", name, err)
		}
		count++
	}
	return count, nil
}
