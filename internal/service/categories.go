package service

import (
	"context"
	"fmt"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, apperrors.TranslateDB(err)
	}

	return category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d", apperrors.ErrNotFound, id)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id int, req *models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, apperrors.TranslateDB(err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: category %d", apperrors.ErrNotFound, id)
	}

	return category, nil
}

// Delete refuses to remove a category that still has events; the RESTRICT
// foreign key surfaces as a conflict.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.TranslateDB(err)
	}
	if !deleted {
		return fmt.Errorf("%w: category %d", apperrors.ErrNotFound, id)
	}
	return nil
}
