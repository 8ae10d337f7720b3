package service

import (
	"context"
	"errors"
	"strings"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductOptionService manages the lookup rows behind the form selectors.
type ProductOptionService interface {
	// ListActive groups active options by category for the public form.
	ListActive(ctx context.Context) (dto.ProductOptionsByCategory, error)
	ListAll(ctx context.Context, category string) ([]dto.ProductOptionResponse, error)
	Create(ctx context.Context, req dto.CreateProductOptionRequest) (*dto.ProductOptionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductOptionRequest) (*dto.ProductOptionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productOptionService struct {
	repo repository.ProductOptionRepository
}

func NewProductOptionService(repo repository.ProductOptionRepository) ProductOptionService {
	return &productOptionService{repo: repo}
}

func (s *productOptionService) ListActive(ctx context.Context) (dto.ProductOptionsByCategory, error) {
	list, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := dto.ProductOptionsByCategory{}
	for _, o := range list {
		out[o.Category] = append(out[o.Category], mapOption(o))
	}
	return out, nil
}

func (s *productOptionService) ListAll(ctx context.Context, category string) ([]dto.ProductOptionResponse, error) {
	list, err := s.repo.ListByCategory(ctx, category, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductOptionResponse, 0, len(list))
	for _, o := range list {
		out = append(out, mapOption(o))
	}
	return out, nil
}

// duplicate reports whether another option of category already uses value.
func (s *productOptionService) duplicate(ctx context.Context, category, value string, self uuid.UUID) (bool, error) {
	list, err := s.repo.ListByCategory(ctx, category, false)
	if err != nil {
		return false, err
	}
	for _, o := range list {
		if o.ID != self && strings.EqualFold(o.Value, value) {
			return true, nil
		}
	}
	return false, nil
}

func (s *productOptionService) Create(ctx context.Context, req dto.CreateProductOptionRequest) (*dto.ProductOptionResponse, error) {
	o := &model.ProductOption{
		Category:   strings.TrimSpace(req.Category),
		Label:      strings.TrimSpace(req.Label),
		Value:      strings.TrimSpace(req.Value),
		OrderIndex: req.OrderIndex,
		IsActive:   true,
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	dup, err := s.duplicate(ctx, o.Category, o.Value, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateOption
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	resp := mapOption(*o)
	return &resp, nil
}

func (s *productOptionService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductOptionRequest) (*dto.ProductOptionResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Category != nil {
		o.Category = strings.TrimSpace(*req.Category)
	}
	if req.Label != nil {
		o.Label = strings.TrimSpace(*req.Label)
	}
	if req.Value != nil {
		o.Value = strings.TrimSpace(*req.Value)
	}
	if req.OrderIndex != nil {
		o.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if req.Category != nil || req.Value != nil {
		dup, err := s.duplicate(ctx, o.Category, o.Value, o.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, ErrDuplicateOption
		}
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	resp := mapOption(*o)
	return &resp, nil
}

func (s *productOptionService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
