package repository

import (
	"context"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductOptionRepository defines CRUD operations for form lookup options.
type ProductOptionRepository interface {
	Create(ctx context.Context, o *model.ProductOption) error
	List(ctx context.Context, activeOnly bool) ([]model.ProductOption, error)
	ListByCategory(ctx context.Context, category string, activeOnly bool) ([]model.ProductOption, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductOption, error)
	Update(ctx context.Context, o *model.ProductOption) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type productOptionRepository struct{ db *gorm.DB }

func NewProductOptionRepository(db *gorm.DB) ProductOptionRepository {
	return &productOptionRepository{db: db}
}

func (r *productOptionRepository) Create(ctx context.Context, o *model.ProductOption) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *productOptionRepository) List(ctx context.Context, activeOnly bool) ([]model.ProductOption, error) {
	return r.ListByCategory(ctx, "", activeOnly)
}

func (r *productOptionRepository) ListByCategory(ctx context.Context, category string, activeOnly bool) ([]model.ProductOption, error) {
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var list []model.ProductOption
	err := q.Order("category asc").Order("order_index asc").Order("label asc").Find(&list).Error
	return list, err
}

func (r *productOptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductOption, error) {
	var o model.ProductOption
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *productOptionRepository) Update(ctx context.Context, o *model.ProductOption) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *productOptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductOption{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productOptionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductOption{}).Count(&n).Error
	return n, err
}
