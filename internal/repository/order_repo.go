package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderQuery narrows order reads. From is inclusive, To is exclusive.
type OrderQuery struct {
	Status string
	Search string
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int // 0 = no limit
}

// OrderRepository persists customer requests and their products.
// Parent and children are written in separate statements, never in one
// transaction: a failed child insert leaves the parent committed.
type OrderRepository interface {
	// CreateCustomer inserts the parent row. When the insert fails and notes
	// were set, it retries without the notes column and reports notesDropped.
	CreateCustomer(ctx context.Context, c *model.CustomerRequest) (notesDropped bool, err error)
	// CreateProducts inserts the children. When the full column set fails it
	// retries with the legacy subset and reports legacy.
	CreateProducts(ctx context.Context, parentID uuid.UUID, products []model.ProductRequest) (legacy bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerRequest, error)
	List(ctx context.Context, q OrderQuery) ([]model.CustomerRequest, int64, error)
	ListWithProducts(ctx context.Context, q OrderQuery) ([]model.CustomerRequest, error)
	UpdateStatusNotes(ctx context.Context, id uuid.UUID, status, notes *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateCustomer(ctx context.Context, c *model.CustomerRequest) (bool, error) {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
	if err == nil {
		return false, nil
	}
	if c.Notes == nil {
		return false, fmt.Errorf("insert customer request: %w", err)
	}

	log.Warn().Err(err).Str("order_id", c.ID.String()).Msg("customer insert with notes failed, retrying without notes")
	if err := r.db.WithContext(ctx).Omit(clause.Associations, "Notes").Create(c).Error; err != nil {
		return false, fmt.Errorf("insert customer request without notes: %w", err)
	}
	c.Notes = nil
	return true, nil
}

// legacyProductRow is the column set of product_requests before the zone
// columns were added.
type legacyProductRow struct {
	ID                uuid.UUID
	CustomerRequestID uuid.UUID
	ProductType       string
	PosteriorWedge    string
}

func (r *orderRepository) CreateProducts(ctx context.Context, parentID uuid.UUID, products []model.ProductRequest) (bool, error) {
	if len(products) == 0 {
		return false, nil
	}
	for i := range products {
		products[i].CustomerRequestID = parentID
	}
	err := r.db.WithContext(ctx).Create(&products).Error
	if err == nil {
		return false, nil
	}

	log.Warn().Err(err).Str("order_id", parentID.String()).Msg("product insert failed, retrying with legacy columns")
	rows := make([]legacyProductRow, len(products))
	for i, p := range products {
		id := p.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		wedge := p.PosteriorWedge
		if wedge == "" {
			wedge = model.NoOption
		}
		rows[i] = legacyProductRow{ID: id, CustomerRequestID: parentID, ProductType: p.ProductType, PosteriorWedge: wedge}
	}
	if err := r.db.WithContext(ctx).Table(model.ProductRequest{}.TableName()).Create(&rows).Error; err != nil {
		return false, fmt.Errorf("insert legacy product requests: %w", err)
	}
	return true, nil
}

func productsByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at asc")
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerRequest, error) {
	var c model.CustomerRequest
	err := r.db.WithContext(ctx).Preload("Products", productsByCreation).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// likeEscaper makes % and _ in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func orderScope(q OrderQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Status != "" {
			db = db.Where("status = ?", q.Status)
		}
		if s := strings.TrimSpace(q.Search); s != "" {
			like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
			db = db.Where(`(lower(name) LIKE ? ESCAPE '\' OR lower(lastname) LIKE ? ESCAPE '\' OR lower(email) LIKE ? ESCAPE '\')`, like, like, like)
		}
		if q.From != nil {
			db = db.Where("created_at >= ?", *q.From)
		}
		if q.To != nil {
			db = db.Where("created_at < ?", *q.To)
		}
		return db
	}
}

func (r *orderRepository) List(ctx context.Context, q OrderQuery) ([]model.CustomerRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.CustomerRequest{}).Scopes(orderScope(q)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := r.db.WithContext(ctx).Scopes(orderScope(q)).
		Preload("Products", productsByCreation).
		Order("created_at desc").
		Offset(q.Offset)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	var list []model.CustomerRequest
	if err := tx.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *orderRepository) ListWithProducts(ctx context.Context, q OrderQuery) ([]model.CustomerRequest, error) {
	q.Offset, q.Limit = 0, 0
	list, _, err := r.List(ctx, q)
	return list, err
}

func (r *orderRepository) UpdateStatusNotes(ctx context.Context, id uuid.UUID, status, notes *string) error {
	updates := map[string]any{}
	if status != nil {
		updates["status"] = *status
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&model.CustomerRequest{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.CustomerRequest{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the products first so databases without enforced foreign
// keys end up in the same state as ON DELETE CASCADE.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_request_id = ?", id).Delete(&model.ProductRequest{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.CustomerRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
