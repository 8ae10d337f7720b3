package service

import (
	"context"
	"errors"
	"math"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/notify"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OrderNotifier runs the side effects of a stored order.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, o *model.CustomerRequest) []notify.Result
}

// OrderService defines order intake and the admin order operations.
type OrderService interface {
	// Submit stores a validated, defaulted order and runs the notification
	// fan-out before returning. Side-effect failures never fail Submit.
	Submit(ctx context.Context, req dto.CreateOrderRequest) (*dto.SubmitOrderResponse, error)
	List(ctx context.Context, f dto.OrderFilter) (*dto.OrderListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type OrderServiceOptions struct {
	// CompensateOrphans deletes the parent row when its products cannot be stored.
	CompensateOrphans bool
	BusinessName      string
}

type orderService struct {
	repo     repository.OrderRepository
	notifier OrderNotifier
	opts     OrderServiceOptions
}

func NewOrderService(repo repository.OrderRepository, notifier OrderNotifier, opts OrderServiceOptions) OrderService {
	return &orderService{repo: repo, notifier: notifier, opts: opts}
}

func (s *orderService) Submit(ctx context.Context, req dto.CreateOrderRequest) (*dto.SubmitOrderResponse, error) {
	c := &model.CustomerRequest{
		Name:     req.Name,
		Lastname: req.Lastname,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
		Status:   model.StatusPending,
	}
	notesDropped, err := s.repo.CreateCustomer(ctx, c)
	if err != nil {
		log.Error().Err(err).Msg("order: customer insert failed")
		return nil, ErrCreateOrder
	}
	if notesDropped {
		log.Warn().Str("order_id", c.ID.String()).Msg("order: notes column unavailable, notes discarded")
	}

	products := make([]model.ProductRequest, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, toProductModel(p))
	}
	legacy, err := s.repo.CreateProducts(ctx, c.ID, products)
	if err != nil {
		s.handleOrphan(ctx, c.ID, err)
		return nil, ErrCreateOrder
	}
	if legacy {
		log.Warn().Str("order_id", c.ID.String()).Msg("order: products stored with legacy columns only")
	}
	c.Products = products

	if s.notifier != nil {
		s.notifier.OrderCreated(ctx, c)
	}

	log.Info().Str("order_id", c.ID.String()).Int("products", len(products)).Msg("order created")
	return &dto.SubmitOrderResponse{
		Success:      true,
		OrderID:      c.ID.String(),
		ProductCount: len(products),
		Message:      "Pedido recibido correctamente",
	}, nil
}

// handleOrphan deals with a committed parent whose products were rejected.
func (s *orderService) handleOrphan(ctx context.Context, id uuid.UUID, cause error) {
	if !s.opts.CompensateOrphans {
		log.Error().Err(cause).Str("order_id", id.String()).Msg("order: products insert failed, customer request left without products")
		return
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).AnErr("cause", cause).Str("order_id", id.String()).Msg("order: compensating delete failed, customer request left without products")
		return
	}
	log.Warn().Err(cause).Str("order_id", id.String()).Msg("order: products insert failed, customer request deleted")
}

func (s *orderService) List(ctx context.Context, f dto.OrderFilter) (*dto.OrderListResponse, error) {
	from, to, err := parseDateRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	list, total, err := s.repo.List(ctx, repository.OrderQuery{
		Status: f.Status,
		Search: f.Search,
		From:   from,
		To:     to,
		Offset: (f.Page - 1) * f.Limit,
		Limit:  f.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		data = append(data, mapOrder(o))
	}
	return &dto.OrderListResponse{
		Data:       data,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

func (s *orderService) find(ctx context.Context, id uuid.UUID) (*model.CustomerRequest, error) {
	o, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapOrder(*o)
	return &resp, nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := s.repo.UpdateStatusNotes(ctx, id, req.Status, req.Notes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *orderService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return infra.OrderPDF(o, s.opts.BusinessName)
}
