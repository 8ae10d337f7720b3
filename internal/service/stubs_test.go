package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/notify"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ── In-memory OrderRepository stub ───────────────────────────────────────────

type stubOrderRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*model.CustomerRequest
	products  map[uuid.UUID][]model.ProductRequest

	customerErr  error
	productsErr  error
	dropNotes    bool
	legacy       bool
	deleteCalled int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		customers: make(map[uuid.UUID]*model.CustomerRequest),
		products:  make(map[uuid.UUID][]model.ProductRequest),
	}
}

func (r *stubOrderRepo) CreateCustomer(_ context.Context, c *model.CustomerRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.customerErr != nil {
		return false, r.customerErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	dropped := false
	if r.dropNotes && c.Notes != nil {
		c.Notes = nil
		dropped = true
	}
	cp := *c
	r.customers[c.ID] = &cp
	return dropped, nil
}

func (r *stubOrderRepo) CreateProducts(_ context.Context, parentID uuid.UUID, products []model.ProductRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.productsErr != nil {
		return false, r.productsErr
	}
	for i := range products {
		products[i].ID = uuid.New()
		products[i].CustomerRequestID = parentID
	}
	r.products[parentID] = append(r.products[parentID], products...)
	return r.legacy, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CustomerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	cp.Products = append([]model.ProductRequest(nil), r.products[id]...)
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context, q repository.OrderQuery) ([]model.CustomerRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.CustomerRequest
	for id, c := range r.customers {
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(c.Name+c.Lastname+c.Email), strings.ToLower(q.Search)) {
			continue
		}
		if q.From != nil && c.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !c.CreatedAt.Before(*q.To) {
			continue
		}
		cp := *c
		cp.Products = append([]model.ProductRequest(nil), r.products[id]...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	if q.Offset > len(out) {
		q.Offset = len(out)
	}
	out = out[q.Offset:]
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, total, nil
}

func (r *stubOrderRepo) ListWithProducts(ctx context.Context, q repository.OrderQuery) ([]model.CustomerRequest, error) {
	q.Offset, q.Limit = 0, 0
	list, _, err := r.List(ctx, q)
	return list, err
}

func (r *stubOrderRepo) UpdateStatusNotes(_ context.Context, id uuid.UUID, status, notes *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status != nil {
		c.Status = *status
	}
	if notes != nil {
		n := *notes
		c.Notes = &n
	}
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalled++
	if _, ok := r.customers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.customers, id)
	delete(r.products, id)
	return nil
}


func (r *stubOrderRepo) seed(c model.CustomerRequest, products ...model.ProductRequest) uuid.UUID {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = model.StatusPending
	}
	r.customers[c.ID] = &c
	r.products[c.ID] = products
	return c.ID
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── In-memory ProductOptionRepository stub ───────────────────────────────────

type stubOptionRepo struct {
	options map[uuid.UUID]*model.ProductOption
}

func newStubOptionRepo(opts ...model.ProductOption) *stubOptionRepo {
	r := &stubOptionRepo{options: make(map[uuid.UUID]*model.ProductOption)}
	for _, o := range opts {
		o := o
		_ = r.Create(context.Background(), &o)
	}
	return r
}

func (r *stubOptionRepo) Create(_ context.Context, o *model.ProductOption) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := *o
	r.options[o.ID] = &cp
	return nil
}

func (r *stubOptionRepo) List(ctx context.Context, activeOnly bool) ([]model.ProductOption, error) {
	return r.ListByCategory(ctx, "", activeOnly)
}

func (r *stubOptionRepo) ListByCategory(_ context.Context, category string, activeOnly bool) ([]model.ProductOption, error) {
	var out []model.ProductOption
	for _, o := range r.options {
		if (category == "" || o.Category == category) && (!activeOnly || o.IsActive) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out, nil
}

func (r *stubOptionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductOption, error) {
	o, ok := r.options[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOptionRepo) Update(_ context.Context, o *model.ProductOption) error {
	cp := *o
	r.options[o.ID] = &cp
	return nil
}

func (r *stubOptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.options[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.options, id)
	return nil
}

func (r *stubOptionRepo) Count(context.Context) (int64, error) { return int64(len(r.options)), nil }

var _ repository.ProductOptionRepository = (*stubOptionRepo)(nil)

// ── In-memory SettingRepository stub ─────────────────────────────────────────

type stubSettingRepo struct {
	values map[string]datatypes.JSON
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{values: make(map[string]datatypes.JSON)}
}

func (r *stubSettingRepo) Get(_ context.Context, key string) (*model.AppSetting, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &model.AppSetting{Key: key, Value: v}, nil
}

func (r *stubSettingRepo) Upsert(_ context.Context, key string, value datatypes.JSON) error {
	r.values[key] = value
	return nil
}

var _ repository.SettingRepository = (*stubSettingRepo)(nil)

// ── Notifier / sheets stubs ──────────────────────────────────────────────────

type stubNotifier struct {
	mu     sync.Mutex
	orders []*model.CustomerRequest
}

func (n *stubNotifier) OrderCreated(_ context.Context, o *model.CustomerRequest) []notify.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, o)
	return []notify.Result{{Name: notify.BranchCustomerEmail, Err: errors.New("smtp down")}}
}

type stubSync struct {
	synced []*model.CustomerRequest
	err    error
}

func (s *stubSync) SyncSheet(_ context.Context, orders ...*model.CustomerRequest) error {
	if s.err != nil {
		return s.err
	}
	s.synced = append(s.synced, orders...)
	return nil
}

type stubSheetsProbe struct {
	title string
	err   error
}

func (p stubSheetsProbe) Title(context.Context) (string, error) { return p.title, p.err }
func (p stubSheetsProbe) EnsureTab(context.Context, []string) (bool, error) {
	return false, p.err
}
func (p stubSheetsProbe) Tab() string { return "Pedidos" }
