package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type fakeLogger struct{}

func (fakeLogger) Debugf(format string, args ...any)            {}
func (fakeLogger) Infof(format string, args ...any)             {}
func (fakeLogger) Warnf(format string, args ...any)             {}
func (fakeLogger) Errorf(err error, format string, args ...any) {}

// fakeTx реализует pgx.Tx ровно настолько, насколько его трогает менеджер
// транзакций: Commit и Rollback. Остальные методы не вызываются.
type fakeTx struct {
	pgx.Tx
	pool *fakePool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.pool.mu.Lock()
	t.pool.commits++
	t.pool.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.pool.mu.Lock()
	t.pool.rollbacks++
	t.pool.mu.Unlock()
	return nil
}

type fakePool struct {
	mu        sync.Mutex
	begins    int
	commits   int
	rollbacks int
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.BeginTx(ctx, pgx.TxOptions{})
}

func (p *fakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	p.mu.Lock()
	p.begins++
	p.mu.Unlock()
	return &fakeTx{pool: p}, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64

	insertErr error
	updateErr error

	updateCalls int
	searchCalls int
	getAllCalls int
	getByIDCall int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]domain.Product)}
}

func (r *fakeProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.insertErr != nil {
		return nil, r.insertErr
	}

	r.nextID++
	stored := *product
	stored.ID = r.nextID
	r.products[stored.ID] = stored

	return &stored, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}

	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.getByIDCall++
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}

	return &p, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.getAllCalls++
	result := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.searchCalls++
	var result []domain.Product
	for _, p := range r.products {
		if strings.Contains(p.Name, query) {
			result = append(result, p)
		}
	}

	return result, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Product
	for _, p := range r.products {
		if p.Qty <= threshold {
			result = append(result, p)
		}
	}

	return result, nil
}

func (r *fakeProductRepo) add(p domain.Product) domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p

	return p
}

func (r *fakeProductRepo) get(id int64) (domain.Product, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	return p, ok
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     []domain.Sale
	nextID    int64
	insertErr error
}

func (r *fakeSaleRepo) Insert(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.insertErr != nil {
		return nil, r.insertErr
	}

	r.nextID++
	stored := *sale
	stored.ID = r.nextID
	r.sales = append(r.sales, stored)

	return &stored, nil
}

func (r *fakeSaleRepo) GetAll(ctx context.Context) ([]domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Sale, len(r.sales))
	copy(result, r.sales)

	return result, nil
}

func (r *fakeSaleRepo) TotalRevenue(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, s := range r.sales {
		total += s.PriceCents
	}

	return total, nil
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *event
	stored.ID = int64(len(r.events) + 1)
	r.events = append(r.events, &stored)

	return &stored, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

func (r *fakeOutboxRepo) eventTypes() []OutboxEventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]OutboxEventType, 0, len(r.events))
	for _, ev := range r.events {
		types = append(types, ev.EventType)
	}

	return types
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	cached  map[int64]domain.Product
	deleted []int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{cached: make(map[int64]domain.Product)}
}

func (r *fakeCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := r.cached[id]; ok {
			result[id] = p
		}
	}

	return result, nil
}

func (r *fakeCacheRepo) SetProducts(ctx context.Context, products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range products {
		r.cached[p.ID] = p
	}

	return nil
}

func (r *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.cached, id)
		r.deleted = append(r.deleted, id)
	}

	return nil
}

type fakeImagesInfra struct {
	mu        sync.Mutex
	uploads   int
	cleanups  []string
	uploadErr error
}

func (f *fakeImagesInfra) UploadPhoto(ctx context.Context, req *UploadPhotoReq) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return "", f.uploadErr
	}

	f.uploads++
	return req.ProductName + "/photo.jpg", nil
}

func (f *fakeImagesInfra) CleanupPhoto(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cleanups = append(f.cleanups, key)
}

type fakeNotifier struct {
	mu     sync.Mutex
	topics []string
}

func (n *fakeNotifier) Publish(topic string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.topics = append(n.topics, topic)
}

func (n *fakeNotifier) published(topic string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	count := 0
	for _, t := range n.topics {
		if t == topic {
			count++
		}
	}

	return count
}

type ucFixture struct {
	uc          *InventoryUseCase
	productRepo *fakeProductRepo
	saleRepo    *fakeSaleRepo
	outboxRepo  *fakeOutboxRepo
	cacheRepo   *fakeCacheRepo
	imagesInfra *fakeImagesInfra
	notifier    *fakeNotifier
	pool        *fakePool
}

func newUCFixture() *ucFixture {
	f := &ucFixture{
		productRepo: newFakeProductRepo(),
		saleRepo:    &fakeSaleRepo{},
		outboxRepo:  &fakeOutboxRepo{},
		cacheRepo:   newFakeCacheRepo(),
		imagesInfra: &fakeImagesInfra{},
		notifier:    &fakeNotifier{},
		pool:        &fakePool{},
	}

	f.uc = NewInventoryUC(
		f.productRepo,
		f.saleRepo,
		f.outboxRepo,
		f.pool,
		f.imagesInfra,
		f.cacheRepo,
		f.notifier,
		fakeLogger{},
	)

	return f
}
