package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// InventoryUseCase реализует бизнес-логику склада: карточки товаров,
// продажу единиц, импорт из CSV и агрегаты для отчетов.
type InventoryUseCase struct {
	productRepo ProductRepository
	saleRepo    SaleRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	imagesInfra ImagesInfra
	cacheRepo   CacheRepository
	notifier    ChangeNotifier
	logger      logger.Logger

	importMu   sync.Mutex
	lastImport *ImportResult
}

func NewInventoryUC(
	productRepo ProductRepository,
	saleRepo SaleRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	notifier ChangeNotifier,
	logger logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		imagesInfra: imagesInfra,
		cacheRepo:   cacheRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// AddProduct добавляет товар, при необходимости загружая фотографию в хранилище объектов.
func (i *InventoryUseCase) AddProduct(ctx context.Context, req *AddProductReq) (*domain.Product, error) {
	const op = "InventoryUseCase.AddProduct"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrProductNameRequired)
	}

	var (
		imageKey *string
		uploaded bool
	)

	if req.Photo != nil {
		key, err := i.imagesInfra.UploadPhoto(ctx, NewUploadPhotoReq(req.Name, req.Photo))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		imageKey = &key
		uploaded = true
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженной фотографии
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded && imageKey != nil {
				i.logger.Warnf(
					"Cleaning up orphaned photo after transaction failure. product_name: %s, error: %v",
					req.Name,
					e.Wrap(op, err),
				)

				i.imagesInfra.CleanupPhoto(*imageKey)
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var product *domain.Product
	product, err = i.productRepo.Insert(ctx, domain.NewProduct(req.Name, req.Qty, req.Description, req.PriceCents, imageKey))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = i.createOutboxEvent(ctx, ProductCreated, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.invalidateCache(ctx, product.ID)
	i.notifier.Publish(TopicProducts)

	return product, nil
}

// UpdateProduct полностью заменяет запись товара. Отсутствующий ID — тихий no-op
// на уровне хранилища, но для вызывающего это not-found.
func (i *InventoryUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "InventoryUseCase.UpdateProduct"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrProductNameRequired)
	}

	current, err := i.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if current == nil {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	imageKey := req.ImagePath
	uploaded := false
	if req.Photo != nil {
		key, upErr := i.imagesInfra.UploadPhoto(ctx, NewUploadPhotoReq(req.Name, req.Photo))
		if upErr != nil {
			return nil, e.Wrap(op, upErr)
		}
		imageKey = &key
		uploaded = true
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded && imageKey != nil {
				i.imagesInfra.CleanupPhoto(*imageKey)
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product := domain.NewProduct(req.Name, req.Qty, req.Description, req.PriceCents, imageKey)
	product.ID = req.ID

	err = i.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = i.createOutboxEvent(ctx, ProductUpdated, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Старая фотография больше не нужна только если была загружена новая
	if uploaded && current.ImagePath != nil {
		i.imagesInfra.CleanupPhoto(*current.ImagePath)
	}

	i.invalidateCache(ctx, product.ID)
	i.notifier.Publish(TopicProducts)

	return product, nil
}

// DeleteProduct удаляет товар. Записи журнала продаж сохраняют свой снимок,
// каскадного удаления нет.
func (i *InventoryUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "InventoryUseCase.DeleteProduct"

	current, err := i.productRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if current == nil {
		return nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	err = i.productRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = i.createOutboxEvent(ctx, ProductDeleted, current)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	if current.ImagePath != nil {
		i.imagesInfra.CleanupPhoto(*current.ImagePath)
	}

	i.invalidateCache(ctx, id)
	i.notifier.Publish(TopicProducts)

	return nil
}

// GetProductByID ищет товар сперва в кэше, затем в БД, с фоновым пополнением кэша.
func (i *InventoryUseCase) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "InventoryUseCase.GetProductByID"

	cached, err := i.cacheRepo.GetProducts(ctx, []int64{id})
	if err == nil {
		if product, ok := cached[id]; ok {
			return &product, nil
		}
	}

	product, err := i.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, nil
	}

	// Фоновое добавление товара в кэш
	go func(p domain.Product) {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := i.cacheRepo.SetProducts(bgCtx, []domain.Product{p}); err != nil {
			i.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}(*product)

	return product, nil
}

// SearchProducts возвращает весь каталог при пустом запросе, иначе — подстрочный поиск.
func (i *InventoryUseCase) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	const op = "InventoryUseCase.SearchProducts"

	var (
		products []domain.Product
		err      error
	)
	if strings.TrimSpace(query) == "" {
		products, err = i.productRepo.GetAll(ctx)
	} else {
		products, err = i.productRepo.Search(ctx, query)
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

func (i *InventoryUseCase) GetLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	const op = "InventoryUseCase.GetLowStock"

	products, err := i.productRepo.GetLowStock(ctx, threshold)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// SellOne продает одну единицу товара: вставка снимка продажи, затем уменьшение
// остатка — оба изменения в одной транзакции, частичное применение невозможно.
// Нулевой остаток — no-op без записи продажи.
func (i *InventoryUseCase) SellOne(ctx context.Context, productID int64) (*SellOneRes, error) {
	const op = "InventoryUseCase.SellOne"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var product *domain.Product
	product, err = i.productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		err = e.ErrProductNotFound
		return nil, e.Wrap(op, err)
	}

	if product.Qty <= 0 {
		tx.Rollback(ctx)
		return &SellOneRes{Sold: false, Product: snapshotOf(product)}, nil
	}

	// Сначала запись продажи, затем уменьшение остатка
	var sale *domain.Sale
	sale, err = i.saleRepo.Insert(ctx, domain.NewSale(product, time.Now().UnixMilli()))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product.Qty -= 1
	err = i.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = i.createOutboxEvent(ctx, ProductSold, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.invalidateCache(ctx, product.ID)
	i.notifier.Publish(TopicProducts)
	i.notifier.Publish(TopicSales)

	return &SellOneRes{Sold: true, Product: snapshotOf(product), SaleID: sale.ID}, nil
}

func (i *InventoryUseCase) SalesHistory(ctx context.Context) ([]domain.Sale, error) {
	const op = "InventoryUseCase.SalesHistory"

	sales, err := i.saleRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sales, nil
}

func (i *InventoryUseCase) TotalRevenue(ctx context.Context) (int64, error) {
	const op = "InventoryUseCase.TotalRevenue"

	revenue, err := i.saleRepo.TotalRevenue(ctx)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	return revenue, nil
}

// Statistics считает агрегаты по текущему снимку склада и журналу продаж.
func (i *InventoryUseCase) Statistics(ctx context.Context) (*StatisticsRes, error) {
	const op = "InventoryUseCase.Statistics"

	products, err := i.productRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	revenue, err := i.saleRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return ComputeStatistics(products, revenue), nil
}

// createOutboxEvent добавляет событие изменения склада в outbox внутри текущей транзакции.
func (i *InventoryUseCase) createOutboxEvent(ctx context.Context, eventType OutboxEventType, product *domain.Product) error {
	payload, err := json.Marshal(map[string]any{
		"event_type":  eventType,
		"product_id":  product.ID,
		"name":        product.Name,
		"qty":         product.Qty,
		"price_cents": product.PriceCents,
	})
	if err != nil {
		return err
	}

	_, err = i.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), eventType, product.ID, payload))
	return err
}

// invalidateCache удаляет устаревшую запись товара из кэша, логируя неудачу.
func (i *InventoryUseCase) invalidateCache(ctx context.Context, id int64) {
	if err := i.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		i.logger.Warnf("Failed to invalidate product cache: %v", err)
	}
}

func snapshotOf(product *domain.Product) *ProductSnapshot {
	return &ProductSnapshot{
		ID:         product.ID,
		Name:       product.Name,
		Qty:        product.Qty,
		PriceCents: product.PriceCents,
	}
}
