package usecase

import (
	"context"

	"github.com/innovadata/inventario-backend/internal/domain"
)

// ProductRepository — хранилище товаров. Мутации участвуют в транзакции
// из контекста; операции чтения работают поверх пула.
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	GetLowStock(ctx context.Context, threshold int) ([]domain.Product, error)
}

// SaleRepository — журнал продаж, только добавление и чтение.
type SaleRepository interface {
	Insert(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	GetAll(ctx context.Context) ([]domain.Sale, error)
	TotalRevenue(ctx context.Context) (int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
