package usecase

import (
	"context"

	"github.com/innovadata/inventario-backend/internal/domain"
)

type InventoryUC interface {
	AddProduct(ctx context.Context, req *AddProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	GetLowStock(ctx context.Context, threshold int) ([]domain.Product, error)
	SellOne(ctx context.Context, productID int64) (*SellOneRes, error)
	ImportCSV(ctx context.Context, rawContent string) (*ImportResult, error)
	RunImport(rawContent string)
	LastImportResult() *ImportResult
	ClearImportResult()
	SalesHistory(ctx context.Context) ([]domain.Sale, error)
	TotalRevenue(ctx context.Context) (int64, error)
	Statistics(ctx context.Context) (*StatisticsRes, error)
}
