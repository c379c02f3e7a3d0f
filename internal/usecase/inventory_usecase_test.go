package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellOne_DecrementsStockAndRecordsSale(t *testing.T) {
	f := newUCFixture()
	p := f.productRepo.add(domain.Product{Name: "Café molido", Qty: 3, PriceCents: 550})

	res, err := f.uc.SellOne(context.Background(), p.ID)
	require.NoError(t, err)

	require.True(t, res.Sold)
	assert.Equal(t, 2, res.Product.Qty)
	assert.Equal(t, int64(1), res.SaleID)

	stored, ok := f.productRepo.get(p.ID)
	require.True(t, ok)
	assert.Equal(t, 2, stored.Qty)

	require.Len(t, f.saleRepo.sales, 1)
	sale := f.saleRepo.sales[0]
	assert.Equal(t, p.ID, sale.ProductID)
	assert.Equal(t, "Café molido", sale.ProductName)
	assert.Equal(t, int64(550), sale.PriceCents)
	assert.NotZero(t, sale.Timestamp)

	assert.Equal(t, []OutboxEventType{ProductSold}, f.outboxRepo.eventTypes())
	assert.Equal(t, 1, f.notifier.published(TopicProducts))
	assert.Equal(t, 1, f.notifier.published(TopicSales))
}

func TestSellOne_ZeroStockIsNoOp(t *testing.T) {
	f := newUCFixture()
	p := f.productRepo.add(domain.Product{Name: "Agotado", Qty: 0, PriceCents: 100})

	res, err := f.uc.SellOne(context.Background(), p.ID)
	require.NoError(t, err)

	assert.False(t, res.Sold)
	assert.Empty(t, f.saleRepo.sales)

	stored, _ := f.productRepo.get(p.ID)
	assert.Equal(t, 0, stored.Qty)
	assert.Zero(t, f.notifier.published(TopicSales))
}

func TestSellOne_MissingProduct(t *testing.T) {
	f := newUCFixture()

	_, err := f.uc.SellOne(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestSellOne_SaleFailureLeavesStockUntouched(t *testing.T) {
	f := newUCFixture()
	p := f.productRepo.add(domain.Product{Name: "Té verde", Qty: 3, PriceCents: 300})
	f.saleRepo.insertErr = errors.New("disk full")

	_, err := f.uc.SellOne(context.Background(), p.ID)
	require.Error(t, err)

	// Уменьшение остатка идет после записи продажи: до Update дойти не должны
	assert.Zero(t, f.productRepo.updateCalls)

	stored, _ := f.productRepo.get(p.ID)
	assert.Equal(t, 3, stored.Qty)

	f.pool.mu.Lock()
	defer f.pool.mu.Unlock()
	assert.NotZero(t, f.pool.rollbacks)
	assert.Zero(t, f.pool.commits)
}

func TestAddProduct_RequiresName(t *testing.T) {
	f := newUCFixture()

	_, err := f.uc.AddProduct(context.Background(), NewAddProductReq("   ", 1, "", 100, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNameRequired)
}

func TestAddProduct_PersistsAndPublishes(t *testing.T) {
	f := newUCFixture()

	product, err := f.uc.AddProduct(context.Background(), NewAddProductReq("Harina", 7, "1kg", 250, nil))
	require.NoError(t, err)

	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Harina", product.Name)

	assert.Equal(t, []OutboxEventType{ProductCreated}, f.outboxRepo.eventTypes())
	assert.Equal(t, 1, f.notifier.published(TopicProducts))
}

func TestAddProduct_UploadsPhotoOnce(t *testing.T) {
	f := newUCFixture()
	photo := NewProductPhoto([]byte{0xFF, 0xD8}, "image/jpeg", 2, "foto.jpg")

	product, err := f.uc.AddProduct(context.Background(), NewAddProductReq("Azúcar", 1, "", 100, photo))
	require.NoError(t, err)

	require.NotNil(t, product.ImagePath)
	assert.Equal(t, "Azúcar/photo.jpg", *product.ImagePath)
	assert.Equal(t, 1, f.imagesInfra.uploads)
	assert.Empty(t, f.imagesInfra.cleanups)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newUCFixture()

	_, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{ID: 9, Name: "Nuevo"})
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestUpdateProduct_ReplacesRecord(t *testing.T) {
	f := newUCFixture()
	p := f.productRepo.add(domain.Product{Name: "Viejo", Qty: 1, PriceCents: 100})

	updated, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
		ID:          p.ID,
		Name:        "Nuevo",
		Qty:         4,
		Description: "cambiado",
		PriceCents:  999,
	})
	require.NoError(t, err)

	assert.Equal(t, "Nuevo", updated.Name)

	stored, _ := f.productRepo.get(p.ID)
	assert.Equal(t, "Nuevo", stored.Name)
	assert.Equal(t, 4, stored.Qty)
	assert.Equal(t, int64(999), stored.PriceCents)

	assert.Equal(t, []OutboxEventType{ProductUpdated}, f.outboxRepo.eventTypes())
}

func TestDeleteProduct_AbsentIsNoOp(t *testing.T) {
	f := newUCFixture()

	err := f.uc.DeleteProduct(context.Background(), 77)
	require.NoError(t, err)

	assert.Empty(t, f.outboxRepo.eventTypes())
	assert.Zero(t, f.notifier.published(TopicProducts))
}

func TestDeleteProduct_KeepsSalesHistory(t *testing.T) {
	f := newUCFixture()
	p := f.productRepo.add(domain.Product{Name: "Pan", Qty: 2, PriceCents: 150})

	_, err := f.uc.SellOne(context.Background(), p.ID)
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(context.Background(), p.ID))

	_, ok := f.productRepo.get(p.ID)
	assert.False(t, ok)

	sales, err := f.uc.SalesHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Pan", sales[0].ProductName)
}

func TestSearchProducts_BlankQueryReturnsAll(t *testing.T) {
	f := newUCFixture()
	f.productRepo.add(domain.Product{Name: "b"})
	f.productRepo.add(domain.Product{Name: "a"})

	products, err := f.uc.SearchProducts(context.Background(), "   ")
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].Name)
	assert.Equal(t, "b", products[1].Name)
	assert.Equal(t, 1, f.productRepo.getAllCalls)
	assert.Zero(t, f.productRepo.searchCalls)
}

func TestSearchProducts_SubstringIsCaseSensitive(t *testing.T) {
	f := newUCFixture()
	f.productRepo.add(domain.Product{Name: "Leche entera"})
	f.productRepo.add(domain.Product{Name: "leche light"})

	products, err := f.uc.SearchProducts(context.Background(), "Leche")
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Leche entera", products[0].Name)
	assert.Equal(t, 1, f.productRepo.searchCalls)
}

func TestGetLowStock_ThresholdIsInclusive(t *testing.T) {
	f := newUCFixture()
	f.productRepo.add(domain.Product{Name: "Vacío", Qty: 0})
	f.productRepo.add(domain.Product{Name: "Poco", Qty: 4})
	f.productRepo.add(domain.Product{Name: "Suficiente", Qty: 5})

	products, err := f.uc.GetLowStock(context.Background(), 4)
	require.NoError(t, err)

	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Vacío", "Poco"}, names)
}

func TestGetProductByID_CacheHitSkipsStore(t *testing.T) {
	f := newUCFixture()
	f.cacheRepo.cached[5] = domain.Product{ID: 5, Name: "Cacheado", Qty: 2}

	product, err := f.uc.GetProductByID(context.Background(), 5)
	require.NoError(t, err)

	require.NotNil(t, product)
	assert.Equal(t, "Cacheado", product.Name)
	assert.Zero(t, f.productRepo.getByIDCall)
}

func TestGetProductByID_MissingIsNilNotError(t *testing.T) {
	f := newUCFixture()

	product, err := f.uc.GetProductByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, product)
}
