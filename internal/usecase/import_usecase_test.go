package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSV_CountsDuplicatesAndSkipsBlankNames(t *testing.T) {
	f := newUCFixture()

	csv := "header,ignored,ignored,ignored\n" +
		"Widget,10,2.50,A widget\n" +
		"Widget,5,2.50,Duplicate widget\n" +
		",3,1.00,Blank name row\n"

	res, err := f.uc.ImportCSV(context.Background(), csv)
	require.NoError(t, err)

	// Дубликат учитывается счетчиком, но все равно вставляется
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Duplicates)

	all, err := f.productRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Widget", all[0].Name)
	assert.Equal(t, 10, all[0].Qty)
	assert.Equal(t, int64(250), all[0].PriceCents)
	assert.Equal(t, "A widget", all[0].Description)
	assert.Equal(t, 5, all[1].Qty)
}

func TestImportCSV_DetectsDuplicatesAgainstStore(t *testing.T) {
	f := newUCFixture()
	f.productRepo.add(domain.Product{Name: "  widget  ", Qty: 1})

	res, err := f.uc.ImportCSV(context.Background(), "header\nWidget,1,1,x\n")
	require.NoError(t, err)

	// Сравнение имен — без регистра и без крайних пробелов
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Duplicates)
}

func TestImportCSV_HeaderAlwaysSkipped(t *testing.T) {
	f := newUCFixture()

	res, err := f.uc.ImportCSV(context.Background(), "NotAHeader,5,1.00,looks like data\n")
	require.NoError(t, err)

	assert.Zero(t, res.Imported)
	assert.Zero(t, res.Duplicates)
}

func TestImportCSV_SemicolonSeparatorAndCoercion(t *testing.T) {
	f := newUCFixture()

	csv := "name;qty;price;desc\n" +
		"Tornillo;diez;caro;sin datos\n" +
		"Clavo;3;0.99\n"

	res, err := f.uc.ImportCSV(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	all, _ := f.productRepo.GetAll(context.Background())
	require.Len(t, all, 2)

	// Нечисловые qty/price приводятся к нулю, строка не отклоняется
	assert.Equal(t, "Tornillo", all[1].Name)
	assert.Equal(t, 0, all[1].Qty)
	assert.Equal(t, int64(0), all[1].PriceCents)

	// Недостающая колонка описания — пустая строка
	assert.Equal(t, "Clavo", all[0].Name)
	assert.Equal(t, int64(99), all[0].PriceCents)
	assert.Equal(t, "", all[0].Description)
}

func TestImportCSV_BlankLinesIgnored(t *testing.T) {
	f := newUCFixture()

	res, err := f.uc.ImportCSV(context.Background(), "header\r\n\r\nUno,1,1,\r\n\r\n")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
}

func TestImportCSV_EmptyContent(t *testing.T) {
	f := newUCFixture()

	res, err := f.uc.ImportCSV(context.Background(), "")
	require.NoError(t, err)

	assert.Zero(t, res.Imported)
	assert.Zero(t, res.Duplicates)
	assert.Zero(t, f.notifier.published(TopicProducts))
}

func TestImportCSV_EmitsSummaryEvent(t *testing.T) {
	f := newUCFixture()

	_, err := f.uc.ImportCSV(context.Background(), "header\nUno,1,1,\nDos,2,2,\n")
	require.NoError(t, err)

	assert.Equal(t, []OutboxEventType{ProductsImported}, f.outboxRepo.eventTypes())
	assert.Equal(t, 1, f.notifier.published(TopicProducts))
}

func TestRunImport_ResultIsOneShot(t *testing.T) {
	f := newUCFixture()

	f.uc.RunImport("header\nUno,1,1,\n")

	require.Eventually(t, func() bool {
		return f.uc.LastImportResult() != nil
	}, 2*time.Second, 10*time.Millisecond)

	res := f.uc.LastImportResult()
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Imported)

	f.uc.ClearImportResult()
	assert.Nil(t, f.uc.LastImportResult())
}

func TestParsePriceCents(t *testing.T) {
	assert.Equal(t, int64(250), parsePriceCents("2.50"))
	assert.Equal(t, int64(600), parsePriceCents("6"))
	assert.Equal(t, int64(100), parsePriceCents("0.999"))
	assert.Equal(t, int64(0), parsePriceCents("caro"))
	assert.Equal(t, int64(0), parsePriceCents(""))
}

func TestComputeStatistics(t *testing.T) {
	products := []domain.Product{
		{Qty: 2, PriceCents: 500},
		{Qty: 3, PriceCents: 200},
	}

	stats := ComputeStatistics(products, 700)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 5, stats.TotalUnits)
	assert.Equal(t, int64(1600), stats.TotalValueCents)
	assert.Equal(t, int64(700), stats.TotalRevenueCents)
}

func TestComputeStatistics_LowStockBoundaries(t *testing.T) {
	products := []domain.Product{
		{Qty: 0},
		{Qty: 1},
		{Qty: 4},
		{Qty: 5},
	}

	stats := ComputeStatistics(products, 0)

	// Низкий остаток — от 1 до 4 включительно: нулевой остаток не считается
	assert.Equal(t, 2, stats.LowStockCount)
}
