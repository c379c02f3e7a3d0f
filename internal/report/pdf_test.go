package report

import (
	"strings"
	"testing"
	"time"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInventoryPDF_ProducesDocument(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Arroz", Qty: 12, Description: "Bolsa 1kg"},
		{ID: 2, Name: "Café", Qty: 3, Description: ""},
	}

	out, err := BuildInventoryPDF(products, time.Date(2026, 8, 29, 15, 4, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestBuildInventoryPDF_EmptyInventory(t *testing.T) {
	out, err := BuildInventoryPDF(nil, time.Now())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestBuildInventoryPDF_TruncatesLongFields(t *testing.T) {
	products := []domain.Product{
		{
			ID:          1,
			Name:        strings.Repeat("ñ", 100),
			Qty:         1,
			Description: strings.Repeat("x", 200),
		},
	}

	out, err := BuildInventoryPDF(products, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBuildInventoryPDF_SinglePageOverflow(t *testing.T) {
	products := make([]domain.Product, 120)
	for i := range products {
		products[i] = domain.Product{ID: int64(i + 1), Name: "Producto", Qty: i}
	}

	// Строки за пределами листа отбрасываются, документ остается одностраничным
	out, err := BuildInventoryPDF(products, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
