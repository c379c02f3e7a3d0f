package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2.50", 250},
		{"600", 60000},
		{" 5.99 ", 599},
		{"0.999", 100},
		{"", 0},
		{"abc", 0},
		{"-1", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parsePriceToCents(tc.in), "input %q", tc.in)
	}
}

func TestParseQty(t *testing.T) {
	assert.Equal(t, 7, parseQty("7"))
	assert.Equal(t, 7, parseQty(" 7 "))
	assert.Equal(t, 0, parseQty(""))
	assert.Equal(t, 0, parseQty("siete"))
	assert.Equal(t, 0, parseQty("1.5"))
}

func TestCentsToPrice(t *testing.T) {
	assert.Equal(t, "5.50", centsToPrice(550))
	assert.Equal(t, "0.00", centsToPrice(0))
	assert.Equal(t, "0.05", centsToPrice(5))
	assert.Equal(t, "120.00", centsToPrice(12000))
}

func TestToHTTPResponse(t *testing.T) {
	code, _ := ToHTTPResponse(e.ErrProductNotFound)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ToHTTPResponse(e.ErrUnsupportedMediaType)
	assert.Equal(t, http.StatusUnsupportedMediaType, code)

	code, _ = ToHTTPResponse(e.ErrProductNameRequired)
	assert.Equal(t, http.StatusBadRequest, code)

	// Неизвестные ошибки не протекают наружу
	code, msg := ToHTTPResponse(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, e.ErrInternalServerError.Error(), msg)
}

func TestParseProductForm(t *testing.T) {
	form := url.Values{
		"name":        {"  Café  "},
		"qty":         {"3"},
		"price":       {"5.50"},
		"description": {"molido"},
	}
	r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parsed, err := parseProductForm(r)
	require.NoError(t, err)

	assert.Equal(t, "Café", parsed.Name)
	assert.Equal(t, 3, parsed.Qty)
	assert.Equal(t, int64(550), parsed.PriceCents)
	assert.Equal(t, "molido", parsed.Description)
	assert.Nil(t, parsed.ImagePath)
}

func TestParseProductForm_CoercesGarbageNumbers(t *testing.T) {
	form := url.Values{
		"name":  {"Té"},
		"qty":   {"muchos"},
		"price": {"caro"},
	}
	r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parsed, err := parseProductForm(r)
	require.NoError(t, err)

	assert.Equal(t, 0, parsed.Qty)
	assert.Equal(t, int64(0), parsed.PriceCents)
}

func TestParseProductForm_NameRequired(t *testing.T) {
	form := url.Values{"name": {"   "}, "qty": {"1"}}
	r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err := parseProductForm(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNameRequired)
}

func TestEnsureMultipartForm_RejectsOtherContentTypes(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "application/json")

	err := ensureMultipartForm(r, 1<<20)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrExpectedMultipart)
}
