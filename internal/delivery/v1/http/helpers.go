package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ProductForm — разобранные поля формы товара. Нечисловые qty и price
// приводятся к нулю, а не отклоняются: презентационный слой шлет сырой ввод.
type ProductForm struct {
	Name        string
	Qty         int
	PriceCents  int64
	Description string
	ImagePath   *string
}

type ProductResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Qty         int        `json:"qty"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	ImagePath   *string    `json:"image_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type SaleResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Timestamp   int64  `json:"timestamp"`
}

type StatisticsResponse struct {
	TotalProducts int    `json:"total_products"`
	TotalUnits    int    `json:"total_units"`
	TotalValue    string `json:"total_value"`
	LowStockCount int    `json:"low_stock_count"`
	TotalRevenue  string `json:"total_revenue"`
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrProductNameRequired):
		return http.StatusBadRequest, e.ErrProductNameRequired.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrEmptyImport):
		return http.StatusBadRequest, e.ErrEmptyImport.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseQty приводит текст к количеству. Мусор на входе дает 0.
func parseQty(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	return v
}

// parsePriceToCents приводит текстовую цену ("599.99", "600") к центам.
// Нечисловой или отрицательный ввод дает 0 — разбор намеренно мягкий.
func parsePriceToCents(s string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	if d.LessThan(decimal.Zero) {
		return 0
	}

	return d.Shift(2).Round(0).IntPart()
}

// centsToPrice форматирует цену в центах как десятичную строку ("5.99").
func centsToPrice(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseProductForm разбирает поля формы товара. Обязательно только имя.
func parseProductForm(r *http.Request) (*ProductForm, error) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNameRequired)
	}

	form := &ProductForm{
		Name:        name,
		Qty:         parseQty(r.FormValue("qty")),
		PriceCents:  parsePriceToCents(r.FormValue("price")),
		Description: r.FormValue("description"),
	}

	if imagePath := r.FormValue("image_path"); imagePath != "" {
		form.ImagePath = &imagePath
	}

	return form, nil
}

// parsePhoto читает необязательный единственный файл photo из multipart-формы.
func parsePhoto(r *http.Request) (*usecase.ProductPhoto, error) {
	const maxFileSize = 15 << 20

	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File["photo"]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	data, mimeType, err := readFile(fh, maxFileSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductPhoto(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}

// parseProductID извлекает ID товара из пути запроса.
func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidProductID)
	}

	return id, nil
}

func toProductResponse(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Qty:         p.Qty,
		Description: p.Description,
		Price:       centsToPrice(p.PriceCents),
		ImagePath:   p.ImagePath,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toArrProductResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *toProductResponse(&products[i]))
	}

	return result
}

func toSaleResponse(s *domain.Sale) *SaleResponse {
	return &SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Price:       centsToPrice(s.PriceCents),
		Timestamp:   s.Timestamp,
	}
}

func toStatisticsResponse(stats *usecase.StatisticsRes) *StatisticsResponse {
	return &StatisticsResponse{
		TotalProducts: stats.TotalProducts,
		TotalUnits:    stats.TotalUnits,
		TotalValue:    centsToPrice(stats.TotalValueCents),
		LowStockCount: stats.LowStockCount,
		TotalRevenue:  centsToPrice(stats.TotalRevenueCents),
	}
}
