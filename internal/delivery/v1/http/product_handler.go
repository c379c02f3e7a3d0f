package http

import (
	"net/http"

	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/logger"
)

const (
	maxTotalRequestSize = 50 << 20
	maxMemory           = 32 << 20
)

type ProductHandler struct {
	inventoryUsecase usecase.InventoryUC
	logger           logger.Logger
}

func NewProductHandler(inventoryUsecase usecase.InventoryUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{inventoryUsecase: inventoryUsecase, logger: logger}
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Добавляет товар с необязательной фотографией
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string			true	"Название товара"
//	@Param			qty			formData	integer			false	"Количество (нечисловое значение дает 0)"
//	@Param			price		formData	number			false	"Цена (нечисловое значение дает 0)"
//	@Param			description	formData	string			false	"Описание"
//	@Param			photo		formData	file			false	"Фотография товара"
//	@Success		201			{object}	ProductResponse	"Созданный товар"
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	photo, err := parsePhoto(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.inventoryUsecase.AddProduct(r.Context(),
		usecase.NewAddProductReq(form.Name, form.Qty, form.Description, form.PriceCents, photo))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary	Полная замена товара
//	@Tags		products
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id			path		integer			true	"ID товара"
//	@Param		name		formData	string			true	"Название товара"
//	@Param		qty			formData	integer			false	"Количество"
//	@Param		price		formData	number			false	"Цена"
//	@Param		description	formData	string			false	"Описание"
//	@Param		image_path	formData	string			false	"Ключ уже сохраненной фотографии"
//	@Param		photo		formData	file			false	"Новая фотография (замещает прежнюю)"
//	@Success	200			{object}	ProductResponse	"Обновленный товар"
//	@Failure	404			{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	photo, err := parsePhoto(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.inventoryUsecase.UpdateProduct(r.Context(), &usecase.UpdateProductReq{
		ID:          id,
		Name:        form.Name,
		Qty:         form.Qty,
		Description: form.Description,
		PriceCents:  form.PriceCents,
		ImagePath:   form.ImagePath,
		Photo:       photo,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	integer	true	"ID товара"
//	@Success	204	"Удалено (или товара уже не было)"
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.inventoryUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getProduct
//
//	@Summary	Товар по ID
//	@Tags		products
//	@Produce	json
//	@Param		id	path		integer			true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.inventoryUsecase.GetProductByID(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if product == nil {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// listProducts
//
//	@Summary	Список товаров
//	@Description	Без параметра query — все товары по имени; с параметром — подстрочный поиск
//	@Tags		products
//	@Produce	json
//	@Param		query	query		string	false	"Подстрока имени"
//	@Success	200		{array}		ProductResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.inventoryUsecase.SearchProducts(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(products))
}

// lowStock
//
//	@Summary	Товары с низким остатком
//	@Tags		products
//	@Produce	json
//	@Param		threshold	query		integer	false	"Порог остатка (по умолчанию 4)"
//	@Success	200			{array}		ProductResponse
//	@Router		/products/low-stock [get]
func (p *ProductHandler) lowStock(w http.ResponseWriter, r *http.Request) {
	const defaultThreshold = 4

	threshold := defaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold = parseQty(raw)
	}

	products, err := p.inventoryUsecase.GetLowStock(r.Context(), threshold)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(products))
}

// sellProduct
//
//	@Summary		Продажа одной единицы
//	@Description	Списывает единицу товара и пишет продажу в журнал. При нулевом остатке возвращает sold=false без изменений
//	@Tags			products
//	@Produce		json
//	@Param			id	path		integer					true	"ID товара"
//	@Success		200	{object}	map[string]interface{}	"Результат продажи"
//	@Failure		404	{object}	ErrorResponse			"Товар не найден"
//	@Router			/products/{id}/sell [post]
func (p *ProductHandler) sellProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.inventoryUsecase.SellOne(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	body := map[string]interface{}{
		"sold": res.Sold,
	}
	if res.Product != nil {
		body["product"] = map[string]interface{}{
			"id":    res.Product.ID,
			"name":  res.Product.Name,
			"qty":   res.Product.Qty,
			"price": centsToPrice(res.Product.PriceCents),
		}
	}
	if res.Sold {
		body["sale_id"] = res.SaleID
	}

	WriteSuccess(w, http.StatusOK, body)
}
