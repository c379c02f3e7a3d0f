package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/logger"
)

type ImportHandler struct {
	inventoryUsecase usecase.InventoryUC
	logger           logger.Logger
}

func NewImportHandler(inventoryUsecase usecase.InventoryUC, logger logger.Logger) *ImportHandler {
	return &ImportHandler{inventoryUsecase: inventoryUsecase, logger: logger}
}

// importProducts
//
//	@Summary		Импорт товаров из CSV
//	@Description	Принимает CSV в теле запроса (или multipart-файлом в поле file) и обрабатывает его в фоне. Результат забирается отдельным запросом
//	@Tags			import
//	@Accept			plain
//	@Produce		json
//	@Success		202	{object}	map[string]string	"Импорт принят"
//	@Failure		400	{object}	ErrorResponse		"Пустой файл"
//	@Router			/products/import [post]
func (i *ImportHandler) importProducts(w http.ResponseWriter, r *http.Request) {
	const maxImportSize = 10 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	content, err := i.readImportContent(r)
	if err != nil {
		i.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if strings.TrimSpace(content) == "" {
		WriteError(w, e.ErrEmptyImport)
		return
	}

	i.inventoryUsecase.RunImport(content)

	WriteSuccess(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// getImportResult
//
//	@Summary	Результат последнего импорта
//	@Tags		import
//	@Produce	json
//	@Success	200	{object}	map[string]int	"Счетчики импорта"
//	@Success	204	"Результата нет (импорт не запускался, не завершился или уже был прочитан и очищен)"
//	@Router		/products/import/result [get]
func (i *ImportHandler) getImportResult(w http.ResponseWriter, r *http.Request) {
	res := i.inventoryUsecase.LastImportResult()
	if res == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]int{
		"imported":   res.Imported,
		"duplicates": res.Duplicates,
	})
}

// clearImportResult
//
//	@Summary	Очистка одноразового результата импорта
//	@Tags		import
//	@Success	204	"Очищено"
//	@Router		/products/import/result [delete]
func (i *ImportHandler) clearImportResult(w http.ResponseWriter, r *http.Request) {
	i.inventoryUsecase.ClearImportResult()
	w.WriteHeader(http.StatusNoContent)
}

// readImportContent достает CSV из multipart-поля file либо из сырого тела.
func (i *ImportHandler) readImportContent(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return "", e.Wrap("parse multipart", err)
		}

		files := r.MultipartForm.File["file"]
		if len(files) == 0 {
			return "", e.Wrap("no file field", e.ErrMissingFields)
		}

		src, err := files[0].Open()
		if err != nil {
			return "", e.ErrInternalServerError
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return "", e.ErrInternalServerError
		}

		return string(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", e.Wrap("read body", e.ErrStatusBadRequest)
	}

	return string(data), nil
}
