package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/innovadata/inventario-backend/internal/report"
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/logger"
)

type ReportHandler struct {
	inventoryUsecase usecase.InventoryUC
	logger           logger.Logger
}

func NewReportHandler(inventoryUsecase usecase.InventoryUC, logger logger.Logger) *ReportHandler {
	return &ReportHandler{inventoryUsecase: inventoryUsecase, logger: logger}
}

// inventoryReport
//
//	@Summary		PDF-отчет по складу
//	@Description	Одностраничный отчет по всем товарам; не поместившиеся строки отбрасываются
//	@Tags			reports
//	@Produce		application/pdf
//	@Success		200	{file}		file			"PDF-документ"
//	@Failure		500	{object}	ErrorResponse	"Ошибка генерации"
//	@Router			/report.pdf [get]
func (h *ReportHandler) inventoryReport(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryUsecase.SearchProducts(r.Context(), "")
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	now := time.Now()
	pdfBytes, err := report.BuildInventoryPDF(products, now)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	filename := fmt.Sprintf("inventario_%d.pdf", now.UnixMilli())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
