package http

import (
	"net/http"

	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/logger"
)

type SaleHandler struct {
	inventoryUsecase usecase.InventoryUC
	logger           logger.Logger
}

func NewSaleHandler(inventoryUsecase usecase.InventoryUC, logger logger.Logger) *SaleHandler {
	return &SaleHandler{inventoryUsecase: inventoryUsecase, logger: logger}
}

// listSales
//
//	@Summary	История продаж от новых к старым
//	@Tags		sales
//	@Produce	json
//	@Success	200	{array}	SaleResponse
//	@Router		/sales [get]
func (s *SaleHandler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.inventoryUsecase.SalesHistory(r.Context())
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		result = append(result, *toSaleResponse(&sales[i]))
	}

	WriteSuccess(w, http.StatusOK, result)
}

// getStatistics
//
//	@Summary	Сводка по складу и продажам
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	StatisticsResponse
//	@Router		/stats [get]
func (s *SaleHandler) getStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.inventoryUsecase.Statistics(r.Context())
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toStatisticsResponse(stats))
}
