package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/internal/watch"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/logger"
)

// StreamHandler отдает живые представления через Server-Sent Events.
// Каждое соединение — одна подписка; снимки доставляются по принципу
// latest-wins, медленный клиент получает только самый свежий.
type StreamHandler struct {
	inventoryUsecase usecase.InventoryUC
	hub              *watch.Hub
	searchWindow     time.Duration
	logger           logger.Logger

	mu       sync.Mutex
	searches map[string]*watch.LiveSearch
}

func NewStreamHandler(inventoryUsecase usecase.InventoryUC, hub *watch.Hub,
	searchWindow time.Duration, logger logger.Logger) *StreamHandler {
	return &StreamHandler{
		inventoryUsecase: inventoryUsecase,
		hub:              hub,
		searchWindow:     searchWindow,
		logger:           logger,
		searches:         make(map[string]*watch.LiveSearch),
	}
}

type searchSnapshot struct {
	StreamID string            `json:"stream_id,omitempty"`
	Query    string            `json:"query"`
	Products []ProductResponse `json:"products"`
}

// productsStream
//
//	@Summary		Живой список товаров
//	@Description	SSE-поток снимков выдачи. Первый кадр несет stream_id для смены текста поиска через PUT /products/stream/{stream}/search
//	@Tags			streams
//	@Produce		text/event-stream
//	@Param			query	query	string	false	"Начальная подстрока поиска"
//	@Success		200	"Поток снимков"
//	@Router			/products/stream [get]
func (s *StreamHandler) productsStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := sseSetup(w)
	if !ok {
		WriteError(w, e.ErrInternalServerError)
		return
	}

	search := watch.NewLiveSearch(
		s.inventoryUsecase.SearchProducts,
		s.hub,
		s.searchWindow,
		s.logger,
		usecase.TopicProducts,
	)

	streamID := uuid.NewString()
	s.mu.Lock()
	s.searches[streamID] = search
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.searches, streamID)
		s.mu.Unlock()
		search.Close()
	}()

	if query := r.URL.Query().Get("query"); query != "" {
		search.UpdateQuery(query)
	}

	first := true
	for {
		select {
		case <-r.Context().Done():
			return
		case result, ok := <-search.Results():
			if !ok {
				return
			}

			snapshot := searchSnapshot{
				Query:    result.Query,
				Products: toArrProductResponse(result.Products),
			}
			if first {
				snapshot.StreamID = streamID
				first = false
			}

			if err := sseSend(w, flusher, snapshot); err != nil {
				return
			}
		}
	}
}

// updateSearchQuery
//
//	@Summary		Смена текста живого поиска
//	@Description	Текст применяется после окна debounce; при быстром вводе выполняется только последний запрос
//	@Tags			streams
//	@Accept			json
//	@Param			stream	path	string				true	"stream_id из первого кадра потока"
//	@Param			body	body	map[string]string	true	"{\"query\": \"подстрока\"}"
//	@Success		204	"Принято"
//	@Failure		404	{object}	ErrorResponse	"Поток не найден"
//	@Router			/products/stream/{stream}/search [put]
func (s *StreamHandler) updateSearchQuery(w http.ResponseWriter, r *http.Request) {
	streamID := chi.URLParam(r, "stream")

	s.mu.Lock()
	search := s.searches[streamID]
	s.mu.Unlock()

	if search == nil {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.Wrap("decode search query", e.ErrStatusBadRequest))
		return
	}

	search.UpdateQuery(body.Query)
	w.WriteHeader(http.StatusNoContent)
}

// productStream
//
//	@Summary		Живая карточка товара
//	@Description	SSE-поток состояния одного товара; после удаления доставляется null
//	@Tags			streams
//	@Produce		text/event-stream
//	@Param			id	path	integer	true	"ID товара"
//	@Success		200	"Поток снимков"
//	@Router			/products/{id}/stream [get]
func (s *StreamHandler) productStream(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	flusher, ok := sseSetup(w)
	if !ok {
		WriteError(w, e.ErrInternalServerError)
		return
	}

	sub := watch.Subscribe(r.Context(), s.hub,
		func(ctx context.Context) (*domain.Product, error) {
			return s.inventoryUsecase.GetProductByID(ctx, id)
		},
		usecase.TopicProducts,
	)
	defer sub.Close()

	for product := range sub.Updates() {
		if err := sseSend(w, flusher, toProductResponse(product)); err != nil {
			return
		}
	}
}

// statsStream
//
//	@Summary		Живая сводка
//	@Description	SSE-поток статистики; пересчитывается при любом изменении товаров или продаж
//	@Tags			streams
//	@Produce		text/event-stream
//	@Success		200	"Поток снимков"
//	@Router			/stats/stream [get]
func (s *StreamHandler) statsStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := sseSetup(w)
	if !ok {
		WriteError(w, e.ErrInternalServerError)
		return
	}

	sub := watch.Subscribe(r.Context(), s.hub,
		func(ctx context.Context) (*usecase.StatisticsRes, error) {
			return s.inventoryUsecase.Statistics(ctx)
		},
		usecase.TopicProducts, usecase.TopicSales,
	)
	defer sub.Close()

	for stats := range sub.Updates() {
		if err := sseSend(w, flusher, toStatisticsResponse(stats)); err != nil {
			return
		}
	}
}

func sseSetup(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return flusher, true
}

func sseSend(w http.ResponseWriter, flusher http.Flusher, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
		return err
	}
	flusher.Flush()

	return nil
}
