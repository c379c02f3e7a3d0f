package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/innovadata/inventario-backend/docs" // Импорт сгенерированных файлов
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/internal/watch"
	"github.com/innovadata/inventario-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(invUC usecase.InventoryUC, hub *watch.Hub, searchWindow time.Duration) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(invUC, r.logger)
		saleHandler := NewSaleHandler(invUC, r.logger)
		importHandler := NewImportHandler(invUC, r.logger)
		reportHandler := NewReportHandler(invUC, r.logger)
		streamHandler := NewStreamHandler(invUC, hub, searchWindow, r.logger)

		registerProductRoutes(v1, prHandler, importHandler, streamHandler)
		registerSaleRoutes(v1, saleHandler, streamHandler)

		v1.Get("/report.pdf", reportHandler.inventoryReport)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler,
	importHandler *ImportHandler, streamHandler *StreamHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Get("/low-stock", prHandler.lowStock)

		pr.Post("/import", importHandler.importProducts)
		pr.Get("/import/result", importHandler.getImportResult)
		pr.Delete("/import/result", importHandler.clearImportResult)

		pr.Get("/stream", streamHandler.productsStream)
		pr.Put("/stream/{stream}/search", streamHandler.updateSearchQuery)

		pr.Route("/{id}", func(one chi.Router) {
			one.Get("/", prHandler.getProduct)
			one.Put("/", prHandler.updateProduct)
			one.Delete("/", prHandler.deleteProduct)
			one.Post("/sell", prHandler.sellProduct)
			one.Get("/stream", streamHandler.productStream)
		})
	})
}

func registerSaleRoutes(router chi.Router, saleHandler *SaleHandler, streamHandler *StreamHandler) {
	router.Get("/sales", saleHandler.listSales)
	router.Get("/stats", saleHandler.getStatistics)
	router.Get("/stats/stream", streamHandler.statsStream)
}
