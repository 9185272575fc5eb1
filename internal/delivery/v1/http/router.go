package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router  *chi.Mux
	metrics *Metrics
	logger  logger.Logger
}

func NewRouter(router *chi.Mux, metrics *Metrics, logger logger.Logger) *Router {
	return &Router{router: router, metrics: metrics, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(r.requestLogger)
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.metrics.Middleware)

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.router.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		catalogHandler := NewCatalogHandler(catalogUC, r.logger)
		registerCatalogRoutes(v1, catalogHandler)
	})
}

func registerCatalogRoutes(router chi.Router, catalogHandler *CatalogHandler) {
	router.Get("/products", catalogHandler.getProducts)
	router.Get("/stores", catalogHandler.getStores)
	router.Get("/catalog", catalogHandler.getCatalog)
}

func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		r.logger.
			With("request_id", middleware.GetReqID(req.Context())).
			Debugf("%s %s %d %s", req.Method, req.URL.Path, ww.Status(), time.Since(start))
	})
}
