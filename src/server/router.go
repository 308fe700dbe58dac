package server

import (
	"net/http"
	"time"

	"github.com/BielosX/wombat/pokedex/src/usecase"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(catalog *usecase.Catalog, sugar *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(sugar))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := &handlers{catalog: catalog, sugar: sugar}
	r.Route("/pokemon", func(pr chi.Router) {
		pr.Get("/", h.list)
		pr.Get("/search", h.search)
		pr.Get("/{id}", h.detail)
	})
	r.Get("/types/{type}/pokemon", h.byType)

	return r
}

func requestLogger(sugar *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			sugar.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(started),
				"requestId", chimw.GetReqID(r.Context()),
			)
		})
	}
}
