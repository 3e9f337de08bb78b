package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"playground/config"
	"playground/internal/content"
	"playground/internal/detail"
	"playground/internal/feedback"
	"playground/internal/handlers"
	"playground/internal/metrics"
	"playground/internal/middleware"
	"playground/internal/web"

	"go.uber.org/zap"
)

func applyMiddleware(h http.Handler, m ...func(http.Handler) http.Handler) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// NewHandler builds the full HTTP handler: routes plus global middleware.
func NewHandler(catalog *content.Catalog, controller *detail.Controller, limiter *middleware.RateLimiter) (http.Handler, error) {
	h, err := handlers.New(catalog, controller)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	fs := http.FileServer(http.FS(web.Static()))
	mux.Handle("/static/", http.StripPrefix("/static/", h.ProtectStatic(fs)))

	mux.HandleFunc("/items/", h.ItemsHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", h.HomeHandler)

	return applyMiddleware(mux,
		middleware.LoggerMiddleware,
		middleware.SecureHeadersMiddleware,
		limiter.Middleware,
	), nil
}

// StartServer wires storage, store, catalog and routes from cfg and serves
// until ctx is cancelled.
func StartServer(ctx context.Context, cfg *config.Config) error {
	st, err := OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			zap.L().Error("failed to close storage", zap.Error(err))
		} else {
			zap.L().Info("storage closed")
		}
	}()

	catalog, err := content.Load(cfg.Content.File)
	if err != nil {
		return err
	}
	if cfg.Content.Watch {
		if err := catalog.Watch(ctx); err != nil {
			zap.L().Warn("catalog watch disabled", zap.Error(err))
		}
	}

	store := feedback.NewStore(st, cfg.Storage.Key)
	controller := detail.NewController(store, catalog)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup()
			}
		}
	}()

	handler, err := NewHandler(catalog, controller, limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting", zap.String("url", "http://localhost"+srv.Addr),
			zap.String("storage", cfg.Storage.Driver), zap.Int("items", len(catalog.Items())))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	zap.L().Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}
