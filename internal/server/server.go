// Package server exposes the cadastral lookup service as a REST API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/catastro-latam/catastro-api/internal/catastro"
)

// Server routes HTTP requests to the cadastral service. All dependencies are
// injected at construction; the zero value is not usable.
type Server struct {
	svc            *catastro.Service
	geocoder       catastro.Geocoder
	defaultCountry string
}

// New creates a Server. defaultCountry is the ISO country code used to bias
// geocoding when a request does not name a country.
func New(svc *catastro.Service, geocoder catastro.Geocoder, defaultCountry string) *Server {
	return &Server{
		svc:            svc,
		geocoder:       geocoder,
		defaultCountry: defaultCountry,
	}
}

// Handler builds the chi router with middleware and all routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logRequests)
	r.Use(recoverPanic)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/api/catastro", func(r chi.Router) {
		r.Post("/geocode", s.handleGeocode)
		r.Post("/predio/direccion", s.handleParcelByAddress)
		r.Post("/predio/coordenadas", s.handleParcelByCoords)
		r.Post("/pois/cercanos", s.handleNearbyPOIs)
		r.Post("/consulta/completa", s.handleFullLookup)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "resource not found",
		})
	})

	return r
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}
