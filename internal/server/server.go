package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/KnightlyTreasures_Go/internal/character"
	"github.com/osse101/KnightlyTreasures_Go/internal/database"
	"github.com/osse101/KnightlyTreasures_Go/internal/handler"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
	"github.com/osse101/KnightlyTreasures_Go/internal/sse"
)

// Dependencies are the services the router dispatches to.
// DBPool is nil when the service runs on the in-memory store.
type Dependencies struct {
	DBPool           database.Pool
	ShopService      shop.Service
	CharacterService character.Service
	Hub              *sse.Hub
}

// Options configures the HTTP listener and admin authentication
type Options struct {
	Port           int
	AdminAPIKey    string
	TrustedProxies []string
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router. Exposed so tests can drive it with httptest.
func NewRouter(opts Options, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	monitor := NewActivityMonitor()

	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeadersMiddleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, monitor))
	r.Use(BodyLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Long-lived stream; kept outside the request timeout group
		r.Get("/events", sse.Handler(deps.Hub))

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(RequestTimeout))

			r.Route("/shop", func(r chi.Router) {
				r.Get("/week", handler.HandleWeek(deps.ShopService))
				r.Get("/inventory", handler.HandleInventory(deps.ShopService))
				r.Get("/items/{id}", handler.HandleGetItem(deps.ShopService))
				r.Get("/items/{id}/export", handler.HandleExportItem(deps.ShopService))
				r.Post("/buy", handler.HandleBuy(deps.ShopService))
				r.Post("/sell", handler.HandleSell(deps.ShopService))
				r.Post("/reserve", handler.HandleReserve(deps.ShopService))
				r.Delete("/reservations/{itemID}", handler.HandleCancelReservation(deps.ShopService))
			})

			r.Get("/party", handler.HandleParty(deps.ShopService))

			r.Route("/characters", func(r chi.Router) {
				r.Get("/", handler.HandleListCharacters(deps.CharacterService))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", handler.HandleGetCharacter(deps.CharacterService))
					r.Post("/hp", handler.HandleAdjustHP(deps.CharacterService))
					r.Post("/items", handler.HandleBackpack(deps.CharacterService))
					r.Post("/equip", handler.HandleEquip(deps.CharacterService))
					r.Post("/attune", handler.HandleAttune(deps.CharacterService))
					r.Post("/wishlist", handler.HandleWishlist(deps.CharacterService))
					r.Put("/currency", handler.HandleSetCurrency(deps.CharacterService))
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(AdminAuthMiddleware(opts.AdminAPIKey, opts.TrustedProxies, monitor))

				r.Post("/purchases/{itemID}/restore", handler.HandleRestorePurchase(deps.ShopService))
				r.Put("/honor", handler.HandleSetHonor(deps.ShopService))
				r.Put("/quest", handler.HandleSetQuest(deps.ShopService))
				r.Put("/location", handler.HandleSetLocation(deps.ShopService))
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for probes and scrapes
		for _, prefix := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// redactHeaders copies h with credential headers masked
func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			v = []string{RedactedValue}
		}
		out[k] = v
	}
	return out
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
