// Package server wires the HTTP surface: router, middleware stack, and
// graceful lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/thclabs/growroom/internal/handler"
	"github.com/thclabs/growroom/internal/leaderboard"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/metrics"
	"github.com/thclabs/growroom/internal/room"
	"github.com/thclabs/growroom/internal/wallet"
)

type Server struct {
	httpServer *http.Server
}

// NewServer assembles the router and returns a Server ready to Start.
// pinger may be nil when the store has no remote backend to check.
func NewServer(port int, roomService room.Service, leaderboardService leaderboard.Service, provider wallet.Provider, pinger handler.Pinger) *Server {
	r := chi.NewRouter()

	// Middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(pinger))

	// Version endpoint, for deployment verification
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint, for Prometheus scraping
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		sessionHandler := handler.NewSessionHandler(roomService)
		r.Route("/session", func(r chi.Router) {
			r.Post("/connect", sessionHandler.Connect)
			r.Post("/disconnect", sessionHandler.Disconnect)
		})

		roomHandler := handler.NewRoomHandler(roomService)
		r.Route("/room", func(r chi.Router) {
			r.Get("/", roomHandler.GetRoom)
			r.Get("/multipliers", roomHandler.GetMultipliers)
			r.Post("/plant", roomHandler.PlantSeed)
			r.Post("/harvest", roomHandler.Harvest)
			r.Post("/equipment/upgrade", roomHandler.UpgradeEquipment)
			r.Post("/capacity/upgrade", roomHandler.UpgradeCapacity)
		})

		walletHandler := handler.NewWalletHandler(provider)
		r.Get("/wallet/balance", walletHandler.Balance)

		leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", leaderboardHandler.GetLeaderboard)
			r.Get("/player", leaderboardHandler.GetPlayer)
			r.Get("/aggregate", leaderboardHandler.GetAggregate)
		})

		arcadeHandler := handler.NewArcadeHandler(leaderboardService)
		r.Route("/arcade", func(r chi.Router) {
			r.Post("/score", arcadeHandler.SubmitScore)
			r.Get("/top", arcadeHandler.TopScores)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes would drown the logs
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
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
