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

	"github.com/osse101/GlowMine_Go/internal/database"
	"github.com/osse101/GlowMine_Go/internal/eventlog"
	"github.com/osse101/GlowMine_Go/internal/handler"
	"github.com/osse101/GlowMine_Go/internal/ledger"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/metrics"
)

// Options configures the HTTP surface of the ledger backend
type Options struct {
	Port            int
	APIKey          string
	AdminKey        string
	TrustedProxies  []string
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxRequestBytes int64
	ServiceName     string
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, ledgerService ledger.Service, events eventlog.Service) (*Server, error) {
	router, err := NewRouter(opts, dbPool, ledgerService, events)
	if err != nil {
		return nil, err
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}, nil
}

// NewRouter builds the routes and middleware stack.
// Chi middleware executes in order defined (outermost to innermost).
// events may be nil, in which case the audit route is not mounted.
func NewRouter(opts Options, dbPool database.Pool, ledgerService ledger.Service, events eventlog.Service) (http.Handler, error) {
	limiter, err := NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, DefaultRateLimitKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	detector := NewSuspiciousActivityDetector()

	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(limiter, opts.TrustedProxies))
	if opts.MaxRequestBytes > 0 {
		r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBytes))
	}
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion(opts.ServiceName))
	r.Handle("/metrics", promhttp.Handler())

	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", ledgerHandler.HandleRegister)
		r.Get("/balance/{subjectID}", ledgerHandler.HandleBalance)
		r.Post("/credit", ledgerHandler.HandleCredit)
		r.Post("/withdraw", ledgerHandler.HandleWithdraw)

		r.Get("/config", ledgerHandler.HandleGetConfig)
		r.With(AdminKeyMiddleware(opts.AdminKey)).Put("/config", ledgerHandler.HandlePutConfig)

		if events != nil {
			r.With(AdminKeyMiddleware(opts.AdminKey)).Get("/events", handler.NewEventLogHandler(events).HandleListEvents)
		}
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r, nil
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
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

// loggingMiddleware attaches a request ID to the context and logs each
// request. A caller-supplied X-Request-ID is reused.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
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

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAdminKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

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
