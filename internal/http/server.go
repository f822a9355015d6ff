package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pocketledger/internal/cache"
	"pocketledger/internal/log"
	"pocketledger/internal/present"
	"pocketledger/internal/services"
)

// ServerConfig tunes the API server.
type ServerConfig struct {
	Addr      string
	CacheSize int
	CacheTTL  time.Duration
	// RateLimit is the number of mutating requests a client may make per
	// minute. Zero means 60.
	RateLimit int
}

// Server serves the ledger as a JSON API for the browser widget.
type Server struct {
	http.Server
	svc          *services.LedgerService
	logger       *log.Logger
	summaries    *cache.LRUCache[present.Summary]
	cacheManager *cache.Manager
	rateLimiter  *rateLimiter
	metrics      *securityMetrics
	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server. svc should
// be built with RequestConfirmer so that confirm=true reaches the service.
func NewServer(cfg ServerConfig, svc *services.LedgerService, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 64
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}

	s := &Server{
		svc:          svc,
		logger:       logger,
		summaries:    cache.NewLRUCache[present.Summary](cfg.CacheSize, cfg.CacheTTL),
		cacheManager: cache.NewManager(logger),
		rateLimiter:  newRateLimiter(cfg.RateLimit, time.Minute),
		metrics:      &securityMetrics{},
	}
	s.cacheManager.Register(s.summaries)
	s.cacheManager.Start(context.Background(), cfg.CacheTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleEditTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("DELETE /api/transactions", s.handleClearTransactions)
	mux.HandleFunc("GET /api/security", s.handleSecurityStats)

	requestIDs := func(r *http.Request) string {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			return id
		}
		return generateRequestID()
	}
	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           log.Middleware(logger, requestIDs)(s.withSecurityHeaders(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// withSecurityHeaders sets defensive headers, flags probes and rate limits
// mutating requests per client.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clientIP := extractClientIP(r)

		if detectSuspiciousRequest(r, s.metrics) {
			log.FromContext(ctx).WarnContext(ctx, "Suspicious request",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				"user_agent", r.Header.Get("User-Agent"))
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead && !s.rateLimiter.allow(clientIP, s.metrics) {
			log.FromContext(ctx).WarnContext(ctx, "Rate limit exceeded", log.FieldClientIP, clientIP, log.FieldMethod, r.Method)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops background work and gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
