package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/esogbengastephen/sui-ramp-service/internal/audit"
	"github.com/esogbengastephen/sui-ramp-service/internal/config"
	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/guard"
	"github.com/esogbengastephen/sui-ramp-service/internal/handler"
	"github.com/esogbengastephen/sui-ramp-service/internal/orchestrator"
	"github.com/esogbengastephen/sui-ramp-service/internal/rail"
	"github.com/esogbengastephen/sui-ramp-service/internal/repository"
	"github.com/esogbengastephen/sui-ramp-service/internal/simulation"
)

// Adapters are the external collaborators the orchestrator consumes.
// Production deployments inject their concrete clients; with
// SIMULATION_MODE set, the simulated set is wired instead.
type Adapters struct {
	Ledger   domain.LedgerAdapter
	Rail     domain.PaymentRail
	Treasury domain.TreasuryService
	Creditor domain.TokenCreditor
}

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
	port   string
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *slog.Logger, adapters *Adapters) (*Server, error) {
	// Initialize database connection
	db, err := sql.Open("postgres", cfg.GetDBConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Successfully connected to database")

	if adapters == nil {
		if !cfg.SimulationMode {
			db.Close()
			return nil, fmt.Errorf("no adapters configured and simulation mode is off")
		}
		logger.Warn("Running with simulated ledger and payment-rail adapters")
		adapters = &Adapters{
			Ledger:   simulation.NewLedger(logger),
			Rail:     simulation.NewRail(logger),
			Treasury: simulation.NewTreasury(),
			Creditor: simulation.NewCreditor(logger),
		}
	}

	store := repository.NewStore(db, logger)
	txRepo := store.Transactions()
	limitsRepo := store.Limits()

	var recorder audit.Recorder
	if len(cfg.KafkaBrokers) > 0 {
		recorder = audit.NewKafkaRecorder(cfg.KafkaBrokers, cfg.AuditTopic, logger)
	} else {
		recorder = audit.NewLogRecorder(logger)
	}

	balanceGuard := guard.New(adapters.Treasury, cfg.CheckTimeout, logger)

	deposit := orchestrator.PaymentInstructions{
		BankName:      cfg.DepositBankName,
		AccountNumber: cfg.DepositAccountNumber,
		AccountName:   cfg.DepositAccountName,
	}
	swapService := orchestrator.NewSwapService(
		txRepo, limitsRepo, balanceGuard,
		adapters.Ledger, adapters.Rail,
		recorder, deposit, nil, logger,
	)
	swapService.WatchTransfers(rail.NewStatusWatcher(adapters.Rail, cfg.TransferPollInterval, logger))

	swapHandler := handler.NewSwapHandler(swapService)
	limitsHandler := handler.NewLimitsHandler(limitsRepo)
	reconHandler := handler.NewReconciliationHandler(txRepo)
	webhookHandler := handler.NewWebhookHandler(
		cfg.WebhookSecret, txRepo, balanceGuard, adapters.Creditor, recorder, logger,
	)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	// Swap routes
	router.HandleFunc("/swaps", swapHandler.Submit).Methods("POST")
	router.HandleFunc("/swaps/{id}", swapHandler.Get).Methods("GET")
	router.HandleFunc("/swaps/{id}/cancel", swapHandler.Cancel).Methods("POST")
	router.HandleFunc("/swaps/{id}/transfer-status", swapHandler.TransferStatus).Methods("GET")

	// Admin routes
	router.HandleFunc("/admin/limits", limitsHandler.Get).Methods("GET")
	router.HandleFunc("/admin/limits", limitsHandler.Update).Methods("PUT")
	router.HandleFunc("/admin/reconciliation", reconHandler.List).Methods("GET")

	// Payment-rail reconciliation endpoint
	router.HandleFunc("/webhooks/payment-rail", webhookHandler.HandleEvent).Methods("POST")
	router.HandleFunc("/webhooks/payment-rail", webhookHandler.Health).Methods("GET")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "database unavailable"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return &Server{
		router: router,
		db:     db,
		logger: logger,
	}, nil
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	// Recovery keeps a panicking handler from killing the process; CORS
	// lets the swap UI talk to us from another origin.
	root := handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{s.logger}))(
		handlers.CORS(
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "X-Signature", "X-Admin-User"}),
		)(s.router),
	)

	s.server = &http.Server{
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", "error", err)
		}
	}()

	return s.port, nil
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("handler panic recovered", "detail", fmt.Sprint(v...))
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.db != nil {
		s.db.Close()
	}

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config, adapters *Adapters) (*Server, string, error) {
	// io.Discard keeps test output quiet; production logs JSON to stdout.
	var logger *slog.Logger
	if cfg.ServerPort == "0" {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	server, err := NewServer(cfg, logger, adapters)
	if err != nil {
		return nil, "", err
	}

	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
