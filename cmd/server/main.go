package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/ottshare/internal/config"
	"github.com/mmynk/ottshare/internal/events"
	"github.com/mmynk/ottshare/internal/httpapi"
	"github.com/mmynk/ottshare/internal/matching"
	"github.com/mmynk/ottshare/internal/metrics"
	"github.com/mmynk/ottshare/internal/middleware"
	"github.com/mmynk/ottshare/internal/secret"
	"github.com/mmynk/ottshare/internal/service"
	"github.com/mmynk/ottshare/internal/storage/sqlite"
	"github.com/mmynk/ottshare/pkg/api"
	"github.com/mmynk/ottshare/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(2)
	}

	logger := logging.Setup(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	sealer, err := newSealer(cfg, logger)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBroker != "" {
		publisher = events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		logger.Info("Publishing room events", "broker", cfg.KafkaBroker, "topic", cfg.KafkaTopic)
	}
	defer publisher.Close()

	matcher := matching.New(store, sealer,
		matching.WithPublisher(publisher),
		matching.WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
		matching.WithLogger(logger),
	)

	mux := http.NewServeMux()

	// Register Connect services
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(logger))
	matchingPath, matchingHandler := api.NewMatchingServiceHandler(service.NewMatchingService(matcher), interceptors)
	mux.Handle(matchingPath, matchingHandler)
	userPath, userHandler := api.NewUserServiceHandler(service.NewUserService(matcher, logger), interceptors)
	mux.Handle(userPath, userHandler)

	mux.Handle("/metrics", promhttp.Handler())

	// REST routes and health
	mux.Handle("/", httpapi.Routes(httpapi.NewHandler(matcher, store, logger)))

	handler := middleware.RequestLogger(logger)(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
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

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSealer builds the credential sealer. Without a configured key the
// sealed passwords of a previous run cannot be opened.
func newSealer(cfg *config.Config, logger *slog.Logger) (*secret.Sealer, error) {
	if cfg.CredentialKey == "" {
		logger.Warn("CREDENTIAL_KEY not set, using an ephemeral key")
		key, err := secret.GenerateKey()
		if err != nil {
			return nil, err
		}
		return secret.NewSealer(key)
	}

	key, err := secret.ParseKey(cfg.CredentialKey)
	if err != nil {
		return nil, err
	}
	return secret.NewSealer(key)
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
