package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okian/emodetect/internal/adapters/classifier"
	"github.com/okian/emodetect/internal/adapters/http/api"
	"github.com/okian/emodetect/internal/adapters/http/site"
	"github.com/okian/emodetect/internal/adapters/http/swagger"
	service "github.com/okian/emodetect/internal/app"
	"github.com/okian/emodetect/internal/config"
	"github.com/okian/emodetect/pkg/logger"
	"github.com/okian/emodetect/pkg/metrics"
)

// HTTP server timeout constants. writeTimeout is a floor; see serverWriteTimeout.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	writeHeadroom     = 5 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.New("failed to load config: " + err.Error())
	}

	if err := logger.InitWithFormat(cfg.LogFormat); err != nil {
		return errors.New("failed to initialize logging: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	go metrics.RunRuntimeSampler(ctx)

	srv := newServer(ctx, cfg, log)

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("classifier_url", cfg.ClassifierURL),
			logger.String("model_id", cfg.ModelID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return errors.New("HTTP server failed: " + err.Error())
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

func newServer(ctx context.Context, cfg *config.Config, log logger.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      serverWriteTimeout(cfg),
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// serverWriteTimeout keeps the write deadline past the classifier timeout so
// a slow classifier still gets its 502 written.
func serverWriteTimeout(cfg *config.Config) time.Duration {
	d := time.Duration(cfg.ClassifierTimeoutMS)*time.Millisecond + writeHeadroom
	if d < writeTimeout {
		return writeTimeout
	}
	return d
}

// newHandler wires the classifier, service and all routes.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) http.Handler {
	detector := classifier.New(
		classifier.WithEndpoint(cfg.ClassifierURL),
		classifier.WithModelID(cfg.ModelID),
		classifier.WithTimeout(time.Duration(cfg.ClassifierTimeoutMS)*time.Millisecond),
		classifier.WithLogger(log.Named("classifier")),
	)
	svc := service.New(
		service.WithDetector(detector),
		service.WithLogger(log.Named("service")),
	)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)
	site.Register(ctx, mux)
	return mux
}
