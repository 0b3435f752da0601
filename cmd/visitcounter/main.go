// Command visitcounter serves the page visit counting API.
//
// Configuration is read from the environment, see internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ryhazerus/visits"
	"github.com/ryhazerus/visits/httpapi"
	"github.com/ryhazerus/visits/internal/config"
	"github.com/ryhazerus/visits/metrics"
	"github.com/ryhazerus/visits/store"
	"github.com/ryhazerus/visits/store/redis"
)

const component = "visitcounter"

// Buildtime vars.
var (
	revision = "0000000-dev"
)

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	log := logger.WithFields(logrus.Fields{
		"component": component,
		"revision":  revision,
	})

	if err := run(cfg, log); err != nil {
		log.WithError(err).WithField("lifecycle", "abort").Error("exit")
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logrus.Entry) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	opts := []visits.Option{
		visits.WithTTL(cfg.CacheTTL),
		visits.WithMaxEntries(cfg.CacheMaxEntries),
		visits.WithLogger(log.WithField("sub", "service")),
	}

	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		c := metrics.New(reg)
		s = c.InstrumentStore(cfg.Backend, s)
		opts = append(opts, visits.WithMetrics(c))
		gatherer = reg
	}

	svc := visits.New(s, opts...)
	defer svc.Close()

	var limiter *httpapi.RateLimiter
	if cfg.RateRPS > 0 {
		limiter = httpapi.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
		limiter.StartJanitor(ctx, 2*time.Minute)
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := httpapi.NewRouter(httpapi.Options{
		Counter:        svc,
		Logger:         log.WithField("sub", "http"),
		Gatherer:       gatherer,
		RateLimit:      limiter,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(logrus.Fields{
		"backend":           cfg.Backend,
		"cache_ttl":         cfg.CacheTTL.String(),
		"cache_max_entries": cfg.CacheMaxEntries,
		"lifecycle":         "start",
		"listen":            cfg.ListenAddr,
		"metrics":           cfg.MetricsEnabled,
		"rate_rps":          cfg.RateRPS,
	}).Info("serving")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}

	log.WithField("lifecycle", "stop").Info("stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rs := redis.NewRedisStore(client, redis.WithPrefix(cfg.RedisPrefix))

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rs.Ping(pingCtx); err != nil {
			rs.Close()
			return nil, err
		}
		return rs, nil
	case config.BackendSQLite:
		return store.NewSQLiteStore(cfg.SQLiteDSN)
	default:
		return store.NewMemoryStore(), nil
	}
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)

	if cfg.LogFormat == config.FormatText {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger, nil
}
