package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/llm"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/lock"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/metrics"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/news"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/service"
	esmongo "github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage/mongo"
	adminhttp "github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/transport/http"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/interceptors"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/redact"

	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting enrichment-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := esmongo.New(dbCtx, cfg.DB)
	dbCancel()
	if err != nil {
		log.Error("mongo_connect_failed",
			slog.String("url", redact.URL(cfg.DB.URL)),
			slog.String("err", err.Error()),
		)
		os.Exit(1)
	}
	log.Info("mongo_connected", slog.String("url", redact.URL(cfg.DB.URL)))

	var locker service.Locker
	var runLock *lock.Redis
	if cfg.Lock.RedisURL != "" {
		lockCtx, lockCancel := context.WithTimeout(rootCtx, 5*time.Second)
		runLock, err = lock.NewRedis(lockCtx, cfg.Lock, log)
		lockCancel()
		if err != nil {
			log.Error("redis_connect_failed",
				slog.String("url", redact.URL(cfg.Lock.RedisURL)),
				slog.String("err", err.Error()),
			)
			_ = store.Close(context.Background())
			os.Exit(1)
		}
		locker = runLock
		log.Info("run_lock_enabled",
			slog.String("url", redact.URL(cfg.Lock.RedisURL)),
			slog.String("key", cfg.Lock.Key),
		)
	}

	httpClient := &http.Client{Timeout: cfg.Timeouts.Interest}

	svc := service.New(
		store,
		news.New(httpClient, cfg.News),
		llm.New(httpClient, cfg.LLM),
		metrics.New(prometheus.DefaultRegisterer),
		*cfg,
	)

	sched := service.NewScheduler(svc, service.SchedulerOptions{
		Interval:   cfg.Enrichment.Interval,
		RunOnStart: cfg.Enrichment.RunOnStart,
		Logger:     log,
		Locker:     locker,
	})
	log.Info("service_initialized",
		slog.Duration("interval", cfg.Enrichment.Interval),
		slog.Int("max_articles", cfg.Enrichment.MaxArticles),
	)

	// HTTP: health, metrics, admin.
	var ready atomic.Bool
	httpAddr := cfg.HTTP.Addr()

	httpSrv := &http.Server{
		Addr: httpAddr,
		Handler: adminhttp.NewRouter(sched, svc, adminhttp.Options{
			Logger:  log,
			Timeout: cfg.Timeouts.Service,
			Ready:   &ready,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}()

	// gRPC: только health-сервис.
	grpc_prometheus.EnableHandlingTimeHistogram()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.Recover(log),
			interceptors.UnaryLoggingInterceptor(log),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamRecover(log),
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	if cfg.Env == envLocal || cfg.Env == envDev {
		reflection.Register(grpcServer)
	}

	grpcAddr := cfg.GRPC.Addr()
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("grpc_listen_failed",
			slog.String("addr", grpcAddr),
			slog.String("err", err.Error()),
		)
		_ = httpSrv.Shutdown(context.Background())
		_ = store.Close(context.Background())
		os.Exit(1)
	}
	log.Info("grpc_listen_start", slog.String("addr", grpcAddr))

	grpc_prometheus.Register(grpcServer)

	serveErrCh := make(chan error, 1)
	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	sched.Start(rootCtx)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	ready.Store(true)

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("grpc_serve_failed", slog.String("err", err.Error()))
		}
	}

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	ready.Store(false)

	// Проход дорабатывает текущий интерес; новых интересов и тиков нет.
	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	if err := sched.Stop(stopCtx); err != nil {
		log.Warn("scheduler_stop_incomplete", slog.String("err", err.Error()))
	}
	stopCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("grpc_stopped")
	case <-shutdownCtx.Done():
		log.Warn("grpc_force_stop")
		grpcServer.Stop()
	}

	_ = httpSrv.Shutdown(shutdownCtx)
	shutdownCancel()

	if runLock != nil {
		_ = runLock.Close()
	}
	_ = store.Close(context.Background())

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
