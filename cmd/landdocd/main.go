package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/app"
	"github.com/joseph-ayodele/landdoc-verifier/internal/async"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/ingest"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
	"github.com/joseph-ayodele/landdoc-verifier/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := common.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	logger := app.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	addr := cfg.Server.GRPCAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	metrics.Init()
	metricsSrv := &http.Server{Addr: cfg.Server.MetricsAddr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
	if cfg.Server.MetricsAddr != "" {
		go func() {
			logger.Info("metrics listening", "addr", cfg.Server.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics serve error", "error", err)
			}
		}()
	}

	queue := async.NewProcessorQueue(a.Processor, logger,
		async.WithWorkers(cfg.Intake.Workers),
		async.WithQueueSize(512),
		async.WithProcessTimeout(3*time.Minute),
	)
	ingestor := ingest.NewFSIngestor(queue, logger)

	if len(cfg.Intake.WatchDirs) > 0 {
		go func() {
			err := ingestor.Watch(ctx, ingest.WatchConfig{
				Roots:       cfg.Intake.WatchDirs,
				InitialScan: true,
				SkipHidden:  true,
				Debounce:    cfg.Intake.Debounce,
			}, constants.JobKindLand)
			if err != nil {
				logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(server.UnaryInterceptor(logger)))

	svc := server.NewDocumentService(server.Deps{
		Processor:     a.Processor,
		Assistant:     a.Assistant,
		Verifications: a.Verifications,
		Contracts:     a.Contracts,
		Exporter:      a.Exporter,
		Ingestor:      ingestor,
		Status:        a.Status,
	}, logger)
	server.RegisterDocumentService(grpcServer, svc)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(server.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	logger.Info("landdocd listening", "addr", addr)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC serve error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	_ = metricsSrv.Shutdown(shutdownCtx)
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
