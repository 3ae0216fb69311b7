// cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"card-gateway/internal/acquirer"
	"card-gateway/internal/api"
	"card-gateway/internal/common/config"
	"card-gateway/internal/common/logger"
	"card-gateway/internal/common/observability"
	"card-gateway/internal/common/soap"
	"card-gateway/internal/gateway"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting card gateway...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	appLog := logger.NewZapAdapter(logger.NewWithOutputs(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output))
	i2cLog := logger.NewZapAdapter(logger.NewWithOutputs(cfg.Logging.Level, cfg.Logging.Format, cfg.I2C.LogPath))
	najmLog := logger.NewZapAdapter(logger.NewWithOutputs(cfg.Logging.Level, cfg.Logging.Format, cfg.Najm.LogPath))

	g := gateway.New(gateway.Config{
		Acquirer: acquirer.Identity{
			EnUserID: cfg.I2C.Acquirer.EnUserID,
			EnPwd:    cfg.I2C.Acquirer.EnPwd,
		},
		AllowedPrefixes:   cfg.I2C.AllowedPrefixes(),
		VirtualCardPrefix: cfg.I2C.VirtualCardPrefix,
		Najm:              cfg.Najm.Routing,
	}, gateway.Backends{
		I2C: gateway.Backend{
			Invoker: soap.NewClient(cfg.I2C.Endpoint, config.GetDuration(cfg.I2C.Timeout)),
			Logger:  i2cLog,
		},
		Najm: gateway.Backend{
			Invoker: soap.NewClient(cfg.Najm.Endpoint, config.GetDuration(cfg.Najm.Timeout)),
			Logger:  najmLog,
		},
	})

	mux := http.NewServeMux()
	api.NewHandler(g, appLog, obs).Register(mux)
	if cfg.Server.Metrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: mux,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}
