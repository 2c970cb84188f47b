package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/app"
	"github.com/serenoapp/sereno-api/internal/logging"
	"github.com/serenoapp/sereno-api/pkg/config"
	"github.com/serenoapp/sereno-api/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Production)
	defer logger.Sync()

	if cfg.Logging.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Rastreamento distribuído, quando habilitado
	var tracerProvider *telemetry.TracerProvider
	if cfg.Tracing.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		tracerProvider, err = telemetry.NewTracerProvider(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, logger)
		cancel()
		if err != nil {
			logger.Fatal("falha ao inicializar telemetria", zap.Error(err))
		}
		defer tracerProvider.Shutdown(context.Background())
	}

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("falha ao inicializar aplicação", zap.Error(err))
	}

	router := gin.New()
	application.RegisterRoutes(router)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Info("servidor iniciado",
			zap.String("addr", server.Addr),
			zap.Bool("tls", cfg.Server.TLS))

		var err error
		if cfg.Server.TLS {
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("falha no servidor HTTP", zap.Error(err))
		}
	}()

	// Aguardar sinal de encerramento
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("encerramento forçado do servidor", zap.Error(err))
	}

	if err := application.Shutdown(ctx); err != nil {
		logger.Error("erro ao liberar recursos da aplicação", zap.Error(err))
	}

	logger.Info("servidor encerrado")
}
