package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/adapter/database"
	apphttp "github.com/serenoapp/sereno-api/internal/adapter/http"
	"github.com/serenoapp/sereno-api/internal/app/chat"
	"github.com/serenoapp/sereno-api/internal/app/diario"
	"github.com/serenoapp/sereno-api/internal/app/usuario"
	"github.com/serenoapp/sereno-api/internal/clock"
	"github.com/serenoapp/sereno-api/internal/infra/metrics"
	"github.com/serenoapp/sereno-api/internal/infra/middleware"
	"github.com/serenoapp/sereno-api/pkg/cache"
	"github.com/serenoapp/sereno-api/pkg/config"
	"github.com/serenoapp/sereno-api/pkg/ratelimit"
	"github.com/serenoapp/sereno-api/pkg/security"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// App concentra as dependências da aplicação já conectadas
type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *database.Database
	Cache          cache.Cache
	Metrics        *metrics.APIMetrics
	Middleware     *middleware.Middleware
	UsuarioHandler *apphttp.UsuarioHandler
	ChatHandler    *apphttp.ChatHandler
	DiarioHandler  *apphttp.DiarioHandler
	HealthHandler  *apphttp.HealthHandler
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx := context.Background()

	// Relógio do fuso fixo; sem ele a aplicação não sobe
	relogio, err := clock.NewLocaleClock(cfg.Locale.Timezone)
	if err != nil {
		return nil, err
	}

	// Banco de dados
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
	}

	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		return nil, err
	}

	// Métricas
	apiMetrics := metrics.NewAPIMetrics()

	// Cache das listagens do calendário
	appCache, redisCache, err := buildCache(cfg, apiMetrics, logger)
	if err != nil {
		return nil, err
	}

	// Gerenciador de tokens; sem segredo configurado, o login não emite token
	var keyManager *security.KeyManager
	if km, err := security.NewKeyManager(logger); err == nil {
		keyManager = km
	} else if cfg.Auth.Enabled {
		return nil, fmt.Errorf("autenticação habilitada sem segredo JWT válido: %w", err)
	} else {
		logger.Warn("segredo JWT não configurado; login não emitirá token", zap.Error(err))
	}

	// Repositórios
	usuarioRepo := database.NewUsuarioRepository(db.DB(), logger)
	conversaRepo := database.NewConversaRepository(db.DB(), logger)
	emocaoRepo := database.NewEmocaoRepository(db.DB(), logger)
	registroRepo := database.NewRegistroDiarioRepository(db.DB(), logger)

	// Serviços
	usuarioService := usuario.NewService(usuarioRepo, keyManager, cfg.Auth.TokenExpiration, logger)
	chatService := chat.NewService(conversaRepo, cfg.Chat.RespostaPadrao, logger)
	diarioService := diario.NewService(usuarioRepo, emocaoRepo, registroRepo,
		appCache, cfg.Cache.TTL, relogio, apiMetrics, logger)

	// Middlewares
	middlewares := middleware.NewMiddleware(logger, keyManager)
	middlewares.SetMetricsMiddleware(middleware.NewMetricsMiddleware(apiMetrics, logger))
	if redisCache != nil {
		limiter := ratelimit.NewRedisLimiter(redisCache.Client(), logger)
		middlewares.SetRateLimitMiddleware(middleware.NewRateLimitMiddleware(limiter, logger))
	}

	return &App{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Cache:          appCache,
		Metrics:        apiMetrics,
		Middleware:     middlewares,
		UsuarioHandler: apphttp.NewUsuarioHandler(usuarioService, logger),
		ChatHandler:    apphttp.NewChatHandler(chatService, logger),
		DiarioHandler:  apphttp.NewDiarioHandler(diarioService, logger),
		HealthHandler:  apphttp.NewHealthHandler(db, logger),
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.RequestID())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.Metrics())
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}
	router.Use(a.Middleware.RateLimit())

	// Rotas públicas
	router.POST("/register", a.UsuarioHandler.Register)
	router.POST("/login", a.UsuarioHandler.Login)
	router.GET("/health", a.HealthHandler.HealthCheck)
	router.GET("/health/liveness", a.HealthHandler.HealthCheck)
	router.GET("/health/readiness", a.HealthHandler.ReadinessCheck)

	if a.Config.Metrics.Enabled {
		router.GET(a.Config.Metrics.PrometheusPath, gin.WrapH(a.Metrics.Handler()))
		a.Logger.Info("Endpoint de métricas Prometheus registrado",
			zap.String("path", a.Config.Metrics.PrometheusPath))
	}

	// Rotas da aplicação; exigem token apenas quando auth.enabled
	api := router.Group("/")
	if a.Config.Auth.Enabled {
		api.Use(a.Middleware.Authenticate)
	}
	{
		api.GET("/usuario/:id", a.UsuarioHandler.GetPerfil)
		api.PUT("/usuario/:id/atualizar", a.UsuarioHandler.AtualizarPerfil)
		api.POST("/chat", a.ChatHandler.Enviar)
		api.POST("/emocao", a.DiarioHandler.RegistrarEmocao)
		api.POST("/calendario/registrar", a.DiarioHandler.RegistrarCalendario)
		api.GET("/calendario/:usuario_id/:ano/:mes", a.DiarioHandler.ListarMes)
	}
}

// buildCache monta o cache conforme a configuração. Retorna o RedisCache
// concreto quando houver, para reaproveitar o cliente no rate limiter.
func buildCache(cfg *config.Config, apiMetrics *metrics.APIMetrics, logger *zap.Logger) (cache.Cache, *cache.RedisCache, error) {
	if !cfg.Cache.Enabled {
		return &cache.NoOpCache{}, nil, nil
	}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(
			cfg.Cache.Redis.Address,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			apiMetrics,
			logger,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("falha ao conectar ao Redis: %w", err)
		}
		return redisCache, redisCache, nil
	case "memory":
		return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, apiMetrics, logger), nil, nil
	default:
		return nil, nil, fmt.Errorf("tipo de cache não suportado: %s", cfg.Cache.Type)
	}
}

// gormLogLevel converte o nível configurado para o do GORM
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() error {
	return a.DB.Close()
}

// Shutdown encerra a aplicação dentro do prazo do contexto
func (a *App) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- a.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
