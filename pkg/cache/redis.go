package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/serenoapp/sereno-api/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RedisCache implementa a interface Cache usando Redis
type RedisCache struct {
	client  *redis.Client
	logger  *zap.Logger
	tracer  trace.Tracer
	hits    int64
	misses  int64
	metrics *metrics.APIMetrics
}

// NewRedisCache cria uma nova instância de RedisCache
func NewRedisCache(addr string, password string, db int, apiMetrics *metrics.APIMetrics, logger *zap.Logger) (*RedisCache, error) {
	tracer := otel.GetTracerProvider().Tracer("sereno.cache.redis")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ctx, span := tracer.Start(
		ctx,
		"RedisCache.Init",
		trace.WithAttributes(
			attribute.String("redis.addr", addr),
			attribute.Int("redis.db", db),
		),
	)
	defer span.End()

	if err := client.Ping(ctx).Err(); err != nil {
		span.SetStatus(codes.Error, "connection failure")
		return nil, err
	}

	span.SetStatus(codes.Ok, "connection successful")

	logger.Info("Conexão com Redis estabelecida com sucesso",
		zap.String("addr", addr),
		zap.Int("db", db))

	return &RedisCache{
		client:  client,
		logger:  logger,
		tracer:  tracer,
		metrics: apiMetrics,
	}, nil
}

// Client expõe o cliente Redis subjacente (usado pelo rate limiter)
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Set armazena um valor no cache
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Set",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.Error(err))
		span.SetStatus(codes.Error, "serialization failure")
		return err
	}

	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		c.logger.Error("falha ao armazenar no Redis",
			zap.String("key", key),
			zap.Error(err))
		span.SetStatus(codes.Error, "set failure")
		return err
	}

	return nil
}

// Get recupera um valor do cache
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Get",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		c.reportMetrics()
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return false, nil
	}
	if err != nil {
		c.logger.Error("falha ao ler do Redis",
			zap.String("key", key),
			zap.Error(err))
		span.SetStatus(codes.Error, "get failure")
		return false, err
	}

	atomic.AddInt64(&c.hits, 1)
	c.reportMetrics()
	span.SetAttributes(attribute.Bool("cache.hit", true))

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar para o destino", zap.Error(err))
		return true, err
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Clear remove todos os valores do cache
func (c *RedisCache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

// Ping verifica a conexão com o Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) reportMetrics() {
	if c.metrics != nil {
		c.metrics.UpdateCacheHitRatio(atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), "redis")
	}
}
