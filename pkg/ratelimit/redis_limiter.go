package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LimitConfig configura o comportamento do limitador
type LimitConfig struct {
	Key    string        // Chave única para identificar o limite
	Limit  int           // Número máximo de requisições
	Period time.Duration // Período de tempo para o limite
}

// RedisLimiter implementa rate limiting com janela fixa no Redis.
// Usado para conter força bruta nos endpoints de login e registro.
type RedisLimiter struct {
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRedisLimiter cria um novo limitador baseado em Redis
func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("sereno.ratelimit"),
	}
}

// O INCR e o EXPIREAT precisam ser atômicos, daí o script Lua.
var limitScript = redis.NewScript(`
    local key = KEYS[1]
    local expireAt = tonumber(ARGV[1])

    local count = redis.call('INCR', key)
    if count == 1 then
        redis.call('EXPIREAT', key, expireAt)
    end

    return count
`)

// Allow verifica se a requisição é permitida dentro do limite de taxa.
// Retorna: permitido, restante, tempo até o reset, erro. Em caso de erro
// do Redis a requisição é permitida (fail-open).
func (r *RedisLimiter) Allow(ctx context.Context, config LimitConfig) (bool, int, time.Duration, error) {
	ctx, span := r.tracer.Start(ctx, "RedisLimiter.Allow",
		trace.WithAttributes(
			attribute.String("ratelimit.key", config.Key),
			attribute.Int("ratelimit.limit", config.Limit),
		))
	defer span.End()

	if config.Limit <= 0 || config.Period <= 0 {
		span.SetStatus(codes.Error, "invalid config")
		return true, 0, 0, errors.New("limite e período devem ser maiores que zero")
	}

	key := fmt.Sprintf("ratelimit:%s", config.Key)
	now := time.Now().Unix()
	periodSeconds := int64(config.Period.Seconds())
	expireAt := now - (now % periodSeconds) + periodSeconds
	resetAfter := time.Duration(expireAt-now) * time.Second

	result, err := limitScript.Run(ctx, r.client, []string{key}, expireAt).Result()
	if err != nil {
		r.logger.Error("erro ao executar script de rate limit", zap.Error(err))
		span.SetStatus(codes.Error, "redis script error")
		return true, config.Limit, resetAfter, err
	}

	count, err := strconv.Atoi(fmt.Sprintf("%v", result))
	if err != nil {
		r.logger.Error("resultado inesperado do script de rate limit", zap.Any("result", result))
		span.SetStatus(codes.Error, "unexpected result")
		return true, config.Limit, resetAfter, errors.New("resultado inválido do Redis")
	}

	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	allowed := count <= config.Limit

	span.SetAttributes(
		attribute.Int("ratelimit.count", count),
		attribute.Bool("ratelimit.allowed", allowed),
	)

	return allowed, remaining, resetAfter, nil
}
