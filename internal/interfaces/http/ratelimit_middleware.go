package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/pkg/config"
	"github.com/jhoicas/likeus-api/pkg/logger"
)

// RedisRateLimiter limitador de ventana fija sobre Redis para los endpoints
// de auth. Si Redis falla, la petición se deja pasar (fail-open): el
// limitador protege contra fuerza bruta, no es parte del camino crítico.
type RedisRateLimiter struct {
	client  *redis.Client
	log     *logger.Logger
	prefix  string
	limit   int
	window  time.Duration
	timeout time.Duration
}

// NewRedisRateLimiter construye el limitador y verifica la conexión.
func NewRedisRateLimiter(cfg config.RedisConfig, limit int, window time.Duration, log *logger.Logger) (*RedisRateLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisRateLimiter{
		client:  client,
		log:     log.Component("rate_limiter"),
		prefix:  "likeus:ratelimit:",
		limit:   limit,
		window:  window,
		timeout: 250 * time.Millisecond,
	}, nil
}

// Allow incrementa el contador de la clave y decide si la petición pasa.
func (rl *RedisRateLimiter) Allow(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key
	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.log.Error().Err(err).Str("op", "incr").Msg("error de redis en rate limiter")
		return true
	}
	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			rl.log.Error().Err(err).Str("op", "expire").Msg("error de redis en rate limiter")
		}
	}
	return int(counter) <= rl.limit
}

// Close libera la conexión a Redis.
func (rl *RedisRateLimiter) Close() {
	if rl.client != nil {
		_ = rl.client.Close()
	}
}

// RateLimitMiddleware aplica el limitador por IP + ruta.
func RateLimitMiddleware(rl *RedisRateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.Allow(c.IP() + ":" + c.Path()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Error: "demasiadas solicitudes, intenta más tarde"})
		}
		return c.Next()
	}
}
