// cache - кэширование изображений QR-кодов в Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/abezemskiy/qrgen/internal/common/tools/hasher"
	"github.com/abezemskiy/qrgen/internal/repositories/render"
	"github.com/abezemskiy/qrgen/internal/server/logger"
	"github.com/abezemskiy/qrgen/internal/server/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix - префикс ключей кэша отрисовки.
const keyPrefix = "qrgen:render:"

// DefaultTTL - время жизни изображения в кэше.
const DefaultTTL = time.Hour

// Renderer - реализует render.Renderer: оборачивает другой Renderer и кэширует его результат в Redis.
// Ошибки Redis не прерывают отрисовку, запрос уходит во внутренний Renderer.
type Renderer struct {
	next render.Renderer
	rdb  *redis.Client
	ttl  time.Duration
}

// NewRenderer - создает кэширующий Renderer.
func NewRenderer(next render.Renderer, rdb *redis.Client, ttl time.Duration) *Renderer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Renderer{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

// Connect - подключается к Redis и проверяет соединение.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed, %w", err)
	}
	return rdb, nil
}

// Key - ключ кэша для строки содержимого и нормализованных параметров.
func Key(data string, opts render.Options) string {
	return keyPrefix + hasher.Sum(data, strconv.Itoa(opts.Size), strconv.Itoa(opts.Margin), opts.ECC)
}

// Render - возвращает изображение из кэша или отрисовывает его и сохраняет в кэш.
func (r *Renderer) Render(ctx context.Context, data string, opts render.Options) ([]byte, error) {
	opts = opts.Normalize()
	key := Key(data, opts)

	img, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		metrics.RenderCache.WithLabelValues(metrics.CacheHit).Inc()
		logger.ServerLog.Debug("render cache hit", zap.String("key", key))
		return img, nil
	case errors.Is(err, redis.Nil):
		metrics.RenderCache.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.RenderCache.WithLabelValues(metrics.CacheError).Inc()
		logger.ServerLog.Warn("render cache read error", zap.String("key", key), zap.String("error", err.Error()))
	}

	img, err = r.next.Render(ctx, data, opts)
	if err != nil {
		return nil, err
	}

	if err := r.rdb.Set(ctx, key, img, r.ttl).Err(); err != nil {
		logger.ServerLog.Warn("render cache write error", zap.String("key", key), zap.String("error", err.Error()))
	}
	return img, nil
}
