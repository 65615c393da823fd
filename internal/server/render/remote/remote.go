// remote - клиент внешнего сервиса отрисовки QR-кодов.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/abezemskiy/qrgen/internal/repositories/render"
	"github.com/abezemskiy/qrgen/internal/server/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint - адрес публичного API отрисовки QR-кодов.
	DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	// DefaultTimeout - время ожидания ответа внешнего сервиса.
	DefaultTimeout = 10 * time.Second
)

// Client - реализует интерфейс render.Renderer поверх HTTP API вида api.qrserver.com.
type Client struct {
	client   *resty.Client
	endpoint string
}

// NewClient - создает клиента. Пустой endpoint и нулевой timeout заменяются значениями по умолчанию.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
	}
}

// Render - запрашивает PNG изображение QR-кода для строки data.
// Параметры отрисовки предварительно ограничиваются допустимыми значениями.
func (c *Client) Render(ctx context.Context, data string, opts render.Options) ([]byte, error) {
	opts = opts.Normalize()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"data":   data,
			"size":   fmt.Sprintf("%dx%d", opts.Size, opts.Size),
			"margin": strconv.Itoa(opts.Margin),
			"ecc":    opts.ECC,
		}).
		Get(c.endpoint)
	if err != nil {
		logger.ServerLog.Error("render request error", zap.String("endpoint", c.endpoint), zap.String("error", err.Error()))
		return nil, fmt.Errorf("%w: render request error, %w", render.ErrRender, err)
	}

	if resp.StatusCode() != http.StatusOK {
		logger.ServerLog.Error("render service returned unexpected status", zap.String("endpoint", c.endpoint), zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: unexpected status %d", render.ErrRender, resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		logger.ServerLog.Error("render service returned empty body", zap.String("endpoint", c.endpoint))
		return nil, fmt.Errorf("%w: empty image", render.ErrRender)
	}

	logger.ServerLog.Debug("successful render qr code", zap.Int("bytes", len(body)), zap.Int("size", opts.Size))
	return body, nil
}
