package render

import (
	"context"
	"errors"
	"strings"
)

// Границы и значения по умолчанию параметров отрисовки.
const (
	MinSize       = 100
	MaxSize       = 600
	DefaultSize   = 300
	MinMargin     = 0
	MaxMargin     = 25
	DefaultMargin = 2
	DefaultECC    = "M"
)

// ErrRender - ошибка внешнего сервиса отрисовки QR-кода. Все ошибки Renderer оборачивают её.
var ErrRender = errors.New("qr code was not created")

// Options - параметры отрисовки QR-кода.
type Options struct {
	Size   int    `json:"size"`   // сторона изображения в пикселях
	Margin int    `json:"margin"` // поле вокруг кода в модулях
	ECC    string `json:"ecc"`    // уровень коррекции ошибок L, M, Q или H
}

// DefaultOptions - параметры, с которыми открывается форма.
func DefaultOptions() Options {
	return Options{
		Size:   DefaultSize,
		Margin: DefaultMargin,
		ECC:    DefaultECC,
	}
}

// Normalize - независимо ограничивает каждый параметр допустимыми значениями.
func (o Options) Normalize() Options {
	return Options{
		Size:   clamp(o.Size, MinSize, MaxSize),
		Margin: clamp(o.Margin, MinMargin, MaxMargin),
		ECC:    normalizeECC(o.ECC),
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func normalizeECC(raw string) string {
	ecc := strings.ToUpper(raw)
	switch ecc {
	case "L", "M", "Q", "H":
		return ecc
	default:
		return DefaultECC
	}
}

// Renderer - интерфейс сервиса, который по строке содержимого возвращает PNG изображение QR-кода.
type Renderer interface {
	Render(ctx context.Context, data string, opts Options) ([]byte, error)
}
