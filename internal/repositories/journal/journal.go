package journal

import (
	"context"

	"github.com/abezemskiy/qrgen/internal/repositories/payload"
)

// Entry - запись журнала запросов на создание QR-кода.
type Entry struct {
	ID   string       // идентификатор запроса
	Type string       // тег типа после нормализации
	Meta payload.Meta // метаинформация без секретов
}

// Journal - интерфейс для сохранения метаинформации запросов.
// Ошибка записи не должна отменять уже выполненную отрисовку.
type Journal interface {
	Log(ctx context.Context, entry Entry) error
}
