package storage

import (
	"github.com/abezemskiy/qrgen/internal/repositories/journal"
)

type (
	// Closer - интерфейс для освобождения соединения с хранилищем.
	Closer interface {
		Close() error
	}

	// IRequestStorage - интерфейс сервера для хранения журнала запросов.
	IRequestStorage interface {
		journal.Journal
		Closer
	}
)
