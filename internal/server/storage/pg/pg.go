package pg

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abezemskiy/qrgen/internal/repositories/journal"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store - реализует интерфейс journal.Journal и позволяет взаимодествовать с СУБД PostgreSQL.
type Store struct {
	// Поле conn содержит объект соединения с СУБД
	conn *sql.DB
}

// New - возвращает экземпляр хранилища поверх уже открытого соединения.
func New(conn *sql.DB) *Store {
	return &Store{
		conn: conn,
	}
}

// NewStore - применяет миграции и возвращает новый экземпляр PostgreSQL-хранилища.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if err := RunMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run DB migrations: %w", err)
	}

	// Подключение к базе данных
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connection to database: %w", err)
	}

	// Проверка соединения с БД
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error checking connection with database: %w", err)
	}

	return New(db), nil
}

//go:embed migrations/*.sql
var migrationsDir embed.FS

// RunMigrations - применяет встроенные миграции к базе данных по адресу dsn.
func RunMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "migrations")
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations to the DB: %w", err)
		}
	}
	return nil
}

// Log - сохраняет метаинформацию запроса в таблицу qr_requests.
func (s Store) Log(ctx context.Context, entry journal.Entry) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta error, %w", err)
	}

	query := `
	INSERT INTO qr_requests (request_id, type, meta, created_at)
	VALUES ($1, $2, $3, NOW())
`
	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare context error, %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, entry.ID, entry.Type, string(meta))
	if err != nil {
		return fmt.Errorf("query execution error, %w", err)
	}
	return nil
}

// Disable - очищает БД, удаляя записи из таблиц.
// Метод необходим для тестирования, чтобы в процессе удалять тестовые записи.
func (s Store) Disable(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, `TRUNCATE TABLE qr_requests`)
	if err != nil {
		return fmt.Errorf("truncate table qr_requests error, %w", err)
	}
	return nil
}

// Close - закрывает соединение с БД.
func (s Store) Close() error {
	return s.conn.Close()
}
