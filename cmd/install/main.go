// install - применяет миграции журнала запросов к базе данных и завершает работу.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/abezemskiy/qrgen/internal/server/logger"
	"github.com/abezemskiy/qrgen/internal/server/storage/pg"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	dsn, err := parseDSN(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to get database address, %v", err)
	}

	if err := logger.Initialize("info", ""); err != nil {
		log.Fatalf("failed to initialize logger, %v", err)
	}

	if err := pg.RunMigrations(dsn); err != nil {
		logger.ServerLog.Error("install failed", zap.String("error", err.Error()))
		os.Exit(1)
	}
	logger.ServerLog.Info("database schema is up to date")
}

// parseDSN - адрес БД из флага -d, иначе из переменной окружения QRGEN_SERVER_DATABASE_URL (в том числе из .env).
func parseDSN(args []string) (string, error) {
	flags := flag.NewFlagSet("install", flag.ContinueOnError)
	dsn := flags.String("d", "", "database connection address")
	if err := flags.Parse(args); err != nil {
		return "", fmt.Errorf("parse flags error, %w", err)
	}
	if *dsn != "" {
		return *dsn, nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("load .env error, %w", err)
	}
	if env := os.Getenv("QRGEN_SERVER_DATABASE_URL"); env != "" {
		return env, nil
	}
	return "", errors.New("database connection address must be set")
}
