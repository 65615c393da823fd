package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abezemskiy/qrgen/internal/repositories/journal"
	"github.com/abezemskiy/qrgen/internal/repositories/render"
	"github.com/abezemskiy/qrgen/internal/server/handlers"
	"github.com/abezemskiy/qrgen/internal/server/logger"
	"github.com/abezemskiy/qrgen/internal/server/render/cache"
	"github.com/abezemskiy/qrgen/internal/server/render/remote"
	"github.com/abezemskiy/qrgen/internal/server/storage"
	"github.com/abezemskiy/qrgen/internal/server/storage/pg"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownWaitPeriod = 20 * time.Second // для установки в контекст для реализаации graceful shutdown

func main() {
	err := parseVariables()
	if err != nil {
		log.Fatalf("failed to set global variables, %v", err)
	}

	// Инициализация логера
	if err := logger.Initialize(logLevel, logFile); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}

	ctx := context.Background()

	// создаем экземпляр хранилища pg, если задан адрес БД
	// ошибка подключения не останавливает сервис, а показывается на странице
	var (
		stor    storage.IRequestStorage
		warning string
	)
	if databaseDsn != "" {
		pgStor, err := pg.NewStore(ctx, databaseDsn)
		if err != nil {
			logger.ServerLog.Error("failed to create storage", zap.String("error", err.Error()))
			warning = fmt.Sprintf("database connection could not be established: %v", err)
		} else {
			stor = pgStor
			defer stor.Close()
		}
	}

	// сервис отрисовки, при наличии Redis - с кэшем
	var renderer render.Renderer = remote.NewClient(renderEndpoint, time.Duration(renderTimeout)*time.Second)
	if redisAddress != "" {
		rdb, err := cache.Connect(ctx, redisAddress)
		if err != nil {
			logger.ServerLog.Warn("render cache is disabled", zap.String("error", err.Error()))
		} else {
			defer rdb.Close()
			renderer = cache.NewRenderer(renderer, rdb, time.Duration(cacheTTL)*time.Minute)
		}
	}

	// журнал передается в хэндлеры только если хранилище создано
	var jour journal.Journal
	if stor != nil {
		jour = stor
	}

	r, err := Router(renderer, jour, warning)
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}
	run(ctx, r)
}

// функция run запускает сервер и останавливает его по сигналу
func run(ctx context.Context, h http.Handler) {
	logger.ServerLog.Info("Running qrgen", zap.String("address", netAddr))

	// запускаю сам сервис с проверкой отмены контекста для реализации graceful shutdown--------------
	srv := &http.Server{
		Addr:    netAddr,
		Handler: h,
	}
	// Канал для получения сигнала прерывания
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Горутина для запуска сервера
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	// Блокирование до тех пор, пока не поступит сигнал о прерывании
	<-quit
	logger.ServerLog.Info("Shutting down server...", zap.String("address", netAddr))

	// Create a context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(ctx, shutdownWaitPeriod)
	defer cancel()

	// останавливаю сервер, чтобы он перестал принимать новые запросы
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Stopping server error: %v", err)
	}

	logger.ServerLog.Info("Shutdown the server gracefully", zap.String("address", netAddr))
}

// Router - дирежирует обработку http запросов к серверу.
// jour может быть nil, тогда запросы не журналируются.
func Router(renderer render.Renderer, jour journal.Journal, warning string) (chi.Router, error) {
	assets, err := handlers.AssetsHandler("/assets/")
	if err != nil {
		return nil, fmt.Errorf("create assets handler error, %w", err)
	}

	r := chi.NewRouter()

	r.Get("/", logger.RequestLogger(handlers.IndexHandler(warning)))
	r.Post("/", logger.RequestLogger(handlers.GenerateHandler(renderer, jour, warning)))
	r.Post("/api/payload", logger.RequestLogger(handlers.BuildPayloadHandler()))
	r.Get("/assets/*", logger.RequestLogger(assets))
	r.Get("/metrics", logger.RequestLogger(promhttp.Handler().ServeHTTP))

	// Определяем маршрут по умолчанию для некорректных запросов
	r.NotFound(logger.RequestLogger(handlers.HandleOtherRequest()))

	return r, nil
}
