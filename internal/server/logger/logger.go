package logger

import (
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Параметры ротации файла логов.
const (
	logFileMaxSizeMB  = 25
	logFileMaxAgeDays = 7
	logFileMaxBackups = 5
)

// ServerLog будет доступен всему коду как синглтон.
// Никакой код, кроме функции Initialize, не должен модифицировать эту переменную.
// По умолчанию установлен no-op-логер, который не выводит никаких сообщений.
var ServerLog *zap.Logger = zap.NewNop()

// Initialize - инициализирует синглтон логера с необходимым уровнем логирования.
// Если задан logFile, логи дополнительно пишутся в файл с ротацией.
func Initialize(level, logFile string) error {
	// преобразую текстовый уровень логирования в zap.AtomicLevel
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl),
	}

	// если установлен файл, то дублирую вывод логов в файл
	if logFile != "" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(newRotator(logFile)), lvl))
	}

	// устанавливаю синглтон
	ServerLog = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("role", "server"))
	return nil
}

// newRotator - файл логов с ротацией по размеру и возрасту.
func newRotator(logFile string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    logFileMaxSizeMB,
		MaxAge:     logFileMaxAgeDays,
		MaxBackups: logFileMaxBackups,
		Compress:   true,
	}
}

type (
	// responseData - структура для хранения сведений об ответе.
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter - реализация http.ResponseWriter, которая запоминает статус и размер ответа.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	// записываю ответ, используя оригинальный http.ResponseWriter
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	// записываю код статуса, используя оригинальный http.ResponseWriter
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// RequestLogger - middleware-логер для входящих HTTP-запросов.
func RequestLogger(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &responseData{
			status: http.StatusOK,
		}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}
		h(&lw, r)

		duration := time.Since(start)

		ServerLog.Info("got incoming HTTP request",
			zap.String("uri", r.RequestURI),
			zap.String("method", r.Method),
			zap.Duration("duration", duration),
			zap.Int("status", responseData.status),
			zap.Int("size", responseData.size),
		)
	}
}
