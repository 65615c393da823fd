package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/abezemskiy/qrgen/internal/server/config"
	"github.com/joho/godotenv"
)

// Значения по умолчанию необязательных параметров.
const (
	defaultRenderEndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	defaultRenderTimeout  = 10 // секунды
	defaultCacheTTL       = 60 // минуты
)

var (
	netAddr        string // адрес запуска сервиса
	databaseDsn    string // адрес базы данных, журнал запросов отключен если не задан
	logLevel       string // уровень логирования
	logFile        string // файл для записи логов с ротацией
	configFile     string // путь к файлу конфигурации
	renderEndpoint string // адрес внешнего сервиса отрисовки QR-кодов
	renderTimeout  int    // время ожидания внешнего сервиса в секундах
	redisAddress   string // адрес Redis для кэша изображений, кэш отключен если не задан
	cacheTTL       int    // время жизни изображения в кэше в минутах
)

// parseVariables - функция для установки конфигурационных параметров приложения.
// Конфигурирование приложения с приоритетом в порядке убывания: значения флагов, значения из файла, значения переменных окружения.
// Переменные окружения могут быть заданы в файле .env в рабочем каталоге.
func parseVariables() error {
	parseFlags()
	parseConfigFile()
	if err := loadDotEnv(".env"); err != nil {
		return fmt.Errorf("failed to load .env file, %w", err)
	}
	parseEnvironment()
	setDefaults()

	// Проверяю корректность установки глобальных переменных
	err := checkVariables()
	if err != nil {
		return fmt.Errorf("failed to set global variable, %w", err)
	}
	return nil
}

// parseFlags - функция для определения параметров конфигурации из флагов.
func parseFlags() {
	flag.StringVar(&netAddr, "a", "", "address and port to run server")

	// по умолчанию адрес не задан, журнал запросов не ведется
	flag.StringVar(&databaseDsn, "d", "", "database connection address")

	flag.StringVar(&logLevel, "l", "", "log level")
	flag.StringVar(&logFile, "f", "", "log file with rotation")
	flag.StringVar(&configFile, "c", "", "name of configuration file")
	flag.StringVar(&renderEndpoint, "e", "", "QR render service endpoint")
	flag.StringVar(&redisAddress, "r", "", "redis address for render cache")
	flagRenderTimeout := flag.Int("t", 0, "QR render service timeout in seconds")
	flagCacheTTL := flag.Int("cache-ttl", 0, "render cache TTL in minutes")

	// Вызов flag.Parse() для парсинга аргументов
	flag.Parse()
	renderTimeout = *flagRenderTimeout
	cacheTTL = *flagCacheTTL
}

// parseConfigFile - функция для переопределения параметров конфигурации из файла конфигурации.
func parseConfigFile() {
	// если не указан файл конфигурации, то оставляю параметры запуска без изменения
	if configFile == "" {
		return
	}
	configs, err := config.ParseConfigFile(configFile)
	if err != nil {
		log.Fatalf("parse config file error: %v\n", err)
	}

	// обновляю параметры запуска если они не определены флагами
	if netAddr == "" {
		netAddr = configs.Address
	}
	if logLevel == "" {
		logLevel = configs.LogLevel
	}
	if logFile == "" {
		logFile = configs.LogFile
	}
	if databaseDsn == "" {
		databaseDsn = configs.DatabaseDSN
	}
	if renderEndpoint == "" {
		renderEndpoint = configs.RenderEndpoint
	}
	if renderTimeout == 0 {
		renderTimeout = configs.RenderTimeout
	}
	if redisAddress == "" {
		redisAddress = configs.RedisAddress
	}
	if cacheTTL == 0 {
		cacheTTL = configs.CacheTTL
	}
}

// loadDotEnv - загружает переменные окружения из файла name, уже установленные переменные не меняются.
// Отсутствие файла не является ошибкой.
func loadDotEnv(name string) error {
	err := godotenv.Load(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	res, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return res
}

// parseEnvironment - функция для переопределения конфигурации из глобальных переменных.
// Переопределяет конфигурацию, если значения не установлены флагами или файлом конфигурации.
func parseEnvironment() {
	if netAddr == "" {
		netAddr = os.Getenv("QRGEN_SERVER_ADDRESS")
	}
	if databaseDsn == "" {
		databaseDsn = os.Getenv("QRGEN_SERVER_DATABASE_URL")
	}
	if logLevel == "" {
		logLevel = os.Getenv("QRGEN_SERVER_LOG_LEVEL")
	}
	if logFile == "" {
		logFile = os.Getenv("QRGEN_SERVER_LOG_FILE")
	}
	if renderEndpoint == "" {
		renderEndpoint = os.Getenv("QRGEN_SERVER_RENDER_ENDPOINT")
	}
	if renderTimeout == 0 {
		renderTimeout = envInt("QRGEN_SERVER_RENDER_TIMEOUT")
	}
	if redisAddress == "" {
		redisAddress = os.Getenv("QRGEN_SERVER_REDIS_ADDRESS")
	}
	if cacheTTL == 0 {
		cacheTTL = envInt("QRGEN_SERVER_CACHE_TTL")
	}
}

// setDefaults - устанавливает значения необязательных параметров, не заданных ни одним из способов.
func setDefaults() {
	if renderEndpoint == "" {
		renderEndpoint = defaultRenderEndpoint
	}
	if renderTimeout <= 0 {
		renderTimeout = defaultRenderTimeout
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
}

// checkVariables - функция для проверки корректности утсановки глобальных переменных.
func checkVariables() error {
	if netAddr == "" {
		return fmt.Errorf("address and port to run server must be set")
	}
	if logLevel == "" {
		return fmt.Errorf("log level must be set")
	}
	if renderEndpoint == "" {
		return fmt.Errorf("render endpoint must be set")
	}
	return nil
}
