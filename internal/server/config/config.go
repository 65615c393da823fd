package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configs представляет структуру конфигурации.
type Configs struct {
	Address        string `json:"address" yaml:"address"`                 // аналог переменной окружения QRGEN_SERVER_ADDRESS или флага -a
	LogLevel       string `json:"log_level" yaml:"log_level"`             // аналог переменной окружения QRGEN_SERVER_LOG_LEVEL или флага -l
	LogFile        string `json:"log_file" yaml:"log_file"`               // аналог переменной окружения QRGEN_SERVER_LOG_FILE или флага -f
	DatabaseDSN    string `json:"database_dsn" yaml:"database_dsn"`       // аналог переменной окружения QRGEN_SERVER_DATABASE_URL или флага -d
	RenderEndpoint string `json:"render_endpoint" yaml:"render_endpoint"` // аналог переменной окружения QRGEN_SERVER_RENDER_ENDPOINT или флага -e
	RenderTimeout  int    `json:"render_timeout" yaml:"render_timeout"`   // аналог переменной окружения QRGEN_SERVER_RENDER_TIMEOUT или флага -t, в секундах
	RedisAddress   string `json:"redis_address" yaml:"redis_address"`     // аналог переменной окружения QRGEN_SERVER_REDIS_ADDRESS или флага -r
	CacheTTL       int    `json:"cache_ttl" yaml:"cache_ttl"`             // аналог переменной окружения QRGEN_SERVER_CACHE_TTL или флага -cache-ttl, в минутах
}

// ParseConfigFile - функция для переопределения параметров конфигурации из файла конфигурации.
// Файлы с расширением .yaml и .yml разбираются как YAML, остальные как JSON.
func ParseConfigFile(configFileName string) (Configs, error) {
	var configs Configs
	f, err := os.Open(configFileName)
	if err != nil {
		return Configs{}, fmt.Errorf("open cofiguration file error: %w", err)
	}
	defer f.Close()
	reader := bufio.NewReader(f)

	switch strings.ToLower(filepath.Ext(configFileName)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(reader).Decode(&configs)
	default:
		err = json.NewDecoder(reader).Decode(&configs)
	}
	if err != nil {
		return Configs{}, fmt.Errorf("parse cofiguration file error: %w", err)
	}

	return configs, nil
}
