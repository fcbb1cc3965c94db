package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации хост-процесса движка.
// Константы самого ландшафта (размер чанка, размер вокселя, пороги LOD)
// зафиксированы на этапе компиляции и здесь не настраиваются.

type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type EngineConfig struct {
	Seed           int64 `yaml:"seed"`
	TickRate       int   `yaml:"tick_rate"`        // Тиков в секунду
	ViewDistance   int   `yaml:"view_distance"`    // Радиус прогрузки чанков (в чанках)
	MaxChunks      int   `yaml:"max_chunks"`       // Лимит резидентных чанков (LRU-выгрузка)
	MergeBudget    int   `yaml:"merge_budget"`     // Операций merge/split за тик
	EvictionPeriod int   `yaml:"eviction_seconds"` // Период LRU-свипа
}

type ServerConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

type LoggingConfig struct {
	Component string `yaml:"component"`
}

// GetSeed возвращает сид мира с поддержкой fallback значений
func (e *EngineConfig) GetSeed() int64 {
	if e.Seed != 0 {
		return e.Seed
	}
	if envVal := os.Getenv("ENGINE_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 12345
}

// GetTickRate возвращает частоту тиков с поддержкой fallback значений
func (e *EngineConfig) GetTickRate() int {
	return getIntWithEnvFallback(e.TickRate, "ENGINE_TICK_RATE", 60)
}

// GetViewDistance возвращает радиус прогрузки чанков
func (e *EngineConfig) GetViewDistance() int {
	return getIntWithEnvFallback(e.ViewDistance, "ENGINE_VIEW_DISTANCE", 4)
}

// GetMaxChunks возвращает лимит резидентных чанков
func (e *EngineConfig) GetMaxChunks() int {
	return getIntWithEnvFallback(e.MaxChunks, "ENGINE_MAX_CHUNKS", 4096)
}

// GetMergeBudget возвращает бюджет операций merge/split за тик
func (e *EngineConfig) GetMergeBudget() int {
	return getIntWithEnvFallback(e.MergeBudget, "ENGINE_MERGE_BUDGET", 4)
}

// GetEvictionPeriod возвращает период LRU-свипа хранилища в секундах
func (e *EngineConfig) GetEvictionPeriod() int {
	return getIntWithEnvFallback(e.EvictionPeriod, "ENGINE_EVICTION_SECONDS", 10)
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(s.MetricsPort, "ENGINE_METRICS_PORT", 2112)
}

// GetComponent возвращает имя компонента для логирования
func (l *LoggingConfig) GetComponent() string {
	if l.Component != "" {
		return l.Component
	}
	return "engine"
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV ENGINE_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ENGINE_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
