package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	// Пустая конфигурация даёт рабочие значения по умолчанию
	cfg := &Config{}

	assert.Equal(t, int64(12345), cfg.Engine.GetSeed())
	assert.Equal(t, 60, cfg.Engine.GetTickRate())
	assert.Equal(t, 4, cfg.Engine.GetViewDistance())
	assert.Equal(t, 4096, cfg.Engine.GetMaxChunks())
	assert.Equal(t, 4, cfg.Engine.GetMergeBudget())
	assert.Equal(t, 10, cfg.Engine.GetEvictionPeriod())
	assert.Equal(t, 2112, cfg.Server.GetMetricsPort())
	assert.Equal(t, "engine", cfg.Logging.GetComponent())
}

func TestConfigValuesOverrideDefaults(t *testing.T) {
	cfg := &Config{
		Engine: EngineConfig{Seed: 777, TickRate: 30, MaxChunks: 128},
		Server: ServerConfig{MetricsPort: 9999},
	}

	assert.Equal(t, int64(777), cfg.Engine.GetSeed())
	assert.Equal(t, 30, cfg.Engine.GetTickRate())
	assert.Equal(t, 128, cfg.Engine.GetMaxChunks())
	assert.Equal(t, 9999, cfg.Server.GetMetricsPort())
	// Незаполненные поля остаются дефолтными
	assert.Equal(t, 4, cfg.Engine.GetViewDistance())
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("ENGINE_TICK_RATE", "120")
	t.Setenv("ENGINE_SEED", "42")

	cfg := &Config{}
	assert.Equal(t, 120, cfg.Engine.GetTickRate(), "Переменная окружения должна перекрывать дефолт")
	assert.Equal(t, int64(42), cfg.Engine.GetSeed())

	// Значение из конфига приоритетнее окружения
	cfg.Engine.TickRate = 30
	assert.Equal(t, 30, cfg.Engine.GetTickRate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yml")
	data := []byte("engine:\n  seed: 999\n  tick_rate: 20\nserver:\n  metrics_port: 3000\nlogging:\n  component: test\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err, "Корректный YAML должен загружаться")
	require.NotNil(t, cfg)

	assert.Equal(t, int64(999), cfg.Engine.GetSeed())
	assert.Equal(t, 20, cfg.Engine.GetTickRate())
	assert.Equal(t, 3000, cfg.Server.GetMetricsPort())
	assert.Equal(t, "test", cfg.Logging.GetComponent())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/engine.yml")
	assert.Error(t, err, "Отсутствующий файл — ошибка")
}

func TestLoadEmptyPath(t *testing.T) {
	t.Setenv("ENGINE_CONFIG", "")
	cfg, err := Load("")
	assert.NoError(t, err, "Пустой путь без ENV — не ошибка")
	assert.Nil(t, cfg, "Конфиг не задан — использовать дефолты")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err, "Некорректный YAML — ошибка")
}
