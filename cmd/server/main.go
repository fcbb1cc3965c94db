package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/destruct"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/sim"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации движка")
	flag.Parse()

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger(cfg.Logging.GetComponent()); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("⛏️ Запуск движка разрушаемого ландшафта...")
	logging.Info("📡 Конфигурация: seed=%d, tick_rate=%d, view_distance=%d, max_chunks=%d",
		cfg.Engine.GetSeed(), cfg.Engine.GetTickRate(),
		cfg.Engine.GetViewDistance(), cfg.Engine.GetMaxChunks())

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===
	logging.Debug("Сборка движка симуляции...")
	engine := sim.NewEngine(&cfg.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Экспортер метрик Prometheus
	metrics := observability.NewMetricsExporter(engine)
	if err := metrics.Start(ctx, cfg.Server.GetMetricsPort()); err != nil {
		logging.Error("❌ Ошибка запуска экспортера метрик: %v", err)
		log.Fatalf("❌ Ошибка запуска экспортера метрик: %v", err)
	}

	// Стартовая прогрузка чанков вокруг точки появления
	spawn := vec.Vec3Float{X: 0, Y: world.BaseHeight, Z: 0}
	logging.Info("🌍 Прогрузка стартового региона вокруг (%.1f, %.1f, %.1f)...",
		spawn.X, spawn.Y, spawn.Z)
	loaded := engine.EnsureChunksAround(spawn)
	logging.Info("✅ Прогружено %d чанков, движок готов", loaded)

	engine.SetPlayerState(spawn, destruct.Input{}, nil)

	// === ЦИКЛ ТИКОВ ===
	tickRate := cfg.Engine.GetTickRate()
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	dt := 1.0 / float64(tickRate)
	last := time.Now()

	logging.Info("🚀 Цикл симуляции запущен: %d тиков/с", tickRate)

	for {
		select {
		case <-sigCh:
			logging.Info("🛑 Получен сигнал завершения, останавливаем движок...")
			cancel()
			logging.Info("✅ Движок остановлен: тиков=%d, чанков=%d, дропов=%d",
				engine.TickCount(), engine.Store.Count(), engine.Drops.Count())
			return
		case now := <-ticker.C:
			// Реальный dt ограничиваем сверху, чтобы скачок часов
			// не завершал разрушение одним тиком
			elapsed := now.Sub(last).Seconds()
			last = now
			if elapsed > 4*dt {
				elapsed = 4 * dt
			}

			engine.Tick(elapsed)
			metrics.ObserveTick(engine.Pipeline.LastTickDuration())
		}
	}
}
