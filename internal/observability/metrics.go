package observability

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/sim"
	"github.com/annel0/voxel-engine/internal/world"
)

// MetricsExporter экспортирует метрики движка в Prometheus:
// счётчики событий мира, гейджи состояния и длительность тика
type MetricsExporter struct {
	engine   *sim.Engine
	server   *http.Server
	registry *prometheus.Registry

	chunksGenerated prometheus.Counter
	lodChanges      prometheus.Counter
	voxelsBroken    prometheus.Counter
	dropsSpawned    prometheus.Counter
	dropsCollected  prometheus.Counter

	residentChunks prometheus.Gauge
	activeDrops    prometheus.Gauge
	chunkMeshes    prometheus.Gauge
	mergedMeshes   prometheus.Gauge
	pendingMerges  prometheus.Gauge
	breaksResolved prometheus.Gauge
	memoryRSS      prometheus.Gauge

	tickDuration prometheus.Histogram
}

// NewMetricsExporter создаёт экспортер метрик для движка
func NewMetricsExporter(engine *sim.Engine) *MetricsExporter {
	registry := prometheus.NewRegistry()

	me := &MetricsExporter{
		engine:   engine,
		registry: registry,

		chunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_chunks_generated_total",
			Help: "Всего сгенерировано чанков",
		}),
		lodChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_lod_changes_total",
			Help: "Всего смен уровня детализации чанков",
		}),
		voxelsBroken: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_voxels_broken_total",
			Help: "Всего разрушено вокселей",
		}),
		dropsSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_drops_spawned_total",
			Help: "Всего заспавнено дропов",
		}),
		dropsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voxel_drops_collected_total",
			Help: "Всего подобрано дропов",
		}),
		residentChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_resident_chunks",
			Help: "Число резидентных чанков в хранилище",
		}),
		activeDrops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_active_drops",
			Help: "Число активных дропов в мире",
		}),
		chunkMeshes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_chunk_meshes",
			Help: "Число базовых мешей в реестре",
		}),
		mergedMeshes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_merged_meshes",
			Help: "Число объединённых мешей в реестре",
		}),
		pendingMerges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_pending_merge_tasks",
			Help: "Задач merge/split в очередях планировщика",
		}),
		breaksResolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_breaks_resolved",
			Help: "Всего завершённых разрушений",
		}),
		memoryRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voxel_process_memory_rss_bytes",
			Help: "Резидентная память процесса движка",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "voxel_tick_duration_seconds",
			Help:    "Длительность тика симуляции",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}

	registry.MustRegister(
		me.chunksGenerated, me.lodChanges, me.voxelsBroken,
		me.dropsSpawned, me.dropsCollected,
		me.residentChunks, me.activeDrops, me.chunkMeshes, me.mergedMeshes,
		me.pendingMerges, me.breaksResolved, me.memoryRSS,
		me.tickDuration,
	)

	return me
}

// Start запускает HTTP-эндпоинт /metrics и фоновые сборщики.
// Останавливается отменой контекста.
func (me *MetricsExporter) Start(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(me.registry, promhttp.HandlerOpts{}))

	me.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		logging.Info("Метрики Prometheus доступны на :%d/metrics", port)
		if err := me.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Сервер метрик: %v", err)
		}
	}()

	go me.consumeEvents(ctx)
	go me.pollState(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = me.server.Shutdown(shutdownCtx)
	}()

	return nil
}

// ObserveTick регистрирует длительность одного тика
func (me *MetricsExporter) ObserveTick(d time.Duration) {
	me.tickDuration.Observe(d.Seconds())
}

// consumeEvents транслирует события мира в счётчики
func (me *MetricsExporter) consumeEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-me.engine.Events.Events():
			if !ok {
				return
			}
			switch event.GetType() {
			case world.EventTypeChunkGenerated:
				me.chunksGenerated.Inc()
			case world.EventTypeLODChanged:
				me.lodChanges.Inc()
			case world.EventTypeVoxelBroken:
				me.voxelsBroken.Inc()
			case world.EventTypeDropSpawned:
				me.dropsSpawned.Inc()
			case world.EventTypeDropCollected:
				me.dropsCollected.Inc()
			}
		}
	}
}

// pollState периодически снимает гейджи состояния движка и памяти процесса
func (me *MetricsExporter) pollState(ctx context.Context) {
	proc, procErr := process.NewProcess(int32(os.Getpid()))

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			me.residentChunks.Set(float64(me.engine.Store.Count()))
			me.activeDrops.Set(float64(me.engine.Drops.Count()))
			me.pendingMerges.Set(float64(me.engine.Scheduler.Pending()))
			me.breaksResolved.Set(float64(me.engine.Destruct.ResolvedCount()))

			chunks, merged := me.engine.Meshes.Count()
			me.chunkMeshes.Set(float64(chunks))
			me.mergedMeshes.Set(float64(merged))

			if procErr == nil {
				if mem, err := proc.MemoryInfo(); err == nil {
					me.memoryRSS.Set(float64(mem.RSS))
				}
			}
		}
	}
}
