package sim

import (
	"math/rand"
	"sync"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/destruct"
	"github.com/annel0/voxel-engine/internal/drops"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/tool"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// Теги ресурсов для декларации доступа проходов конвейера
const (
	resChunks = "chunks"
	resMeshes = "meshes"
	resBreak  = "break"
	resDrops  = "drops"
	resPlayer = "player"
)

// Engine — корневой объект движка: хранилище чанков, LOD, меши,
// разрушение и дропы, связанные фиксированным конвейером тика
type Engine struct {
	Store     *world.ChunkStore
	LOD       *world.LODManager
	Scheduler *world.MergeScheduler
	Meshes    *mesh.Registry
	Destruct  *destruct.Engine
	Drops     *drops.Manager
	Events    *world.EventSink
	Pipeline  *Pipeline

	mergeBudget    int
	viewDistance   int
	evictionTicks  int // Тиков между LRU-свипами хранилища
	ticksSinceEvic int

	mu        sync.Mutex
	playerPos vec.Vec3Float
	input     destruct.Input
	equipped  *tool.Tool

	tickCount uint64
}

// NewEngine собирает движок по конфигурации
func NewEngine(cfg *config.EngineConfig) *Engine {
	generator := world.NewTerrainGenerator(cfg.GetSeed())
	store := world.NewChunkStore(generator, cfg.GetMaxChunks())
	scheduler := world.NewMergeScheduler()
	events := world.NewEventSink(0)

	store.SetEventSink(events)
	lod := world.NewLODManager(store, scheduler)
	lod.SetEventSink(events)

	meshes := mesh.NewRegistry()
	dropMgr := drops.NewManager()
	dropMgr.SetEventSink(events)

	rng := rand.New(rand.NewSource(cfg.GetSeed()))
	destructEngine := destruct.NewEngine(store, meshes, dropMgr, rng)
	destructEngine.SetEventSink(events)

	tickRate := cfg.GetTickRate()
	evictionTicks := cfg.GetEvictionPeriod() * tickRate
	if evictionTicks <= 0 {
		evictionTicks = tickRate
	}

	e := &Engine{
		Store:         store,
		LOD:           lod,
		Scheduler:     scheduler,
		Meshes:        meshes,
		Destruct:      destructEngine,
		Drops:         dropMgr,
		Events:        events,
		Pipeline:      NewPipeline(),
		mergeBudget:   cfg.GetMergeBudget(),
		viewDistance:  cfg.GetViewDistance(),
		evictionTicks: evictionTicks,
		equipped:      tool.NewTool(tool.ToolHands),
	}
	e.registerPasses()
	return e
}

// registerPasses собирает фиксированный конвейер тика. Порядок
// критичен: цель определяется до накопления прогресса, разрушение —
// до симуляции дропов, подбор — до устаревания.
func (e *Engine) registerPasses() {
	e.Pipeline.Register(Pass{
		Name:   "lod.update",
		Reads:  []string{resPlayer},
		Writes: []string{resChunks},
		Fn: func(dt float64) {
			e.LOD.Update(e.PlayerPosition())
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "break.target",
		Reads:  []string{resChunks, resPlayer},
		Writes: []string{resBreak},
		Fn: func(dt float64) {
			input, equipped := e.snapshot()
			e.Destruct.Target(input, equipped)
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "break.advance",
		Reads:  []string{resPlayer},
		Writes: []string{resBreak, resChunks, resMeshes, resDrops},
		Fn: func(dt float64) {
			_, equipped := e.snapshot()
			e.Destruct.Advance(equipped, dt)
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "mesh.refresh",
		Reads:  []string{resChunks},
		Writes: []string{resMeshes},
		Fn: func(dt float64) {
			e.refreshDirtyMeshes()
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "merge.apply",
		Reads:  []string{resChunks},
		Writes: []string{resMeshes},
		Fn: func(dt float64) {
			e.applyMerges()
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "drops.simulate",
		Reads:  []string{resChunks},
		Writes: []string{resDrops},
		Fn: func(dt float64) {
			e.Drops.Simulate(e.Store, dt)
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "drops.collect",
		Reads:  []string{resPlayer},
		Writes: []string{resDrops},
		Fn: func(dt float64) {
			e.Drops.Collect(e.PlayerPosition())
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "drops.age",
		Writes: []string{resDrops},
		Fn: func(dt float64) {
			e.Drops.AgeOut()
		},
	})
	e.Pipeline.Register(Pass{
		Name:   "store.evict",
		Writes: []string{resChunks},
		Fn: func(dt float64) {
			e.maybeEvict()
		},
	})
}

// SetPlayerState задаёт позицию игрока, сигнал разрушения и инструмент
// на предстоящий тик
func (e *Engine) SetPlayerState(pos vec.Vec3Float, input destruct.Input, equipped *tool.Tool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playerPos = pos
	e.input = input
	if equipped != nil {
		e.equipped = equipped
	}
}

// PlayerPosition возвращает позицию игрока на текущий тик
func (e *Engine) PlayerPosition() vec.Vec3Float {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playerPos
}

func (e *Engine) snapshot() (destruct.Input, *tool.Tool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input, e.equipped
}

// TickCount возвращает число выполненных тиков
func (e *Engine) TickCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickCount
}

// Tick продвигает симуляцию на dt секунд
func (e *Engine) Tick(dt float64) {
	e.Pipeline.Tick(dt)
	e.mu.Lock()
	e.tickCount++
	e.mu.Unlock()
}

// EnsureChunksAround прогружает чанки в радиусе видимости вокруг позиции.
// Новые чанки получают стартовый меш.
func (e *Engine) EnsureChunksAround(pos vec.Vec3Float) int {
	center := pos.ToVoxel(world.ChunkWorldSize)
	loaded := 0

	r := e.viewDistance
	for dx := -r; dx <= r; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -r; dz <= r; dz++ {
				coords := center.Add(vec.Vec3{X: dx, Y: dy, Z: dz})
				if _, ok := e.Store.GetIfLoaded(coords); ok {
					continue
				}
				chunk := e.Store.GetOrCreate(coords)
				e.Meshes.Swap(coords, mesh.ExtractChunkSurface(chunk))
				chunk.MarkClean()
				loaded++
			}
		}
	}
	return loaded
}

// refreshDirtyMeshes переизвлекает меши чанков, помеченных грязными
// (смена LOD, внешние мутации)
func (e *Engine) refreshDirtyMeshes() {
	for _, chunk := range e.Store.DirtyChunks() {
		m := mesh.ExtractChunkSurface(chunk)
		e.Meshes.Swap(chunk.Coords, m)
		chunk.MarkClean()
		logging.LogMeshExtracted(chunk.Coords.X, chunk.Coords.Y, chunk.Coords.Z,
			m.VertexCount(), len(m.Indices))
	}
}

// applyMerges обрабатывает очереди merge/split в пределах бюджета тика
func (e *Engine) applyMerges() {
	for _, task := range e.Scheduler.DequeueMerges(e.mergeBudget) {
		mc := world.BuildMergedChunk(e.Store, task.Origin, task.Factor, world.LODFromMergeFactor(task.Factor))
		e.Meshes.SwapMerged(task.Origin, task.Factor, mc.Chunks, mesh.ExtractMergedSurface(mc))
	}

	for _, task := range e.Scheduler.DequeueSplits(e.mergeBudget) {
		e.Meshes.DropMerged(task.Origin)
		// Покрытые базовые чанки возвращаются к собственным мешам
		for dx := 0; dx < task.Factor; dx++ {
			for dy := 0; dy < task.Factor; dy++ {
				for dz := 0; dz < task.Factor; dz++ {
					coords := task.Origin.Add(vec.Vec3{X: dx, Y: dy, Z: dz})
					if chunk, ok := e.Store.GetIfLoaded(coords); ok {
						e.Meshes.Swap(coords, mesh.ExtractChunkSurface(chunk))
					}
				}
			}
		}
	}
}

// maybeEvict запускает LRU-свип хранилища раз в evictionTicks тиков
func (e *Engine) maybeEvict() {
	e.ticksSinceEvic++
	if e.ticksSinceEvic < e.evictionTicks {
		return
	}
	e.ticksSinceEvic = 0
	e.Store.Evict()
}
