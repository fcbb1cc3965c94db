package destruct

import (
	"math/rand"

	"github.com/annel0/voxel-engine/internal/drops"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/tool"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

const (
	// BaseBreakTime — базовое время разрушения (секунды на единицу прочности)
	BaseBreakTime = 1.0
	// UnbreakableSentinel — время «практически неразрушимо» при вырожденном
	// знаменателе (нулевая эффективность или скорость)
	UnbreakableSentinel = 999.0
	// MaxReachDistance — дальность луча прицеливания
	MaxReachDistance = 8.0
	// dropUpwardSpeed — начальная вертикальная скорость дропа
	dropUpwardSpeed = 2.0
)

// CalculateBreakTime возвращает время разрушения материала инструментом
// в секундах. Вырожденный знаменатель не даёт бесконечности: возвращается
// большой часовой (sentinel) — материал практически неразрушим.
func CalculateBreakTime(m world.VoxelMaterial, t tool.ToolType) float64 {
	eff := tool.Effectiveness(t, m)
	speed := t.Props().Speed
	if eff == 0 || speed == 0 {
		return UnbreakableSentinel
	}
	return BaseBreakTime * float64(m.Properties().Hardness) / (eff * speed)
}

// Input — сигнал намерения разрушения за текущий тик
type Input struct {
	Active       bool          // Нажата ли кнопка разрушения
	RayOrigin    vec.Vec3Float // Начало луча прицеливания (камера)
	RayDirection vec.Vec3Float // Направление луча
}

// BreakProgress — прогресс разрушения одного целевого вокселя.
// На движок — не более одного активного прогресса.
type BreakProgress struct {
	ChunkCoords vec.Vec3
	LocalVoxel  vec.Vec3
	GlobalVoxel vec.Vec3
	Material    world.VoxelMaterial
	Progress    float64 // 0..1, при >= 1 разрушение завершается
	BreakTime   float64 // Полное время разрушения в секундах
}

// Engine — машина состояний разрушения: прицеливание, накопление
// прогресса, применение шаблона разрушения и спавн дропов
type Engine struct {
	store  *world.ChunkStore
	meshes *mesh.Registry
	drops  *drops.Manager
	events *world.EventSink
	rng    *rand.Rand

	current  *BreakProgress
	resolved uint64
}

// NewEngine создаёт движок разрушения
func NewEngine(store *world.ChunkStore, meshes *mesh.Registry, dropMgr *drops.Manager, rng *rand.Rand) *Engine {
	return &Engine{
		store:  store,
		meshes: meshes,
		drops:  dropMgr,
		rng:    rng,
	}
}

// SetEventSink подключает шину событий мира
func (e *Engine) SetEventSink(events *world.EventSink) {
	e.events = events
}

// Progress возвращает текущий прогресс разрушения (0..1) и наличие цели
func (e *Engine) Progress() (float64, bool) {
	if e.current == nil {
		return 0, false
	}
	return e.current.Progress, true
}

// ResolvedCount возвращает число завершённых разрушений
func (e *Engine) ResolvedCount() uint64 {
	return e.resolved
}

// Target обновляет цель разрушения по лучу прицеливания.
// Отпускание кнопки, промах или смена цели отбрасывает прежний прогресс.
func (e *Engine) Target(input Input, equipped *tool.Tool) {
	if !input.Active {
		e.current = nil
		return
	}

	hit, ok := physics.Raycast(e.store, input.RayOrigin, input.RayDirection, MaxReachDistance)
	if !ok {
		e.current = nil
		return
	}

	if e.current == nil || !e.current.GlobalVoxel.Equals(hit.GlobalVoxel) {
		// Новая цель — прежний прогресс отбрасывается
		e.current = &BreakProgress{
			ChunkCoords: hit.ChunkCoords,
			LocalVoxel:  hit.LocalVoxel,
			GlobalVoxel: hit.GlobalVoxel,
			Material:    hit.Material,
			BreakTime:   CalculateBreakTime(hit.Material, equipped.Effective()),
		}
	}
}

// Advance накапливает прогресс текущей цели на dt секунд и завершает
// разрушение при достижении единицы
func (e *Engine) Advance(equipped *tool.Tool, dt float64) {
	if e.current == nil {
		return
	}

	e.current.Progress += dt / e.current.BreakTime

	if e.current.Progress >= 1.0 {
		e.resolve(e.current, equipped, equipped.Effective())
		e.current = nil
	}
}

// Update — прицеливание и накопление прогресса за один вызов
func (e *Engine) Update(input Input, equipped *tool.Tool, dt float64) {
	e.Target(input, equipped)
	e.Advance(equipped, dt)
}

// resolve применяет шаблон разрушения инструмента, спавнит дропы,
// списывает прочность и перестраивает меш затронутого чанка.
// Сначала полностью завершаются все мутации чанка, и только затем
// берётся читающий доступ для переизвлечения меша.
func (e *Engine) resolve(target *BreakProgress, equipped *tool.Tool, effType tool.ToolType) {
	chunk, ok := e.store.GetIfLoaded(target.ChunkCoords)
	if !ok {
		return
	}

	type broken struct {
		local    vec.Vec3
		material world.VoxelMaterial
		quantity int
	}
	var results []broken

	for _, offset := range tool.DestructionPattern(effType) {
		local := target.LocalVoxel.Add(offset)
		if !inChunk(local) {
			// Шаблон действует только внутри чанка цели
			continue
		}
		m := chunk.MaterialAt(local)
		if !m.IsSolid() {
			continue
		}

		chunk.SetVoxel(local, world.MaterialAir)
		results = append(results, broken{
			local:    local,
			material: m,
			quantity: tool.DropQuantity(effType, m, e.rng),
		})
	}

	if len(results) == 0 {
		return
	}

	for _, r := range results {
		global := target.ChunkCoords.Mul(world.ChunkSize).Add(r.local)
		logging.LogVoxelBroken(r.material.String(), global.X, global.Y, global.Z, uint32(r.quantity))

		if e.events != nil {
			e.events.Publish(world.VoxelEvent{
				EventType: world.EventTypeVoxelBroken,
				Chunk:     target.ChunkCoords,
				Local:     r.local,
				Material:  r.material,
			})
		}

		if r.quantity > 0 {
			center := voxelCenter(global)
			e.drops.Spawn(r.material.DropMaterial(), r.quantity, center, vec.Vec3Float{Y: dropUpwardSpeed})
		}
	}

	equipped.Use()
	e.resolved++

	// Мутации завершены — переизвлекаем меш по свежему читающему снимку
	refreshed := mesh.ExtractChunkSurface(chunk)
	e.meshes.Swap(target.ChunkCoords, refreshed)
	chunk.MarkClean()
	logging.LogMeshExtracted(target.ChunkCoords.X, target.ChunkCoords.Y, target.ChunkCoords.Z,
		refreshed.VertexCount(), len(refreshed.Indices))
}

// inChunk проверяет, что локальные координаты лежат внутри чанка
func inChunk(local vec.Vec3) bool {
	return local.X >= 0 && local.X < world.ChunkSize &&
		local.Y >= 0 && local.Y < world.ChunkSize &&
		local.Z >= 0 && local.Z < world.ChunkSize
}

// voxelCenter возвращает мировую позицию центра вокселя
func voxelCenter(global vec.Vec3) vec.Vec3Float {
	half := world.VoxelSize / 2
	return vec.Vec3Float{
		X: float64(global.X)*world.VoxelSize + half,
		Y: float64(global.Y)*world.VoxelSize + half,
		Z: float64(global.Z)*world.VoxelSize + half,
	}
}
