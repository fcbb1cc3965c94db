package world

import (
	"sort"
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
)

// MergedChunk — объединённый рендер-юнит: кубический блок базовых чанков
// factor³ с общим грубым полем плотности. Грубое поле имеет то же число
// сэмплов, что и у базового чанка (N+1), но каждый сэмпл берётся из базового
// поля с шагом factor, поэтому грубая изоповерхность интерполирует те же
// нулевые пересечения в тех же мировых координатах.
type MergedChunk struct {
	Origin vec.Vec3      // Координаты углового базового чанка (кратны factor)
	Factor int           // Чанков по одной оси (2, 4, 8, 16)
	LOD    ChunkLOD      // Целевой уровень детализации
	Chunks []vec.Vec3    // Координаты включённых базовых чанков
	Coarse *DensityField // Грубое поле плотности (N+1)³
}

// EffectiveSize возвращает эффективный размер объединённого чанка в вокселях
func (mc *MergedChunk) EffectiveSize() int {
	return ChunkSize * mc.Factor
}

// WorldOrigin возвращает мировую позицию угла объединённого региона
func (mc *MergedChunk) WorldOrigin() vec.Vec3Float {
	return vec.Vec3Float{
		X: float64(mc.Origin.X) * ChunkWorldSize,
		Y: float64(mc.Origin.Y) * ChunkWorldSize,
		Z: float64(mc.Origin.Z) * ChunkWorldSize,
	}
}

// CellWorldSize возвращает мировой размер ячейки грубого поля
func (mc *MergedChunk) CellWorldSize() float64 {
	return VoxelSize * float64(mc.Factor)
}

// BuildMergedChunk строит объединённый чанк, сэмплируя базовые поля плотности
// с шагом factor. Нерезидентные базовые чанки генерируются по требованию —
// построение детерминировано независимо от того, что уже прогружено.
func BuildMergedChunk(store *ChunkStore, origin vec.Vec3, factor int, lod ChunkLOD) *MergedChunk {
	mc := &MergedChunk{
		Origin: origin,
		Factor: factor,
		LOD:    lod,
		Coarse: NewDensityField(ChunkSize),
	}

	for dx := 0; dx < factor; dx++ {
		for dy := 0; dy < factor; dy++ {
			for dz := 0; dz < factor; dz++ {
				mc.Chunks = append(mc.Chunks, vec.Vec3{
					X: origin.X + dx,
					Y: origin.Y + dy,
					Z: origin.Z + dz,
				})
			}
		}
	}

	// Глобальный индекс сэмпла i грубого поля: origin*N + i*factor.
	// Значение читается из поля чанка-владельца; сэмплирование (не усреднение)
	// сохраняет непрерывность на границах соседних регионов.
	baseX := origin.X * ChunkSize
	baseY := origin.Y * ChunkSize
	baseZ := origin.Z * ChunkSize

	for x := 0; x <= ChunkSize; x++ {
		for y := 0; y <= ChunkSize; y++ {
			for z := 0; z <= ChunkSize; z++ {
				sample := vec.Vec3{
					X: baseX + x*factor,
					Y: baseY + y*factor,
					Z: baseZ + z*factor,
				}
				mc.Coarse.Set(x, y, z, sampleDensity(store, sample))
			}
		}
	}

	return mc
}

// sampleDensity читает плотность в глобальном воксельном сэмпле через
// чанк-владелец, генерируя его при необходимости
func sampleDensity(store *ChunkStore, sample vec.Vec3) float32 {
	chunkCoords := sample.ToChunkCoords(ChunkSize)
	local := sample.LocalInChunk(ChunkSize)

	chunk := store.GetOrCreate(chunkCoords)
	chunk.Mu.RLock()
	defer chunk.Mu.RUnlock()
	return chunk.Density.At(local.X, local.Y, local.Z)
}

// MergeTask — задача на объединение региона базовых чанков
type MergeTask struct {
	Origin   vec.Vec3 // Угол региона (координаты кратны Factor)
	Factor   int
	Priority float64 // Расстояние до игрока; ближние регионы обрабатываются первыми
}

// SplitTask — задача на разбиение объединённого региона обратно на базовые чанки
type SplitTask struct {
	Origin   vec.Vec3
	Factor   int
	Priority float64
}

// MergeScheduler хранит очереди задач merge/split.
// Очереди дедуплицируются по углу региона и обрабатываются конвейером
// с ограниченным бюджетом за тик.
type MergeScheduler struct {
	mu      sync.Mutex
	merges  map[vec.Vec3]MergeTask
	splits  map[vec.Vec3]SplitTask
}

// NewMergeScheduler создаёт пустой планировщик
func NewMergeScheduler() *MergeScheduler {
	return &MergeScheduler{
		merges: make(map[vec.Vec3]MergeTask),
		splits: make(map[vec.Vec3]SplitTask),
	}
}

// EnqueueMerge ставит задачу объединения (повторная постановка обновляет приоритет)
func (ms *MergeScheduler) EnqueueMerge(task MergeTask) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	// Регион, который снова объединяют, разбивать больше не нужно
	delete(ms.splits, task.Origin)
	ms.merges[task.Origin] = task
}

// EnqueueSplit ставит задачу разбиения
func (ms *MergeScheduler) EnqueueSplit(task SplitTask) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.merges, task.Origin)
	ms.splits[task.Origin] = task
}

// DequeueMerges забирает до budget задач объединения в порядке приоритета
func (ms *MergeScheduler) DequeueMerges(budget int) []MergeTask {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	tasks := make([]MergeTask, 0, len(ms.merges))
	for _, t := range ms.merges {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Priority < tasks[j].Priority })

	if budget > 0 && len(tasks) > budget {
		tasks = tasks[:budget]
	}
	for _, t := range tasks {
		delete(ms.merges, t.Origin)
	}
	return tasks
}

// DequeueSplits забирает до budget задач разбиения в порядке приоритета
func (ms *MergeScheduler) DequeueSplits(budget int) []SplitTask {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	tasks := make([]SplitTask, 0, len(ms.splits))
	for _, t := range ms.splits {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Priority < tasks[j].Priority })

	if budget > 0 && len(tasks) > budget {
		tasks = tasks[:budget]
	}
	for _, t := range tasks {
		delete(ms.splits, t.Origin)
	}
	return tasks
}

// Pending возвращает суммарное число задач в очередях
func (ms *MergeScheduler) Pending() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.merges) + len(ms.splits)
}
