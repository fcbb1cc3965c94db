package world

import (
	"sync"
	"time"

	"github.com/annel0/voxel-engine/internal/vec"
)

// Chunk представляет базовый участок мира размером 32³ вокселей.
// Чанк принадлежит ChunkStore и мутируется на месте: движок разрушения
// меняет материалы и плотности, менеджер LOD — уровень детализации.
type Chunk struct {
	Coords    vec.Vec3       // Координаты чанка (в единицах длины чанка)
	Density   *DensityField  // Поле плотности (N+1)³
	Materials *MaterialGrid  // Сетка материалов N³
	LOD       ChunkLOD       // Текущий уровень детализации
	Dirty     bool           // Требуется перестройка меша
	Mu        sync.RWMutex   // Мьютекс для безопасного доступа

	lastAccessed time.Time // Время последнего обращения (для LRU-выгрузки)
}

// NewChunk создаёт пустой чанк с указанными координатами
func NewChunk(coords vec.Vec3) *Chunk {
	return &Chunk{
		Coords:       coords,
		Density:      NewDensityField(ChunkSize),
		Materials:    NewMaterialGrid(ChunkSize),
		LOD:          LODUltra,
		lastAccessed: time.Now(),
	}
}

// WorldOrigin возвращает мировую позицию угла чанка (минимальный угол)
func (c *Chunk) WorldOrigin() vec.Vec3Float {
	return vec.Vec3Float{
		X: float64(c.Coords.X) * ChunkWorldSize,
		Y: float64(c.Coords.Y) * ChunkWorldSize,
		Z: float64(c.Coords.Z) * ChunkWorldSize,
	}
}

// WorldCenter возвращает мировую позицию центра чанка
func (c *Chunk) WorldCenter() vec.Vec3Float {
	half := ChunkWorldSize / 2
	origin := c.WorldOrigin()
	return vec.Vec3Float{X: origin.X + half, Y: origin.Y + half, Z: origin.Z + half}
}

// MaterialAt возвращает материал вокселя по локальным координатам.
// Координаты вне чанка считаются воздухом.
func (c *Chunk) MaterialAt(local vec.Vec3) VoxelMaterial {
	if !inChunkBounds(local) {
		return MaterialAir
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Materials.At(local.X, local.Y, local.Z)
}

// SetVoxel устанавливает материал вокселя и согласованно правит плотность:
// воздух — отрицательная плотность, твёрдое тело — положительная.
// Чанк помечается грязным для перестройки меша.
func (c *Chunk) SetVoxel(local vec.Vec3, m VoxelMaterial) {
	if !inChunkBounds(local) {
		return
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Materials.Set(local.X, local.Y, local.Z, m)
	if m.IsAir() {
		c.Density.Set(local.X, local.Y, local.Z, -1.0)
	} else {
		c.Density.Set(local.X, local.Y, local.Z, 1.0)
	}
	c.Dirty = true
}

// Touch обновляет время последнего обращения
func (c *Chunk) Touch() {
	c.Mu.Lock()
	c.lastAccessed = time.Now()
	c.Mu.Unlock()
}

// LastAccessed возвращает время последнего обращения
func (c *Chunk) LastAccessed() time.Time {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.lastAccessed
}

// MarkClean сбрасывает флаг перестройки меша
func (c *Chunk) MarkClean() {
	c.Mu.Lock()
	c.Dirty = false
	c.Mu.Unlock()
}

// IsDirty возвращает true, если чанку требуется перестройка меша
func (c *Chunk) IsDirty() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Dirty
}

// inChunkBounds проверяет, лежат ли локальные координаты внутри чанка
func inChunkBounds(local vec.Vec3) bool {
	return local.X >= 0 && local.X < ChunkSize &&
		local.Y >= 0 && local.Y < ChunkSize &&
		local.Z >= 0 && local.Z < ChunkSize
}
