package world

import (
	"time"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/util"
	"github.com/annel0/voxel-engine/internal/vec"
)

// TerrainGenerator генерирует ландшафт мира.
// Генерация детерминирована: одинаковый сид и координаты чанка всегда
// дают бит-в-бит одинаковые поля плотности и материалов.
type TerrainGenerator struct {
	seed  int64
	noise *util.NoiseGenerator
}

// NewTerrainGenerator создаёт генератор ландшафта с указанным сидом
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		seed:  seed,
		noise: util.NewNoiseGenerator(seed),
	}
}

// Seed возвращает сид генератора
func (tg *TerrainGenerator) Seed() int64 {
	return tg.seed
}

// HeightAt возвращает высоту поверхности в мировых координатах (x, z)
func (tg *TerrainGenerator) HeightAt(worldX, worldZ float64) float64 {
	return BaseHeight + tg.noise.Noise2D(worldX*NoiseFrequency, worldZ*NoiseFrequency)*NoiseAmplitude
}

// GenerateChunk генерирует чанк по его координатам.
// Шум вычисляется в мировых координатах, поэтому два соседних чанка
// независимо получают совпадающие значения на общей границе.
func (tg *TerrainGenerator) GenerateChunk(coords vec.Vec3) *Chunk {
	start := time.Now()
	chunk := NewChunk(coords)

	baseX := coords.X * ChunkSize
	baseY := coords.Y * ChunkSize
	baseZ := coords.Z * ChunkSize

	// Поле плотности заполняется с границей (+1 сэмпл по каждой оси)
	for x := 0; x <= ChunkSize; x++ {
		worldX := float64(baseX+x) * VoxelSize
		for z := 0; z <= ChunkSize; z++ {
			worldZ := float64(baseZ+z) * VoxelSize
			height := tg.HeightAt(worldX, worldZ)

			for y := 0; y <= ChunkSize; y++ {
				worldY := float64(baseY+y) * VoxelSize

				// Плотность положительна под поверхностью, отрицательна над ней
				density := float32(height - worldY)
				chunk.Density.Set(x, y, z, density)

				// Материал — только для вокселей внутри чанка (без границы)
				if x < ChunkSize && y < ChunkSize && z < ChunkSize {
					chunk.Materials.Set(x, y, z, MaterialFromDensity(density, worldY))
				}
			}
		}
	}

	logging.LogChunkGenerated(coords.X, coords.Y, coords.Z,
		float64(time.Since(start).Microseconds())/1000.0)

	return chunk
}
