package world

// Глобальные константы движка ландшафта.
// Значения фиксированы на этапе компиляции и не настраиваются в рантайме.

const (
	// ChunkSize — размер базового чанка в вокселях по одной оси (32³ вокселей)
	ChunkSize = 32

	// VoxelSize — размер вокселя в мировых единицах (метрах)
	VoxelSize = 0.1

	// ChunkWorldSize — размер чанка в мировых единицах (3.2 м)
	ChunkWorldSize = ChunkSize * VoxelSize
)

// Параметры генерации ландшафта
const (
	// BaseHeight — базовая высота поверхности в мировых единицах
	BaseHeight = 1.5

	// NoiseFrequency — частота основного шума (шире — более пологие холмы)
	NoiseFrequency = 0.2

	// NoiseAmplitude — амплитуда шума (выше — более крутые холмы)
	NoiseAmplitude = 0.5
)

// Границы высот для выбора материала (в мировых единицах).
// Глубина → камень, середина → земля, тонкая полоса у поверхности → трава.
const (
	StoneDepthMax   = 0.5
	DirtDepthMax    = 1.5
	GrassSurfaceMax = 1.6
)

// LODDistances — пороги расстояний для уровней детализации (в мировых единицах)
var LODDistances = [5]float64{50.0, 100.0, 200.0, 400.0, 800.0}

// Физика
const (
	// Gravity — ускорение свободного падения (мировых единиц/с²)
	Gravity = -9.81
)
