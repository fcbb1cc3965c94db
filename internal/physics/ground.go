package physics

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

const (
	// groundSearchStep — шаг поиска поверхности по вертикали (в метрах)
	groundSearchStep = 0.05
	// groundSearchDepth — максимальная глубина поиска вниз от стартовой точки
	groundSearchDepth = 10.0
	// defaultGroundHeight — запасная высота, если поверхность не найдена
	defaultGroundHeight = 0.0
)

// GroundHeightAt ищет высоту поверхности под точкой (wx, wz), начиная
// с высоты startY и двигаясь вниз малыми шагами. Возвращает верхнюю
// грань первого твёрдого вокселя; если твёрдых вокселей в пределах
// глубины поиска нет — запасную высоту.
func GroundHeightAt(store *world.ChunkStore, wx, startY, wz float64) float64 {
	steps := int(groundSearchDepth / groundSearchStep)
	probe := vec.Vec3Float{X: wx, Y: startY, Z: wz}

	for i := 0; i < steps; i++ {
		voxel := probe.ToVoxel(world.VoxelSize)
		if store.IsSolidAt(voxel) {
			// Верхняя грань найденного вокселя
			return float64(voxel.Y+1) * world.VoxelSize
		}
		probe.Y -= groundSearchStep
	}

	return defaultGroundHeight
}
