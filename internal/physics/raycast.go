package physics

import (
	"math"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// RayHit — результат попадания луча в твёрдый воксель
type RayHit struct {
	ChunkCoords vec.Vec3           // Координаты чанка, в который попал луч
	LocalVoxel  vec.Vec3           // Локальные координаты вокселя внутри чанка
	GlobalVoxel vec.Vec3           // Глобальные воксельные координаты
	Material    world.VoxelMaterial // Материал вокселя
	Distance    float64            // Расстояние от начала луча до входа в воксель
}

// Raycast пускает луч из origin по направлению dir (нормализуется внутри)
// и возвращает первый твёрдый воксель на пути, не дальше maxDistance.
// Обход сетки пошаговый (Amanatides–Woo): луч посещает каждый воксель,
// через который проходит, без пропусков на диагоналях.
func Raycast(store *world.ChunkStore, origin, dir vec.Vec3Float, maxDistance float64) (RayHit, bool) {
	dir = dir.Normalized()
	if dir.Length() == 0 {
		return RayHit{}, false
	}

	voxel := origin.ToVoxel(world.VoxelSize)

	// Шаг по каждой оси и параметры t до следующей грани вокселя
	stepX, tMaxX, tDeltaX := axisInit(origin.X, dir.X, voxel.X)
	stepY, tMaxY, tDeltaY := axisInit(origin.Y, dir.Y, voxel.Y)
	stepZ, tMaxZ, tDeltaZ := axisInit(origin.Z, dir.Z, voxel.Z)

	t := 0.0
	for t <= maxDistance {
		m := store.MaterialAt(voxel)
		if m.IsSolid() {
			return RayHit{
				ChunkCoords: voxel.ToChunkCoords(world.ChunkSize),
				LocalVoxel:  voxel.LocalInChunk(world.ChunkSize),
				GlobalVoxel: voxel,
				Material:    m,
				Distance:    t,
			}, true
		}

		// Переходим в соседний воксель через ближайшую грань
		if tMaxX < tMaxY && tMaxX < tMaxZ {
			voxel.X += stepX
			t = tMaxX
			tMaxX += tDeltaX
		} else if tMaxY < tMaxZ {
			voxel.Y += stepY
			t = tMaxY
			tMaxY += tDeltaY
		} else {
			voxel.Z += stepZ
			t = tMaxZ
			tMaxZ += tDeltaZ
		}
	}

	return RayHit{}, false
}

// axisInit вычисляет шаг, t до первой грани и t на пересечение одного
// вокселя для одной оси. При нулевой компоненте направления грань по
// этой оси недостижима (t = +Inf).
func axisInit(origin, dir float64, voxel int) (step int, tMax, tDelta float64) {
	if dir == 0 {
		return 0, math.Inf(1), math.Inf(1)
	}

	tDelta = world.VoxelSize / math.Abs(dir)
	if dir > 0 {
		step = 1
		boundary := float64(voxel+1) * world.VoxelSize
		tMax = (boundary - origin) / dir
	} else {
		step = -1
		boundary := float64(voxel) * world.VoxelSize
		tMax = (boundary - origin) / dir
	}
	return step, tMax, tDelta
}
