package mesh

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// Повоксельный кубический мешер — запасной режим для представлений,
// несущих только сетку материалов (без поля плотности). Каждый твёрдый
// воксель даёт до 6 граней; грань отсекается, если сосед с той стороны
// тоже твёрдый.

type cubeFace int

const (
	faceTop cubeFace = iota
	faceBottom
	faceRight
	faceLeft
	faceFront
	faceBack
)

var faceDirections = [6]vec.Vec3{
	faceTop:    {X: 0, Y: 1, Z: 0},
	faceBottom: {X: 0, Y: -1, Z: 0},
	faceRight:  {X: 1, Y: 0, Z: 0},
	faceLeft:   {X: -1, Y: 0, Z: 0},
	faceFront:  {X: 0, Y: 0, Z: 1},
	faceBack:   {X: 0, Y: 0, Z: -1},
}

// ExtractCubes строит кубический меш чанка с учётом соседних чанков.
// Соседние воксели на границе ищутся через хранилище; если соседний чанк
// не резидентен, грань рендерится — безопасный вариант без дыр.
func ExtractCubes(store *world.ChunkStore, chunk *world.Chunk) *Mesh {
	return extractCubes(chunk, func(global vec.Vec3) bool {
		neighborChunk, ok := store.GetIfLoaded(global.ToChunkCoords(world.ChunkSize))
		if !ok {
			return true // Соседний чанк не прогружен — рендерим грань
		}
		return !neighborChunk.MaterialAt(global.LocalInChunk(world.ChunkSize)).IsSolid()
	})
}

// ExtractCubesSimple строит кубический меш без обращения к соседям:
// все грани на границе чанка рендерятся. Используется при инициализации,
// пока соседние чанки ещё не прогружены.
func ExtractCubesSimple(chunk *world.Chunk) *Mesh {
	return extractCubes(chunk, func(global vec.Vec3) bool {
		return true
	})
}

// extractCubes обходит воксели чанка; boundary решает, рендерить ли грань,
// сосед которой лежит за пределами чанка
func extractCubes(chunk *world.Chunk, boundary func(global vec.Vec3) bool) *Mesh {
	m := &Mesh{}

	chunk.Mu.RLock()
	defer chunk.Mu.RUnlock()

	base := chunk.Coords.Mul(world.ChunkSize)

	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				if !chunk.Materials.At(x, y, z).IsSolid() {
					continue
				}

				local := vec.Vec3{X: x, Y: y, Z: z}
				for face, dir := range faceDirections {
					neighbor := local.Add(dir)

					var render bool
					if inBounds(neighbor) {
						render = !chunk.Materials.At(neighbor.X, neighbor.Y, neighbor.Z).IsSolid()
					} else {
						render = boundary(base.Add(neighbor))
					}

					if render {
						addFace(m, base.Add(local), cubeFace(face))
					}
				}
			}
		}
	}

	return m
}

func inBounds(local vec.Vec3) bool {
	return local.X >= 0 && local.X < world.ChunkSize &&
		local.Y >= 0 && local.Y < world.ChunkSize &&
		local.Z >= 0 && local.Z < world.ChunkSize
}

// addFace добавляет одну грань вокселя: 4 вершины и 2 треугольника.
// Вершины перечислены против часовой стрелки при взгляде снаружи.
func addFace(m *Mesh, globalVoxel vec.Vec3, face cubeFace) {
	s := float32(world.VoxelSize)
	bx := float32(globalVoxel.X) * s
	by := float32(globalVoxel.Y) * s
	bz := float32(globalVoxel.Z) * s

	idx := uint32(len(m.Positions))

	var verts [4][3]float32
	var normal [3]float32

	switch face {
	case faceTop:
		verts = [4][3]float32{
			{bx, by + s, bz},
			{bx + s, by + s, bz},
			{bx + s, by + s, bz + s},
			{bx, by + s, bz + s},
		}
		normal = [3]float32{0, 1, 0}
	case faceBottom:
		verts = [4][3]float32{
			{bx, by, bz + s},
			{bx + s, by, bz + s},
			{bx + s, by, bz},
			{bx, by, bz},
		}
		normal = [3]float32{0, -1, 0}
	case faceRight:
		verts = [4][3]float32{
			{bx + s, by, bz},
			{bx + s, by + s, bz},
			{bx + s, by + s, bz + s},
			{bx + s, by, bz + s},
		}
		normal = [3]float32{1, 0, 0}
	case faceLeft:
		verts = [4][3]float32{
			{bx, by, bz + s},
			{bx, by + s, bz + s},
			{bx, by + s, bz},
			{bx, by, bz},
		}
		normal = [3]float32{-1, 0, 0}
	case faceFront:
		verts = [4][3]float32{
			{bx + s, by, bz + s},
			{bx + s, by + s, bz + s},
			{bx, by + s, bz + s},
			{bx, by, bz + s},
		}
		normal = [3]float32{0, 0, 1}
	case faceBack:
		verts = [4][3]float32{
			{bx, by, bz},
			{bx, by + s, bz},
			{bx + s, by + s, bz},
			{bx + s, by, bz},
		}
		normal = [3]float32{0, 0, -1}
	}

	m.Positions = append(m.Positions, verts[:]...)
	m.Normals = append(m.Normals, normal, normal, normal, normal)
	m.Indices = append(m.Indices, idx, idx+1, idx+2, idx, idx+2, idx+3)
}
