package mesh

import (
	"math"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// Извлечение изоповерхности методом Surface Nets.
//
// Для каждой ячейки, пересекающей поверхность (нулевой уровень плотности),
// вычисляется один вершинный узел — среднее точек пересечения нуля на рёбрах
// ячейки. Соседние активные ячейки соединяются квадами вдоль трёх главных
// осей. Это даёт гладкую сетку, в отличие от кубов marching cubes.

// cornerOffsets — смещения 8 углов ячейки; бит 0 — x, бит 1 — y, бит 2 — z
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// cellEdges — 12 рёбер ячейки как пары индексов углов
var cellEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // Рёбра вдоль X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // Рёбра вдоль Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Рёбра вдоль Z
}

// ExtractSurfaceNets строит меш изоповерхности поля плотности.
// origin — мировая позиция сэмпла (0,0,0); cellSize — мировой размер ячейки.
// Поле с одинаковым знаком во всех сэмплах даёт пустой меш — это не ошибка.
func ExtractSurfaceNets(field *world.DensityField, origin vec.Vec3Float, cellSize float64) *Mesh {
	m := &Mesh{}
	edge := field.Edge()

	// Индекс вершины для каждой активной ячейки; -1 — ячейка без вершины
	cellVertex := make([]int32, edge*edge*edge)
	for i := range cellVertex {
		cellVertex[i] = -1
	}
	cellIndex := func(x, y, z int) int {
		return (x*edge+y)*edge + z
	}

	var corners [8]float32

	// Шаг 1: вершина в каждой ячейке, пересекающей поверхность
	for x := 0; x < edge; x++ {
		for y := 0; y < edge; y++ {
			for z := 0; z < edge; z++ {
				mask := 0
				for i, off := range cornerOffsets {
					corners[i] = field.At(x+off[0], y+off[1], z+off[2])
					if corners[i] > 0 {
						mask |= 1 << i
					}
				}

				// Все углы одного знака — ячейка не пересекает поверхность
				if mask == 0 || mask == 0xFF {
					continue
				}

				// Среднее точек нулевого пересечения на рёбрах
				var sx, sy, sz float64
				crossings := 0
				for _, e := range cellEdges {
					d0 := corners[e[0]]
					d1 := corners[e[1]]
					if (d0 > 0) == (d1 > 0) {
						continue
					}

					t := float64(d0) / float64(d0-d1)
					c0 := cornerOffsets[e[0]]
					c1 := cornerOffsets[e[1]]
					sx += float64(c0[0]) + t*float64(c1[0]-c0[0])
					sy += float64(c0[1]) + t*float64(c1[1]-c0[1])
					sz += float64(c0[2]) + t*float64(c1[2]-c0[2])
					crossings++
				}

				inv := 1.0 / float64(crossings)
				px := origin.X + (float64(x)+sx*inv)*cellSize
				py := origin.Y + (float64(y)+sy*inv)*cellSize
				pz := origin.Z + (float64(z)+sz*inv)*cellSize

				cellVertex[cellIndex(x, y, z)] = int32(len(m.Positions))
				m.Positions = append(m.Positions, [3]float32{float32(px), float32(py), float32(pz)})
				m.Normals = append(m.Normals, cellNormal(corners))
			}
		}
	}

	// Шаг 2: квады между активными ячейками вдоль каждой оси.
	// Ребро сэмпл-сетки со сменой знака окружено четырьмя ячейками —
	// их вершины образуют квад. Порядок обхода выбирается по знаку
	// ближнего угла, чтобы треугольники смотрели из тела в пустоту.
	axes := [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for a, ea := range axes {
		b := (a + 1) % 3
		c := (a + 2) % 3

		var p [3]int
		for p[a] = 0; p[a] < edge; p[a]++ {
			for p[b] = 1; p[b] < edge; p[b]++ {
				for p[c] = 1; p[c] < edge; p[c]++ {
					d0 := field.At(p[0], p[1], p[2])
					d1 := field.At(p[0]+ea[0], p[1]+ea[1], p[2]+ea[2])
					if (d0 > 0) == (d1 > 0) {
						continue
					}

					// Четыре ячейки вокруг ребра, в порядке обхода против
					// часовой стрелки при взгляде со стороны +a
					var q [4][3]int
					for i := range q {
						q[i] = p
					}
					q[0][b]--
					q[0][c]--
					q[1][c]--
					q[3][b]--

					v0 := cellVertex[cellIndex(q[0][0], q[0][1], q[0][2])]
					v1 := cellVertex[cellIndex(q[1][0], q[1][1], q[1][2])]
					v2 := cellVertex[cellIndex(q[2][0], q[2][1], q[2][2])]
					v3 := cellVertex[cellIndex(q[3][0], q[3][1], q[3][2])]
					if v0 < 0 || v1 < 0 || v2 < 0 || v3 < 0 {
						continue
					}

					if d0 > 0 {
						// Тело у ближнего угла: поверхность смотрит в +a
						m.Indices = append(m.Indices,
							uint32(v0), uint32(v1), uint32(v2),
							uint32(v0), uint32(v2), uint32(v3))
					} else {
						m.Indices = append(m.Indices,
							uint32(v0), uint32(v3), uint32(v2),
							uint32(v0), uint32(v2), uint32(v1))
					}
				}
			}
		}
	}

	return m
}

// cellNormal вычисляет нормаль вершины как отрицательный градиент поля
// в ячейке (центральная разность по углам), нормализованный.
// Нулевой градиент даёт нулевую нормаль.
func cellNormal(corners [8]float32) [3]float32 {
	// Углы с установленным битом соответствующей оси минус углы без него
	gx := float64(corners[1]+corners[3]+corners[5]+corners[7]-
		corners[0]-corners[2]-corners[4]-corners[6]) / 4.0
	gy := float64(corners[2]+corners[3]+corners[6]+corners[7]-
		corners[0]-corners[1]-corners[4]-corners[5]) / 4.0
	gz := float64(corners[4]+corners[5]+corners[6]+corners[7]-
		corners[0]-corners[1]-corners[2]-corners[3]) / 4.0

	length := math.Sqrt(gx*gx + gy*gy + gz*gz)
	if length == 0 {
		return [3]float32{}
	}

	// Градиент растёт внутрь тела; наружная нормаль — его отрицание
	return [3]float32{
		float32(-gx / length),
		float32(-gy / length),
		float32(-gz / length),
	}
}

// ExtractChunkSurface строит изоповерхность базового чанка
func ExtractChunkSurface(chunk *world.Chunk) *Mesh {
	chunk.Mu.RLock()
	defer chunk.Mu.RUnlock()
	return ExtractSurfaceNets(chunk.Density, chunk.WorldOrigin(), world.VoxelSize)
}

// ExtractMergedSurface строит изоповерхность объединённого региона
// по его грубому полю с увеличенным размером ячейки
func ExtractMergedSurface(mc *world.MergedChunk) *Mesh {
	return ExtractSurfaceNets(mc.Coarse, mc.WorldOrigin(), mc.CellWorldSize())
}
