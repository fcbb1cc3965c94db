package world

// DensityField — скалярное поле плотности чанка размером (N+1)³.
// Положительное значение — твёрдое тело, неположительное — пустота.
// Дополнительный ряд (+1) хранит значения на границе с соседним чанком,
// чтобы интерполяция изоповерхности у края не требовала чужих данных.
type DensityField struct {
	edge   int // Число ячеек по одной оси (N); сэмплов N+1
	values []float32
}

// NewDensityField создаёт нулевое поле плотности с ребром edge ячеек
func NewDensityField(edge int) *DensityField {
	samples := edge + 1
	return &DensityField{
		edge:   edge,
		values: make([]float32, samples*samples*samples),
	}
}

// Edge возвращает число ячеек по одной оси
func (df *DensityField) Edge() int {
	return df.edge
}

// index вычисляет линейный индекс сэмпла
func (df *DensityField) index(x, y, z int) int {
	samples := df.edge + 1
	return (x*samples+y)*samples + z
}

// At возвращает плотность в сэмпле (x,y,z), 0 <= x,y,z <= edge
func (df *DensityField) At(x, y, z int) float32 {
	return df.values[df.index(x, y, z)]
}

// Set устанавливает плотность в сэмпле (x,y,z)
func (df *DensityField) Set(x, y, z int, density float32) {
	df.values[df.index(x, y, z)] = density
}

// IsEmpty возвращает true, если всё поле неположительное (чанк целиком пустой)
func (df *DensityField) IsEmpty() bool {
	for _, v := range df.values {
		if v > 0 {
			return false
		}
	}
	return true
}

// Values возвращает срез значений поля (для тестов детерминированности)
func (df *DensityField) Values() []float32 {
	return df.values
}

// MaterialGrid — параллельная сетка материалов N³ (без границы)
type MaterialGrid struct {
	edge      int
	materials []VoxelMaterial
}

// NewMaterialGrid создаёт сетку материалов, заполненную воздухом
func NewMaterialGrid(edge int) *MaterialGrid {
	return &MaterialGrid{
		edge:      edge,
		materials: make([]VoxelMaterial, edge*edge*edge),
	}
}

// Edge возвращает число вокселей по одной оси
func (mg *MaterialGrid) Edge() int {
	return mg.edge
}

// index вычисляет линейный индекс вокселя
func (mg *MaterialGrid) index(x, y, z int) int {
	return (x*mg.edge+y)*mg.edge + z
}

// At возвращает материал вокселя (x,y,z), 0 <= x,y,z < edge
func (mg *MaterialGrid) At(x, y, z int) VoxelMaterial {
	return mg.materials[mg.index(x, y, z)]
}

// Set устанавливает материал вокселя (x,y,z)
func (mg *MaterialGrid) Set(x, y, z int, m VoxelMaterial) {
	mg.materials[mg.index(x, y, z)] = m
}

// Materials возвращает срез материалов (для тестов детерминированности)
func (mg *MaterialGrid) Materials() []VoxelMaterial {
	return mg.materials
}
