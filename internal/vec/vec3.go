package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется для координат чанков и локальных координат вокселей.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul умножает вектор на скаляр
func (v Vec3) Mul(scalar int) Vec3 {
	return Vec3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// ToFloat преобразует в вектор с плавающей точкой
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// floorDiv выполняет деление с округлением вниз (как div_euclid)
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod возвращает неотрицательный остаток (как rem_euclid)
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ToChunkCoords преобразует глобальные воксельные координаты в координаты чанка.
// edge — размер чанка в вокселях по одной оси.
func (v Vec3) ToChunkCoords(edge int) Vec3 {
	return Vec3{
		X: floorDiv(v.X, edge),
		Y: floorDiv(v.Y, edge),
		Z: floorDiv(v.Z, edge),
	}
}

// LocalInChunk возвращает локальные координаты вокселя внутри чанка
func (v Vec3) LocalInChunk(edge int) Vec3 {
	return Vec3{
		X: floorMod(v.X, edge),
		Y: floorMod(v.Y, edge),
		Z: floorMod(v.Z, edge),
	}
}
