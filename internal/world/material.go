package world

// VoxelMaterial представляет материал вокселя.
// Занимает 1 байт — поля материалов хранятся миллионами.
type VoxelMaterial uint8

const (
	MaterialAir VoxelMaterial = iota
	MaterialDirt
	MaterialStone
	MaterialWood
	MaterialMetal
	MaterialGrass
	MaterialSand

	materialCount
)

// Color представляет цвет материала для рендеринга (RGBA, 0..1)
type Color struct {
	R, G, B, A float32
}

// MaterialProperties описывает статические свойства материала
type MaterialProperties struct {
	Hardness  float32 // Прочность: 0 = мгновенно, выше = дольше ломать
	IsSolid   bool    // Имеет ли воксель коллизию
	DropsSelf bool    // Выпадает ли тот же материал при разрушении
	Color     Color   // Базовый цвет для рендеринга
	Name      string  // Читаемое имя материала
}

// materialTable — таблица свойств всех материалов.
// Закрытое перечисление: поведение ищется по таблице, без виртуальной диспетчеризации.
var materialTable = [materialCount]MaterialProperties{
	MaterialAir: {
		Hardness:  0.0,
		IsSolid:   false,
		DropsSelf: false,
		Color:     Color{0.0, 0.0, 0.0, 0.0}, // Прозрачный
		Name:      "Air",
	},
	MaterialDirt: {
		Hardness:  1.0,
		IsSolid:   true,
		DropsSelf: true,
		Color:     Color{0.55, 0.35, 0.2, 1.0}, // Коричневый
		Name:      "Dirt",
	},
	MaterialStone: {
		Hardness:  5.0,
		IsSolid:   true,
		DropsSelf: true,
		Color:     Color{0.5, 0.5, 0.5, 1.0}, // Серый
		Name:      "Stone",
	},
	MaterialWood: {
		Hardness:  2.0,
		IsSolid:   true,
		DropsSelf: true,
		Color:     Color{0.4, 0.25, 0.1, 1.0}, // Древесный
		Name:      "Wood",
	},
	MaterialMetal: {
		Hardness:  10.0,
		IsSolid:   true,
		DropsSelf: true,
		Color:     Color{0.7, 0.7, 0.8, 1.0}, // Металлический
		Name:      "Metal",
	},
	MaterialGrass: {
		Hardness:  1.0,
		IsSolid:   true,
		DropsSelf: false, // Вместо травы выпадает земля
		Color:     Color{0.3, 0.6, 0.2, 1.0}, // Зелёный
		Name:      "Grass",
	},
	MaterialSand: {
		Hardness:  0.5,
		IsSolid:   true,
		DropsSelf: true,
		Color:     Color{0.9, 0.85, 0.6, 1.0}, // Песочный
		Name:      "Sand",
	},
}

// Properties возвращает свойства материала
func (m VoxelMaterial) Properties() MaterialProperties {
	if m >= materialCount {
		return materialTable[MaterialAir]
	}
	return materialTable[m]
}

// IsSolid проверяет, является ли воксель твёрдым.
// Воздух — единственный нетвёрдый материал.
func (m VoxelMaterial) IsSolid() bool {
	return m != MaterialAir && m < materialCount
}

// IsAir проверяет, является ли воксель воздухом
func (m VoxelMaterial) IsAir() bool {
	return m == MaterialAir
}

// String возвращает имя материала
func (m VoxelMaterial) String() string {
	return m.Properties().Name
}

// DropMaterial возвращает материал, выпадающий при разрушении.
// Трава дропает землю, остальные — сами себя.
func (m VoxelMaterial) DropMaterial() VoxelMaterial {
	if !m.IsSolid() {
		return MaterialAir
	}
	if m.Properties().DropsSelf {
		return m
	}
	return MaterialDirt
}

// MaterialFromDensity выбирает материал по плотности и мировой высоте.
// Решающая таблица: глубина → камень, середина → земля,
// тонкая полоса у поверхности → трава, иначе земля.
func MaterialFromDensity(density float32, worldY float64) VoxelMaterial {
	if density <= 0 {
		return MaterialAir
	}

	switch {
	case worldY < StoneDepthMax:
		return MaterialStone
	case worldY < DirtDepthMax:
		return MaterialDirt
	case worldY < GrassSurfaceMax:
		return MaterialGrass
	default:
		return MaterialDirt
	}
}
