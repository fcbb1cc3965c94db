package tool

import (
	"math/rand"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// Шаблоны разрушения — фиксированные списки локальных смещений от
// целевого вокселя. Первое смещение всегда нулевое (сама цель).

var (
	patternHands = []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
	}

	// Лопата: горизонтальный крест плюс воксель снизу
	patternShovel = []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
		{X: 0, Y: -1, Z: 0},
	}

	// Кирка: объёмный плюс по трём осям
	patternPickaxe = []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
	}

	// Топор: высокая вертикальная колонна с диагоналями на уровне цели
	patternAxe = []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 2, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: -1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 1},
		{X: 0, Y: 1, Z: -1},
	}

	// Мотыга: горизонтальный крест на уровне цели (вспашка поверхности)
	patternHoe = []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
	}
)

// DestructionPattern возвращает список локальных смещений, разрушаемых
// инструментом за один удар
func DestructionPattern(t ToolType) []vec.Vec3 {
	switch t {
	case ToolShovel:
		return patternShovel
	case ToolPickaxe:
		return patternPickaxe
	case ToolAxe:
		return patternAxe
	case ToolHoe:
		return patternHoe
	default:
		return patternHands
	}
}

// dropRange — включительный диапазон случайного количества дропа
type dropRange struct {
	min, max int
}

func (r dropRange) roll(rng *rand.Rand) int {
	if r.max <= r.min {
		return r.min
	}
	return r.min + rng.Intn(r.max-r.min+1)
}

// dropTable — количество дропа по паре инструмент/материал.
// Подходящие пары дают больше добычи.
var dropTable = map[ToolType]map[world.VoxelMaterial]dropRange{
	ToolPickaxe: {
		world.MaterialStone: {min: 8, max: 15},
		world.MaterialMetal: {min: 4, max: 8},
	},
	ToolAxe: {
		world.MaterialWood: {min: 6, max: 10},
	},
	ToolShovel: {
		world.MaterialDirt:  {min: 4, max: 8},
		world.MaterialGrass: {min: 4, max: 8},
		world.MaterialSand:  {min: 4, max: 8},
	},
	ToolHoe: {
		world.MaterialGrass: {min: 2, max: 4},
		world.MaterialDirt:  {min: 2, max: 4},
	},
}

// defaultDrop — диапазон для неподходящих пар и голых рук
var defaultDrop = dropRange{min: 1, max: 3}

// DropQuantity возвращает случайное количество дропа за разрушенный
// воксель. Воздух и материалы без дропа дают ноль.
func DropQuantity(t ToolType, m world.VoxelMaterial, rng *rand.Rand) int {
	if m.IsAir() {
		return 0
	}
	if byMaterial, ok := dropTable[t]; ok {
		if r, ok := byMaterial[m]; ok {
			return r.roll(rng)
		}
	}
	return defaultDrop.roll(rng)
}
