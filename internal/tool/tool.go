package tool

import (
	"github.com/annel0/voxel-engine/internal/world"
)

// ToolType — закрытое перечисление инструментов игрока
type ToolType uint8

const (
	ToolHands ToolType = iota // Голые руки — инструмент по умолчанию
	ToolPickaxe
	ToolAxe
	ToolShovel
	ToolHoe
)

// Properties — статические свойства типа инструмента
type Properties struct {
	Name          string
	MaxDurability int     // 0 — инструмент не изнашивается
	Speed         float64 // Множитель скорости разрушения
}

var toolTable = map[ToolType]Properties{
	ToolHands:   {Name: "Руки", MaxDurability: 0, Speed: 0.5},
	ToolPickaxe: {Name: "Кирка", MaxDurability: 100, Speed: 1.0},
	ToolAxe:     {Name: "Топор", MaxDurability: 100, Speed: 1.0},
	ToolShovel:  {Name: "Лопата", MaxDurability: 100, Speed: 1.0},
	ToolHoe:     {Name: "Мотыга", MaxDurability: 100, Speed: 1.0},
}

// Props возвращает статические свойства типа инструмента
func (t ToolType) Props() Properties {
	if p, ok := toolTable[t]; ok {
		return p
	}
	return toolTable[ToolHands]
}

func (t ToolType) String() string {
	return t.Props().Name
}

// Effectiveness возвращает множитель эффективности инструмента против
// материала. Подходящие пары дают бонус 1.5, неподходящие и голые
// руки — штраф 0.3. Против воздуха любой инструмент тривиален (1.0).
func Effectiveness(t ToolType, m world.VoxelMaterial) float64 {
	if m.IsAir() {
		return 1.0
	}

	switch t {
	case ToolPickaxe:
		if m == world.MaterialStone || m == world.MaterialMetal {
			return 1.5
		}
	case ToolAxe:
		if m == world.MaterialWood {
			return 1.5
		}
	case ToolShovel:
		if m == world.MaterialDirt || m == world.MaterialGrass || m == world.MaterialSand {
			return 1.5
		}
	case ToolHoe:
		if m == world.MaterialGrass || m == world.MaterialDirt {
			return 1.5
		}
	}

	return 0.3
}

// Tool — экземпляр инструмента с текущей прочностью
type Tool struct {
	Type       ToolType
	Durability int
	Broken     bool
}

// NewTool создаёт инструмент с полной прочностью
func NewTool(t ToolType) *Tool {
	return &Tool{
		Type:       t,
		Durability: t.Props().MaxDurability,
	}
}

// Use списывает единицу прочности за разрушение. Прочность насыщается
// в нуле, не переполняясь вниз; при нуле инструмент помечается сломанным.
// Руки не изнашиваются.
func (t *Tool) Use() {
	if t.Type == ToolHands || t.Type.Props().MaxDurability == 0 {
		return
	}
	if t.Durability > 0 {
		t.Durability--
	}
	if t.Durability == 0 {
		t.Broken = true
	}
}

// DurabilityPercent возвращает остаток прочности в долях [0, 1].
// Неизнашиваемые инструменты всегда считаются целыми.
func (t *Tool) DurabilityPercent() float64 {
	max := t.Type.Props().MaxDurability
	if max == 0 {
		return 1.0
	}
	return float64(t.Durability) / float64(max)
}

// Effective возвращает тип инструмента с учётом поломки: сломанный
// инструмент работает как голые руки до замены
func (t *Tool) Effective() ToolType {
	if t.Broken {
		return ToolHands
	}
	return t.Type
}
