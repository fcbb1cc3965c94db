package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// ChunkLOD — уровень детализации чанка.
// Чем дальше чанк от игрока, тем грубее уровень.
type ChunkLOD uint8

const (
	LODUltra   ChunkLOD = iota // 32³ индивидуально (0-50 м)
	LODHigh                    // 64³ (2x2x2 объединённых) (50-100 м)
	LODMedium                  // 128³ (4x4x4) (100-200 м)
	LODLow                     // 256³ (8x8x8) (200-400 м)
	LODMinimal                 // 512³ (16x16x16) (400+ м)
)

// LODFromDistance определяет уровень детализации по расстоянию до игрока.
// Расстояния на порогах и за последним порогом дают LODMinimal.
func LODFromDistance(distance float64) ChunkLOD {
	switch {
	case distance < LODDistances[0]:
		return LODUltra
	case distance < LODDistances[1]:
		return LODHigh
	case distance < LODDistances[2]:
		return LODMedium
	case distance < LODDistances[3]:
		return LODLow
	default:
		return LODMinimal
	}
}

// MergeFactor возвращает число базовых чанков по одной оси,
// объединяемых в один рендер-юнит на этом уровне
func (l ChunkLOD) MergeFactor() int {
	switch l {
	case LODUltra:
		return 1
	case LODHigh:
		return 2
	case LODMedium:
		return 4
	case LODLow:
		return 8
	default:
		return 16
	}
}

// LODFromMergeFactor возвращает уровень детализации по фактору объединения
func LODFromMergeFactor(factor int) ChunkLOD {
	switch factor {
	case 1:
		return LODUltra
	case 2:
		return LODHigh
	case 4:
		return LODMedium
	case 8:
		return LODLow
	default:
		return LODMinimal
	}
}

// EffectiveSize возвращает эффективный размер объединённого чанка в вокселях
func (l ChunkLOD) EffectiveSize() int {
	return ChunkSize * l.MergeFactor()
}

// String возвращает имя уровня детализации
func (l ChunkLOD) String() string {
	switch l {
	case LODUltra:
		return "Ultra"
	case LODHigh:
		return "High"
	case LODMedium:
		return "Medium"
	case LODLow:
		return "Low"
	default:
		return "Minimal"
	}
}

// LODManager пересчитывает уровни детализации резидентных чанков
// от позиции игрока и ставит задачи на объединение/разделение.
type LODManager struct {
	store     *ChunkStore
	scheduler *MergeScheduler
	events    *EventSink
}

// NewLODManager создаёт менеджер LOD для указанного хранилища
func NewLODManager(store *ChunkStore, scheduler *MergeScheduler) *LODManager {
	return &LODManager{
		store:     store,
		scheduler: scheduler,
	}
}

// SetEventSink подключает канал событий мира
func (lm *LODManager) SetEventSink(events *EventSink) {
	lm.events = events
}

// Update пересчитывает LOD каждого резидентного чанка.
// Смена уровня помечает чанк грязным для переизвлечения меша.
// Возвращает число чанков, сменивших уровень.
func (lm *LODManager) Update(playerPos vec.Vec3Float) int {
	changed := 0

	for _, coords := range lm.store.Coords() {
		chunk, ok := lm.store.GetIfLoaded(coords)
		if !ok {
			continue
		}

		distance := chunk.WorldCenter().DistanceTo(playerPos)
		newLOD := LODFromDistance(distance)

		chunk.Mu.Lock()
		oldLOD := chunk.LOD
		if oldLOD != newLOD {
			chunk.LOD = newLOD
			chunk.Dirty = true
		}
		chunk.Mu.Unlock()

		if oldLOD == newLOD {
			continue
		}
		changed++

		if lm.events != nil {
			lm.events.Publish(ChunkEvent{EventType: EventTypeLODChanged, Coords: coords, LOD: newLOD})
		}

		if lm.scheduler != nil {
			if newLOD == LODUltra {
				// Приближение: объединённый регион нужно разбить обратно на базовые чанки
				lm.scheduler.EnqueueSplit(SplitTask{
					Origin:   mergedOrigin(coords, oldLOD.MergeFactor()),
					Factor:   oldLOD.MergeFactor(),
					Priority: distance,
				})
			} else {
				lm.scheduler.EnqueueMerge(MergeTask{
					Origin:   mergedOrigin(coords, newLOD.MergeFactor()),
					Factor:   newLOD.MergeFactor(),
					Priority: distance,
				})
			}
		}
	}

	return changed
}

// mergedOrigin выравнивает координату чанка вниз до кратной factor —
// угол региона объединения, которому принадлежит чанк
func mergedOrigin(coords vec.Vec3, factor int) vec.Vec3 {
	if factor <= 1 {
		return coords
	}
	return vec.Vec3{
		X: floorDivInt(coords.X, factor) * factor,
		Y: floorDivInt(coords.Y, factor) * factor,
		Z: floorDivInt(coords.Z, factor) * factor,
	}
}

func floorDivInt(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
