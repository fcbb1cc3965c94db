package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// EventType определяет тип события мира
type EventType uint8

const (
	EventTypeChunkGenerated EventType = iota // Сгенерирован новый чанк
	EventTypeLODChanged                      // Сменился уровень детализации чанка
	EventTypeVoxelBroken                     // Разрушен воксель
	EventTypeDropSpawned                     // Появился дроп
	EventTypeDropCollected                   // Дроп подобран игроком
)

// Event представляет собой интерфейс для всех событий мира
type Event interface {
	GetType() EventType
}

// ChunkEvent представляет событие, связанное с чанком
type ChunkEvent struct {
	EventType EventType
	Coords    vec.Vec3 // Координаты чанка
	LOD       ChunkLOD // Новый LOD (для EventTypeLODChanged)
}

// GetType возвращает тип события
func (e ChunkEvent) GetType() EventType {
	return e.EventType
}

// VoxelEvent представляет событие, связанное с отдельным вокселем
type VoxelEvent struct {
	EventType EventType
	Chunk     vec.Vec3      // Координаты чанка
	Local     vec.Vec3      // Локальные координаты вокселя
	Material  VoxelMaterial // Материал до разрушения
}

// GetType возвращает тип события
func (e VoxelEvent) GetType() EventType {
	return e.EventType
}

// DropEvent представляет событие, связанное с дропом
type DropEvent struct {
	EventType EventType
	Material  VoxelMaterial
	Quantity  uint32
	Position  vec.Vec3Float
}

// GetType возвращает тип события
func (e DropEvent) GetType() EventType {
	return e.EventType
}

// EventSink — буферизированный канал событий мира для внешних потребителей
// (рендер, HUD, диагностика). Публикация не блокирует: при переполнении
// событие отбрасывается.
type EventSink struct {
	events chan Event
}

// NewEventSink создаёт канал событий с указанной ёмкостью буфера
func NewEventSink(capacity int) *EventSink {
	if capacity <= 0 {
		capacity = 1024
	}
	return &EventSink{events: make(chan Event, capacity)}
}

// Publish отправляет событие, отбрасывая его при переполненном буфере
func (es *EventSink) Publish(event Event) {
	select {
	case es.events <- event:
		// Успешно отправлено
	default:
		// Канал переполнен, событие отброшено
	}
}

// Events возвращает канал для чтения событий
func (es *EventSink) Events() <-chan Event {
	return es.events
}
