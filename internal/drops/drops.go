package drops

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

const (
	// CollectDelay — задержка до того, как дроп можно подобрать
	CollectDelay = 1 * time.Second
	// MaxAge — возраст, после которого дроп удаляется безусловно
	MaxAge = 60 * time.Second
	// PickupRadius — радиус подбора дропа игроком (в мировых единицах)
	PickupRadius = 2.0
	// horizontalDamping — затухание горизонтальной скорости за тик
	horizontalDamping = 0.98
	// bounceLoss — доля вертикальной скорости, сохраняемая при отскоке
	bounceLoss = 0.3
)

// DropItem — выпавший предмет, свободно лежащий в мире
type DropItem struct {
	ID          uuid.UUID
	Material    world.VoxelMaterial
	Quantity    int
	Position    vec.Vec3Float
	Velocity    vec.Vec3Float
	SpawnTime   time.Time
	Collectible bool
}

// Age возвращает возраст дропа на момент now
func (d *DropItem) Age(now time.Time) time.Duration {
	return now.Sub(d.SpawnTime)
}

// Manager управляет жизненным циклом всех дропов мира
type Manager struct {
	mu     sync.Mutex
	items  map[uuid.UUID]*DropItem
	events *world.EventSink
	now    func() time.Time
}

// NewManager создаёт пустой менеджер дропов
func NewManager() *Manager {
	return &Manager{
		items: make(map[uuid.UUID]*DropItem),
		now:   time.Now,
	}
}

// SetEventSink подключает шину событий мира
func (m *Manager) SetEventSink(events *world.EventSink) {
	m.events = events
}

// Spawn создаёт дроп в мировой позиции с начальной скоростью.
// Нулевое количество — допустимый ноль-оп: дроп не создаётся.
func (m *Manager) Spawn(material world.VoxelMaterial, quantity int, position, velocity vec.Vec3Float) *DropItem {
	if quantity <= 0 {
		return nil
	}

	item := &DropItem{
		ID:        uuid.New(),
		Material:  material,
		Quantity:  quantity,
		Position:  position,
		Velocity:  velocity,
		SpawnTime: m.now(),
	}

	m.mu.Lock()
	m.items[item.ID] = item
	m.mu.Unlock()

	if m.events != nil {
		m.events.Publish(world.DropEvent{
			EventType: world.EventTypeDropSpawned,
			Material:  material,
			Quantity:  uint32(quantity),
			Position:  position,
		})
	}

	return item
}

// Count возвращает число активных дропов
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Items возвращает снимок активных дропов
func (m *Manager) Items() []*DropItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*DropItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	return out
}

// Simulate продвигает физику всех дропов на dt секунд: интеграция
// скорости, гравитация, затухание по горизонтали и отскок от земли
func (m *Manager) Simulate(store *world.ChunkStore, dt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items {
		item.Position = item.Position.Add(item.Velocity.Mul(dt))

		item.Velocity.Y += world.Gravity * dt
		item.Velocity.X *= horizontalDamping
		item.Velocity.Z *= horizontalDamping

		ground := physics.GroundHeightAt(store, item.Position.X, item.Position.Y+0.5, item.Position.Z)
		if item.Position.Y <= ground {
			item.Position.Y = ground
			item.Velocity.Y = math.Abs(item.Velocity.Y) * bounceLoss
		}
	}
}

// Collect подбирает дропы в радиусе подбора вокруг игрока.
// Дроп становится подбираемым через секунду после появления.
// Возвращает собранные предметы.
func (m *Manager) Collect(playerPos vec.Vec3Float) []*DropItem {
	now := m.now()
	var collected []*DropItem

	m.mu.Lock()
	for id, item := range m.items {
		if !item.Collectible && item.Age(now) >= CollectDelay {
			item.Collectible = true
		}
		if item.Collectible && item.Position.DistanceTo(playerPos) <= PickupRadius {
			collected = append(collected, item)
			delete(m.items, id)
		}
	}
	m.mu.Unlock()

	for _, item := range collected {
		logging.LogDropCollected(item.Material.String(), uint32(item.Quantity))
		if m.events != nil {
			m.events.Publish(world.DropEvent{
				EventType: world.EventTypeDropCollected,
				Material:  item.Material,
				Quantity:  uint32(item.Quantity),
				Position:  item.Position,
			})
		}
	}

	return collected
}

// AgeOut удаляет дропы старше максимального возраста независимо от
// флага подбираемости. Возвращает число удалённых.
func (m *Manager) AgeOut() int {
	now := m.now()
	removed := 0

	m.mu.Lock()
	for id, item := range m.items {
		if item.Age(now) >= MaxAge {
			delete(m.items, id)
			removed++
		}
	}
	m.mu.Unlock()

	return removed
}
