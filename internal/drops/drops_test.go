package drops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// fakeClock подменяет часы менеджера управляемым временем
func fakeClock(mgr *Manager) *time.Time {
	current := time.Now()
	mgr.now = func() time.Time { return current }
	return &current
}

func TestSpawnAndCount(t *testing.T) {
	mgr := NewManager()

	item := mgr.Spawn(world.MaterialStone, 8, vec.Vec3Float{X: 1, Y: 2, Z: 3}, vec.Vec3Float{Y: 2})
	require.NotNil(t, item, "Дроп должен создаться")
	assert.Equal(t, 1, mgr.Count())
	assert.Equal(t, world.MaterialStone, item.Material)
	assert.False(t, item.Collectible, "Свежий дроп ещё нельзя подобрать")

	// Нулевое количество — валидный ноль-оп
	assert.Nil(t, mgr.Spawn(world.MaterialDirt, 0, vec.Vec3Float{}, vec.Vec3Float{}), "Нулевое количество не создаёт дроп")
	assert.Equal(t, 1, mgr.Count())
}

func TestCollectDelay(t *testing.T) {
	mgr := NewManager()
	clock := fakeClock(mgr)

	mgr.Spawn(world.MaterialDirt, 3, vec.Vec3Float{}, vec.Vec3Float{})

	// Сразу после спавна дроп не подбирается даже вплотную
	collected := mgr.Collect(vec.Vec3Float{})
	assert.Empty(t, collected, "Дроп моложе секунды не подбирается")
	assert.Equal(t, 1, mgr.Count())

	// Через секунду — подбирается
	*clock = clock.Add(1100 * time.Millisecond)
	collected = mgr.Collect(vec.Vec3Float{})
	require.Len(t, collected, 1, "Дроп старше секунды должен подобраться")
	assert.Equal(t, 3, collected[0].Quantity)
	assert.Zero(t, mgr.Count(), "Подобранный дроп покидает мир")
}

func TestCollectRadius(t *testing.T) {
	mgr := NewManager()
	clock := fakeClock(mgr)

	mgr.Spawn(world.MaterialSand, 2, vec.Vec3Float{X: 10, Y: 0, Z: 0}, vec.Vec3Float{})
	*clock = clock.Add(2 * time.Second)

	// Игрок в 5 единицах — дальше радиуса подбора
	assert.Empty(t, mgr.Collect(vec.Vec3Float{X: 5, Y: 0, Z: 0}), "Вне радиуса дроп не подбирается")

	// В пределах радиуса 2.0 — подбирается
	collected := mgr.Collect(vec.Vec3Float{X: 8.5, Y: 0, Z: 0})
	assert.Len(t, collected, 1, "Внутри радиуса дроп должен подобраться")
}

func TestAgeOut(t *testing.T) {
	mgr := NewManager()
	clock := fakeClock(mgr)

	mgr.Spawn(world.MaterialWood, 5, vec.Vec3Float{X: 1000, Y: 0, Z: 0}, vec.Vec3Float{})

	// До минуты дроп живёт даже без подбора
	*clock = clock.Add(59 * time.Second)
	assert.Zero(t, mgr.AgeOut(), "До минуты дроп не удаляется")
	assert.Equal(t, 1, mgr.Count())

	// После минуты удаляется безусловно, независимо от флага подбора
	*clock = clock.Add(2 * time.Second)
	assert.Equal(t, 1, mgr.AgeOut(), "Старше минуты дроп удаляется")
	assert.Zero(t, mgr.Count())
}

func TestSimulateGravityAndDamping(t *testing.T) {
	mgr := NewManager()
	store := world.NewChunkStore(world.NewTerrainGenerator(12345), 0)

	item := mgr.Spawn(world.MaterialDirt, 1, vec.Vec3Float{X: 0, Y: 50, Z: 0}, vec.Vec3Float{X: 5, Y: 0, Z: 3})

	for i := 0; i < 60; i++ {
		mgr.Simulate(store, 1.0/60.0)
	}

	// Гравитация разгоняет падение
	assert.Negative(t, item.Velocity.Y, "Вертикальная скорость должна стать отрицательной")
	assert.Less(t, item.Position.Y, 50.0, "Дроп должен опускаться")

	// Горизонтальная скорость затухает
	assert.Less(t, item.Velocity.X, 5.0, "Скорость по X должна затухать")
	assert.Less(t, item.Velocity.Z, 3.0, "Скорость по Z должна затухать")
	assert.Positive(t, item.Velocity.X, "Затухание не меняет направление")
}

func TestSimulateRestsOnSurface(t *testing.T) {
	mgr := NewManager()
	store := world.NewChunkStore(world.NewTerrainGenerator(12345), 0)
	store.GetOrCreate(vec.Vec3{X: 0, Y: 0, Z: 0})

	item := mgr.Spawn(world.MaterialStone, 1, vec.Vec3Float{X: 0.55, Y: 3.0, Z: 0.55}, vec.Vec3Float{})

	// Три секунды симуляции: дроп падает, отскакивает и успокаивается
	for i := 0; i < 180; i++ {
		mgr.Simulate(store, 1.0/60.0)
	}

	height := store.Generator().HeightAt(item.Position.X, item.Position.Z)
	assert.InDelta(t, height, item.Position.Y, 0.3, "Дроп должен лежать у поверхности ландшафта")
	assert.GreaterOrEqual(t, item.Position.Y, 0.0, "Дроп не проваливается под мир")
}

func TestSimulateBounceReflects(t *testing.T) {
	mgr := NewManager()
	store := world.NewChunkStore(world.NewTerrainGenerator(12345), 0)
	store.GetOrCreate(vec.Vec3{X: 0, Y: 0, Z: 0})

	// Дроп у самой земли с сильной скоростью вниз
	item := mgr.Spawn(world.MaterialStone, 1, vec.Vec3Float{X: 0.55, Y: 1.6, Z: 0.55}, vec.Vec3Float{Y: -5})

	mgr.Simulate(store, 1.0/60.0)

	// После касания земли вертикальная скорость отражена с потерей энергии
	if item.Position.Y <= 1.6 {
		assert.GreaterOrEqual(t, item.Velocity.Y, 0.0, "Отскок должен отражать скорость вверх")
	}
}
