package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/destruct"
	"github.com/annel0/voxel-engine/internal/tool"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

func newBareEngine() *Engine {
	return NewEngine(&config.EngineConfig{
		Seed:           12345,
		TickRate:       60,
		ViewDistance:   1,
		MaxChunks:      64,
		MergeBudget:    2,
		EvictionPeriod: 1,
	})
}

func TestEngineEnsureChunksAround(t *testing.T) {
	e := newBareEngine()

	loaded := e.EnsureChunksAround(vec.Vec3Float{X: 0, Y: world.BaseHeight, Z: 0})
	assert.Positive(t, loaded, "Стартовый регион должен прогрузиться")
	assert.Equal(t, loaded, e.Store.Count(), "Все прогруженные чанки резидентны")

	// Повторная прогрузка ничего не добавляет
	assert.Zero(t, e.EnsureChunksAround(vec.Vec3Float{X: 0, Y: world.BaseHeight, Z: 0}),
		"Повторная прогрузка того же региона — ноль новых чанков")

	// У каждого чанка есть стартовый меш
	chunks, _ := e.Meshes.Count()
	assert.Equal(t, loaded, chunks, "Каждый чанк получает стартовый меш")
}

func TestEngineTickAdvances(t *testing.T) {
	e := newBareEngine()
	e.EnsureChunksAround(vec.Vec3Float{X: 0, Y: world.BaseHeight, Z: 0})

	e.Tick(1.0 / 60.0)
	e.Tick(1.0 / 60.0)
	assert.Equal(t, uint64(2), e.TickCount(), "Счётчик тиков должен расти")
}

func TestEngineBreakVoxelEndToEnd(t *testing.T) {
	e := newBareEngine()
	e.EnsureChunksAround(vec.Vec3Float{X: 0, Y: world.BaseHeight, Z: 0})

	playerPos := vec.Vec3Float{X: 0.55, Y: 2.0, Z: 0.55}
	input := destruct.Input{
		Active:       true,
		RayOrigin:    vec.Vec3Float{X: 0.55, Y: 3.0, Z: 0.55},
		RayDirection: vec.Vec3Float{Y: -1},
	}
	shovel := tool.NewTool(tool.ToolShovel)
	e.SetPlayerState(playerPos, input, shovel)

	// Верхний воксель — земля или трава: лопатой ~0.67 с
	dt := 1.0 / 60.0
	for i := 0; i < 120; i++ { // 2 секунды
		e.Tick(dt)
	}

	assert.Positive(t, e.Destruct.ResolvedCount(), "За две секунды лопата должна разрушить цель")
	assert.Less(t, shovel.Durability, 100, "Прочность лопаты должна списаться")

	// Дропы заспавнены и затем подобраны игроком поблизости
	collectedOrActive := e.Drops.Count() > 0 || e.Destruct.ResolvedCount() > 0
	assert.True(t, collectedOrActive, "Разрушение должно породить дропы")
}

func TestEngineDropCollectionInTick(t *testing.T) {
	e := newBareEngine()
	e.EnsureChunksAround(vec.Vec3Float{X: 0, Y: world.BaseHeight, Z: 0})

	playerPos := vec.Vec3Float{X: 0.5, Y: 1.6, Z: 0.5}
	e.SetPlayerState(playerPos, destruct.Input{}, nil)

	// Дроп прямо у игрока, но свежий — подбор после секундной задержки
	e.Drops.Spawn(world.MaterialDirt, 4, playerPos, vec.Vec3Float{})
	e.Tick(1.0 / 60.0)
	assert.Equal(t, 1, e.Drops.Count(), "Свежий дроп не подбирается в первый тик")
}

func TestEngineLODReclassifiesOnMove(t *testing.T) {
	e := newBareEngine()
	near := e.Store.GetOrCreate(vec.Vec3{X: 0, Y: 0, Z: 0})
	near.MarkClean()

	// Игрок рядом: Ultra
	e.SetPlayerState(vec.Vec3Float{X: 1.6, Y: 1.6, Z: 1.6}, destruct.Input{}, nil)
	e.Tick(1.0 / 60.0)
	require.Equal(t, world.LODUltra, near.LOD, "Близкий чанк — Ultra")

	// Игрок ушёл на 150 единиц: Medium
	e.SetPlayerState(vec.Vec3Float{X: 150, Y: 1.6, Z: 1.6}, destruct.Input{}, nil)
	e.Tick(1.0 / 60.0)
	assert.Equal(t, world.LODMedium, near.LOD, "Дальний чанк — Medium")
}

func TestEngineMergeProducesMergedMesh(t *testing.T) {
	e := newBareEngine()

	chunk := e.Store.GetOrCreate(vec.Vec3{X: 0, Y: 0, Z: 0})
	chunk.MarkClean()

	// Смена LOD ставит задачу объединения; merge.apply строит грубый меш
	e.SetPlayerState(vec.Vec3Float{X: 75, Y: 0, Z: 0}, destruct.Input{}, nil) // High, factor 2
	e.Tick(1.0 / 60.0)

	_, merged := e.Meshes.Count()
	assert.Positive(t, merged, "Объединённый меш должен появиться в реестре")
}

func TestEngineMergeLevelTransitionDropsStaleMesh(t *testing.T) {
	e := newBareEngine()

	chunk := e.Store.GetOrCreate(vec.Vec3{X: 2, Y: 0, Z: 0})
	chunk.MarkClean()

	// Дистанция ~67: High, factor 2, угол региона (2,0,0)
	e.SetPlayerState(vec.Vec3Float{X: 75, Y: 0, Z: 0}, destruct.Input{}, nil)
	e.Tick(1.0 / 60.0)

	oldOrigin := vec.Vec3{X: 2, Y: 0, Z: 0}
	_, ok := e.Meshes.GetMerged(oldOrigin)
	require.True(t, ok, "Первый переход должен построить меш factor 2")

	// Дистанция ~142: Medium, factor 4, угол региона (0,0,0).
	// Старый меш factor 2 вложен в новый регион и должен исчезнуть
	e.SetPlayerState(vec.Vec3Float{X: 150, Y: 0, Z: 0}, destruct.Input{}, nil)
	e.Tick(1.0 / 60.0)

	newOrigin := vec.Vec3{X: 0, Y: 0, Z: 0}
	_, ok = e.Meshes.GetMerged(newOrigin)
	require.True(t, ok, "Переход High→Medium должен построить меш factor 4")

	_, stale := e.Meshes.GetMerged(oldOrigin)
	assert.False(t, stale, "Устаревший меш factor 2 не должен перекрывать новый регион")

	_, merged := e.Meshes.Count()
	assert.Equal(t, 1, merged, "Регион представлен ровно одним объединённым мешем")
}
