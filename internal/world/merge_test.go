package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/vec"
)

func TestBuildMergedChunkSampling(t *testing.T) {
	store := newTestStore(0)
	factor := 2
	origin := vec.Vec3{X: 0, Y: 0, Z: 0}

	mc := BuildMergedChunk(store, origin, factor, LODHigh)

	require.NotNil(t, mc, "Объединённый чанк должен строиться")
	assert.Equal(t, factor*factor*factor, len(mc.Chunks), "Регион должен покрывать factor³ базовых чанков")
	assert.Equal(t, 64, mc.EffectiveSize(), "Эффективный размер при factor=2 — 64 вокселя")

	// Каждый сэмпл грубого поля равен сэмплу базового поля в той же
	// глобальной координате — сэмплирование, а не усреднение
	for _, probe := range []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 7, Y: 13, Z: 21},
		{X: ChunkSize, Y: ChunkSize, Z: ChunkSize},
	} {
		global := vec.Vec3{X: probe.X * factor, Y: probe.Y * factor, Z: probe.Z * factor}
		owner := store.GetOrCreate(global.ToChunkCoords(ChunkSize))
		local := global.LocalInChunk(ChunkSize)

		expected := owner.Density.At(local.X, local.Y, local.Z)
		got := mc.Coarse.At(probe.X, probe.Y, probe.Z)
		assert.Equal(t, expected, got, "Сэмпл %+v должен совпадать с базовым полем", probe)
	}
}

func TestMergedChunkWorldGeometry(t *testing.T) {
	mc := &MergedChunk{Origin: vec.Vec3{X: 2, Y: 0, Z: -2}, Factor: 4}

	origin := mc.WorldOrigin()
	assert.InDelta(t, 2*ChunkWorldSize, origin.X, 1e-9)
	assert.InDelta(t, -2*ChunkWorldSize, origin.Z, 1e-9)

	// Ячейка грубого поля покрывает factor базовых вокселей
	assert.InDelta(t, VoxelSize*4, mc.CellWorldSize(), 1e-9)
}

func TestMergeSchedulerDedup(t *testing.T) {
	ms := NewMergeScheduler()
	origin := vec.Vec3{X: 0, Y: 0, Z: 0}

	ms.EnqueueMerge(MergeTask{Origin: origin, Factor: 2, Priority: 100})
	ms.EnqueueMerge(MergeTask{Origin: origin, Factor: 2, Priority: 50})

	assert.Equal(t, 1, ms.Pending(), "Повторная постановка не должна дублировать задачу")

	tasks := ms.DequeueMerges(10)
	require.Len(t, tasks, 1)
	assert.Equal(t, 50.0, tasks[0].Priority, "Повторная постановка должна обновить приоритет")
	assert.Zero(t, ms.Pending(), "Забранная задача покидает очередь")
}

func TestMergeSchedulerCrossDelete(t *testing.T) {
	ms := NewMergeScheduler()
	origin := vec.Vec3{X: 4, Y: 0, Z: 0}

	ms.EnqueueMerge(MergeTask{Origin: origin, Factor: 4, Priority: 10})
	ms.EnqueueSplit(SplitTask{Origin: origin, Factor: 4, Priority: 5})

	// Постановка split отменяет ожидающий merge того же региона
	assert.Empty(t, ms.DequeueMerges(10), "Merge должен быть отменён задачей split")

	splits := ms.DequeueSplits(10)
	require.Len(t, splits, 1, "Split должен остаться в очереди")

	// И наоборот: merge отменяет ожидающий split
	ms.EnqueueSplit(SplitTask{Origin: origin, Factor: 4, Priority: 5})
	ms.EnqueueMerge(MergeTask{Origin: origin, Factor: 4, Priority: 10})
	assert.Empty(t, ms.DequeueSplits(10), "Split должен быть отменён задачей merge")
}

func TestMergeSchedulerBudgetAndPriority(t *testing.T) {
	ms := NewMergeScheduler()

	ms.EnqueueMerge(MergeTask{Origin: vec.Vec3{X: 0, Y: 0, Z: 0}, Factor: 2, Priority: 300})
	ms.EnqueueMerge(MergeTask{Origin: vec.Vec3{X: 2, Y: 0, Z: 0}, Factor: 2, Priority: 100})
	ms.EnqueueMerge(MergeTask{Origin: vec.Vec3{X: 4, Y: 0, Z: 0}, Factor: 2, Priority: 200})

	tasks := ms.DequeueMerges(2)
	require.Len(t, tasks, 2, "Бюджет должен ограничивать число задач за тик")
	assert.Equal(t, 100.0, tasks[0].Priority, "Ближние регионы обрабатываются первыми")
	assert.Equal(t, 200.0, tasks[1].Priority)

	assert.Equal(t, 1, ms.Pending(), "Невместившаяся задача остаётся в очереди")
}
