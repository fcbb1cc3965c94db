package sim

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder потокобезопасно записывает порядок выполнения проходов
type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	r.order = append(r.order, name)
	r.mu.Unlock()
}

func TestPipelineConflictingPassesSequential(t *testing.T) {
	rec := &recorder{}
	pl := NewPipeline()

	// Все три прохода пишут один ресурс — порядок строго регистрационный
	for _, name := range []string{"first", "second", "third"} {
		n := name
		pl.Register(Pass{
			Name:   n,
			Writes: []string{"state"},
			Fn:     func(dt float64) { rec.add(n) },
		})
	}

	pl.Tick(0.016)
	assert.Equal(t, []string{"first", "second", "third"}, rec.order,
		"Конфликтующие проходы выполняются в порядке регистрации")
}

func TestPipelineIndependentPassesBatched(t *testing.T) {
	pl := NewPipeline()

	pl.Register(Pass{Name: "a", Writes: []string{"x"}, Fn: func(dt float64) {}})
	pl.Register(Pass{Name: "b", Writes: []string{"y"}, Fn: func(dt float64) {}})
	pl.Register(Pass{Name: "c", Reads: []string{"x"}, Fn: func(dt float64) {}})

	batches := pl.Batches()
	require.Len(t, batches, 2, "Независимые a и b в одном пакете, c — в следующем")
	assert.Equal(t, []string{"a", "b"}, batches[0], "Проходы без общих ресурсов объединяются")
	assert.Equal(t, []string{"c"}, batches[1], "Чтение после записи разрывает пакет")
}

func TestPipelineReadersShareBatch(t *testing.T) {
	pl := NewPipeline()

	// Несколько читателей одного ресурса не конфликтуют между собой
	pl.Register(Pass{Name: "r1", Reads: []string{"terrain"}, Fn: func(dt float64) {}})
	pl.Register(Pass{Name: "r2", Reads: []string{"terrain"}, Fn: func(dt float64) {}})
	pl.Register(Pass{Name: "w", Writes: []string{"terrain"}, Fn: func(dt float64) {}})

	batches := pl.Batches()
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"r1", "r2"}, batches[0], "Читатели делят пакет")
	assert.Equal(t, []string{"w"}, batches[1], "Писатель ждёт читателей")
}

func TestPipelineParallelBatchCompletes(t *testing.T) {
	rec := &recorder{}
	pl := NewPipeline()

	pl.Register(Pass{Name: "left", Writes: []string{"a"}, Fn: func(dt float64) { rec.add("left") }})
	pl.Register(Pass{Name: "right", Writes: []string{"b"}, Fn: func(dt float64) { rec.add("right") }})
	pl.Register(Pass{Name: "after", Reads: []string{"a", "b"}, Fn: func(dt float64) { rec.add("after") }})

	pl.Tick(0.016)

	require.Len(t, rec.order, 3, "Все проходы должны выполниться")
	assert.Equal(t, "after", rec.order[2], "Зависимый проход выполняется после пакета")
}

func TestPipelineDtPropagated(t *testing.T) {
	var got float64
	pl := NewPipeline()
	pl.Register(Pass{Name: "p", Fn: func(dt float64) { got = dt }})

	pl.Tick(0.25)
	assert.Equal(t, 0.25, got, "dt должен передаваться в проход")
}

func TestEnginePassOrdering(t *testing.T) {
	// Инварианты порядка тика: цель до прогресса, разрушение до
	// симуляции дропов, подбор до устаревания
	e := newBareEngine()
	names := e.Pipeline.PassNames()

	idx := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		t.Fatalf("Проход %s не зарегистрирован", name)
		return -1
	}

	assert.Less(t, idx("break.target"), idx("break.advance"), "Цель определяется до накопления прогресса")
	assert.Less(t, idx("break.advance"), idx("drops.simulate"), "Разрушение завершается до симуляции дропов")
	assert.Less(t, idx("drops.simulate"), idx("drops.collect"), "Симуляция до подбора")
	assert.Less(t, idx("drops.collect"), idx("drops.age"), "Подбор до устаревания")
}
