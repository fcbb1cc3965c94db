package sim

import (
	"sync"
	"time"
)

// Pass — один дискретный проход тика. Проход декларирует, какие части
// общего состояния он читает и мутирует; планировщик гарантирует, что
// конфликтующие проходы не выполняются одновременно.
type Pass struct {
	Name   string
	Reads  []string
	Writes []string
	Fn     func(dt float64)
}

// conflictsWith проверяет, пересекаются ли наборы доступа двух проходов:
// запись против чтения или записи другого — конфликт
func (p Pass) conflictsWith(other Pass) bool {
	return intersects(p.Writes, other.Writes) ||
		intersects(p.Writes, other.Reads) ||
		intersects(p.Reads, other.Writes)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Pipeline — фиксированный конвейер проходов тика. Конфликтующие проходы
// выполняются строго в порядке регистрации; последовательные
// неконфликтующие проходы объединяются в пакет и выполняются параллельно.
type Pipeline struct {
	passes  []Pass
	batches [][]Pass // Ленивое разбиение на параллельные пакеты

	lastTickDuration time.Duration
}

// NewPipeline создаёт пустой конвейер
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Register добавляет проход в конец конвейера
func (pl *Pipeline) Register(pass Pass) {
	pl.passes = append(pl.passes, pass)
	pl.batches = nil
}

// PassNames возвращает имена проходов в порядке выполнения
func (pl *Pipeline) PassNames() []string {
	names := make([]string, len(pl.passes))
	for i, p := range pl.passes {
		names[i] = p.Name
	}
	return names
}

// buildBatches разбивает проходы на пакеты: проход попадает в текущий
// пакет, только если не конфликтует ни с одним проходом пакета
func (pl *Pipeline) buildBatches() {
	pl.batches = nil
	var batch []Pass

	for _, pass := range pl.passes {
		conflict := false
		for _, other := range batch {
			if pass.conflictsWith(other) {
				conflict = true
				break
			}
		}
		if conflict {
			pl.batches = append(pl.batches, batch)
			batch = nil
		}
		batch = append(batch, pass)
	}
	if len(batch) > 0 {
		pl.batches = append(pl.batches, batch)
	}
}

// Batches возвращает разбиение проходов на параллельные пакеты
// (имена проходов по пакетам)
func (pl *Pipeline) Batches() [][]string {
	if pl.batches == nil {
		pl.buildBatches()
	}
	out := make([][]string, len(pl.batches))
	for i, batch := range pl.batches {
		for _, p := range batch {
			out[i] = append(out[i], p.Name)
		}
	}
	return out
}

// Tick выполняет все проходы конвейера: пакеты последовательно,
// проходы внутри пакета параллельно
func (pl *Pipeline) Tick(dt float64) {
	if pl.batches == nil {
		pl.buildBatches()
	}

	start := time.Now()
	for _, batch := range pl.batches {
		if len(batch) == 1 {
			batch[0].Fn(dt)
			continue
		}

		var wg sync.WaitGroup
		for _, pass := range batch {
			wg.Add(1)
			go func(p Pass) {
				defer wg.Done()
				p.Fn(dt)
			}(pass)
		}
		wg.Wait()
	}
	pl.lastTickDuration = time.Since(start)
}

// LastTickDuration возвращает длительность последнего тика
func (pl *Pipeline) LastTickDuration() time.Duration {
	return pl.lastTickDuration
}
