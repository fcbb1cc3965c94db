package world

import (
	"sort"
	"sync"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
)

// ChunkStore владеет всеми чанками мира, ключ — целочисленная координата чанка.
// Чанки создаются лениво при первом обращении; поиск никогда не падает с ошибкой.
// Контекст хранилища передаётся в подсистемы явно, без глобального состояния.
type ChunkStore struct {
	chunks    map[vec.Vec3]*Chunk
	generator *TerrainGenerator
	mu        sync.RWMutex

	maxChunks int // Лимит резидентных чанков; 0 — без лимита
	events    *EventSink
}

// NewChunkStore создаёт хранилище чанков с указанным генератором
func NewChunkStore(generator *TerrainGenerator, maxChunks int) *ChunkStore {
	return &ChunkStore{
		chunks:    make(map[vec.Vec3]*Chunk),
		generator: generator,
		maxChunks: maxChunks,
	}
}

// SetEventSink подключает канал событий мира
func (cs *ChunkStore) SetEventSink(events *EventSink) {
	cs.events = events
}

// Generator возвращает генератор ландшафта хранилища
func (cs *ChunkStore) Generator() *TerrainGenerator {
	return cs.generator
}

// GetOrCreate возвращает чанк по координатам, генерируя его при первом запросе
func (cs *ChunkStore) GetOrCreate(coords vec.Vec3) *Chunk {
	cs.mu.RLock()
	chunk, exists := cs.chunks[coords]
	cs.mu.RUnlock()

	if exists {
		chunk.Touch()
		return chunk
	}

	cs.mu.Lock()
	// Проверяем еще раз под блокировкой записи
	chunk, exists = cs.chunks[coords]
	if !exists {
		chunk = cs.generator.GenerateChunk(coords)
		cs.chunks[coords] = chunk
		if cs.events != nil {
			cs.events.Publish(ChunkEvent{EventType: EventTypeChunkGenerated, Coords: coords})
		}
	}
	cs.mu.Unlock()

	chunk.Touch()
	return chunk
}

// GetIfLoaded возвращает чанк, только если он уже резидентен.
// Отсутствующий чанк — не ошибка, а "нет данных".
func (cs *ChunkStore) GetIfLoaded(coords vec.Vec3) (*Chunk, bool) {
	cs.mu.RLock()
	chunk, exists := cs.chunks[coords]
	cs.mu.RUnlock()

	if exists {
		chunk.Touch()
	}
	return chunk, exists
}

// Count возвращает число резидентных чанков
func (cs *ChunkStore) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Coords возвращает координаты всех резидентных чанков
func (cs *ChunkStore) Coords() []vec.Vec3 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	coords := make([]vec.Vec3, 0, len(cs.chunks))
	for c := range cs.chunks {
		coords = append(coords, c)
	}
	return coords
}

// DirtyChunks возвращает чанки, помеченные для перестройки меша
func (cs *ChunkStore) DirtyChunks() []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	var dirty []*Chunk
	for _, chunk := range cs.chunks {
		if chunk.IsDirty() {
			dirty = append(dirty, chunk)
		}
	}
	return dirty
}

// MaterialAt возвращает материал по глобальной воксельной координате.
// Нерезидентный чанк трактуется как воздух ("нет попадания").
func (cs *ChunkStore) MaterialAt(voxel vec.Vec3) VoxelMaterial {
	chunk, ok := cs.GetIfLoaded(voxel.ToChunkCoords(ChunkSize))
	if !ok {
		return MaterialAir
	}
	return chunk.MaterialAt(voxel.LocalInChunk(ChunkSize))
}

// IsSolidAt проверяет твёрдость вокселя по глобальной координате
func (cs *ChunkStore) IsSolidAt(voxel vec.Vec3) bool {
	return cs.MaterialAt(voxel).IsSolid()
}

// SetVoxelAt устанавливает материал по глобальной воксельной координате,
// создавая чанк при необходимости
func (cs *ChunkStore) SetVoxelAt(voxel vec.Vec3, m VoxelMaterial) {
	chunk := cs.GetOrCreate(voxel.ToChunkCoords(ChunkSize))
	chunk.SetVoxel(voxel.LocalInChunk(ChunkSize), m)
}

// Evict выгружает наименее давно использованные чанки сверх лимита.
// Грязные чанки не выгружаются: их мутации ещё не забрал экстрактор мешей.
// Возвращает число выгруженных чанков.
func (cs *ChunkStore) Evict() int {
	if cs.maxChunks <= 0 {
		return 0
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	excess := len(cs.chunks) - cs.maxChunks
	if excess <= 0 {
		return 0
	}

	type candidate struct {
		coords vec.Vec3
		chunk  *Chunk
	}

	candidates := make([]candidate, 0, len(cs.chunks))
	for coords, chunk := range cs.chunks {
		if chunk.IsDirty() {
			continue
		}
		candidates = append(candidates, candidate{coords, chunk})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].chunk.LastAccessed().Before(candidates[j].chunk.LastAccessed())
	})

	evicted := 0
	for _, c := range candidates {
		if evicted >= excess {
			break
		}
		delete(cs.chunks, c.coords)
		logging.LogChunkEvicted(c.coords.X, c.coords.Y, c.coords.Z)
		evicted++
	}

	return evicted
}
