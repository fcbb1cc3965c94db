package mesh

import (
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
)

// Mesh — треугольная сетка чанка: позиции, нормали и список индексов.
// Потребляется рендером и физическим коллабортором (построение коллайдеров).
// Пустой меш (ноль вершин) — валидный результат, а не ошибка.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// VertexCount возвращает число вершин
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount возвращает число треугольников
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty возвращает true для меша без геометрии
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// mergedEntry — меш объединённого региона вместе с его фактором:
// фактор нужен, чтобы при смене уровня находить перекрывающиеся регионы
type mergedEntry struct {
	mesh   *Mesh
	factor int
}

// Registry хранит актуальные меши чанков для рендера.
// Замена хендла атомарна: читатели видят либо старый, либо новый меш целиком.
type Registry struct {
	mu     sync.RWMutex
	chunks map[vec.Vec3]*Mesh
	merged map[vec.Vec3]mergedEntry // Ключ — угол объединённого региона
}

// NewRegistry создаёт пустой регистр мешей
func NewRegistry() *Registry {
	return &Registry{
		chunks: make(map[vec.Vec3]*Mesh),
		merged: make(map[vec.Vec3]mergedEntry),
	}
}

// Swap заменяет меш базового чанка
func (r *Registry) Swap(coords vec.Vec3, m *Mesh) {
	r.mu.Lock()
	r.chunks[coords] = m
	r.mu.Unlock()
}

// Get возвращает текущий меш базового чанка
func (r *Registry) Get(coords vec.Vec3) (*Mesh, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.chunks[coords]
	return m, ok
}

// SwapMerged заменяет меш объединённого региона, скрывает меши базовых
// чанков, которые он покрывает, и убирает устаревшие объединённые меши,
// чей регион пересекается с новым: при переходе между уровнями объединения
// старый регион вложен в новый (или наоборот) и не должен рендериться дважды
func (r *Registry) SwapMerged(origin vec.Vec3, factor int, covered []vec.Vec3, m *Mesh) {
	r.mu.Lock()
	for o, e := range r.merged {
		if o != origin && regionsOverlap(origin, factor, o, e.factor) {
			delete(r.merged, o)
		}
	}
	r.merged[origin] = mergedEntry{mesh: m, factor: factor}
	for _, c := range covered {
		delete(r.chunks, c)
	}
	r.mu.Unlock()
}

// regionsOverlap проверяет пересечение двух выровненных регионов
// объединения [o, o+f) в координатах чанков
func regionsOverlap(o1 vec.Vec3, f1 int, o2 vec.Vec3, f2 int) bool {
	return o1.X < o2.X+f2 && o2.X < o1.X+f1 &&
		o1.Y < o2.Y+f2 && o2.Y < o1.Y+f1 &&
		o1.Z < o2.Z+f2 && o2.Z < o1.Z+f1
}

// DropMerged удаляет меш объединённого региона (при разбиении)
func (r *Registry) DropMerged(origin vec.Vec3) {
	r.mu.Lock()
	delete(r.merged, origin)
	r.mu.Unlock()
}

// GetMerged возвращает меш объединённого региона
func (r *Registry) GetMerged(origin vec.Vec3) (*Mesh, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.merged[origin]
	return e.mesh, ok
}

// Count возвращает число мешей (базовых и объединённых)
func (r *Registry) Count() (chunks int, merged int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks), len(r.merged)
}
