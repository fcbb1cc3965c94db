package vec

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -4, Y: 5, Z: -6}

	sum := a.Add(b)
	if sum.X != -3 || sum.Y != 7 || sum.Z != -3 {
		t.Errorf("Ожидалась сумма {-3,7,-3}, получено %+v", sum)
	}

	diff := a.Sub(b)
	if diff.X != 5 || diff.Y != -3 || diff.Z != 9 {
		t.Errorf("Ожидалась разность {5,-3,9}, получено %+v", diff)
	}

	scaled := a.Mul(3)
	if scaled.X != 3 || scaled.Y != 6 || scaled.Z != 9 {
		t.Errorf("Ожидалось {3,6,9}, получено %+v", scaled)
	}
}

func TestToChunkCoordsNegative(t *testing.T) {
	// Отрицательные координаты должны округляться вниз, а не к нулю
	cases := []struct {
		voxel Vec3
		chunk Vec3
		local Vec3
	}{
		{Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 0}},
		{Vec3{X: 31, Y: 31, Z: 31}, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 31, Y: 31, Z: 31}},
		{Vec3{X: 32, Y: 0, Z: 0}, Vec3{X: 1, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 0}},
		{Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 31, Y: 31, Z: 31}},
		{Vec3{X: -32, Y: 0, Z: 0}, Vec3{X: -1, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 0}},
		{Vec3{X: -33, Y: 0, Z: 0}, Vec3{X: -2, Y: 0, Z: 0}, Vec3{X: 31, Y: 0, Z: 0}},
	}

	for _, c := range cases {
		chunk := c.voxel.ToChunkCoords(32)
		if !chunk.Equals(c.chunk) {
			t.Errorf("Воксель %+v: ожидался чанк %+v, получен %+v", c.voxel, c.chunk, chunk)
		}
		local := c.voxel.LocalInChunk(32)
		if !local.Equals(c.local) {
			t.Errorf("Воксель %+v: ожидались локальные %+v, получены %+v", c.voxel, c.local, local)
		}
	}
}

func TestChunkLocalRoundTrip(t *testing.T) {
	// chunk*edge + local должно восстанавливать исходный воксель
	for _, v := range []Vec3{
		{X: 100, Y: -50, Z: 7},
		{X: -1, Y: -100, Z: 1000},
		{X: 0, Y: 0, Z: 0},
	} {
		chunk := v.ToChunkCoords(32)
		local := v.LocalInChunk(32)
		restored := chunk.Mul(32).Add(local)
		if !restored.Equals(v) {
			t.Errorf("Раунд-трип для %+v дал %+v", v, restored)
		}
	}
}

func TestVec3FloatNormalized(t *testing.T) {
	v := Vec3Float{X: 3, Y: 0, Z: 4}
	n := v.Normalized()
	if math.Abs(n.Length()-1.0) > 1e-9 {
		t.Errorf("Ожидалась единичная длина, получено %f", n.Length())
	}

	// Нулевой вектор не должен давать NaN
	zero := Vec3Float{}.Normalized()
	if zero.X != 0 || zero.Y != 0 || zero.Z != 0 {
		t.Errorf("Нормализация нулевого вектора должна давать ноль, получено %+v", zero)
	}
}

func TestToVoxelFloor(t *testing.T) {
	cases := []struct {
		pos   Vec3Float
		voxel Vec3
	}{
		{Vec3Float{X: 0.05, Y: 0.15, Z: 0.25}, Vec3{X: 0, Y: 1, Z: 2}},
		{Vec3Float{X: -0.05, Y: -0.15, Z: 0}, Vec3{X: -1, Y: -2, Z: 0}},
		{Vec3Float{X: 0.1, Y: 0.2, Z: 0.35}, Vec3{X: 1, Y: 2, Z: 3}},
	}

	for _, c := range cases {
		got := c.pos.ToVoxel(0.1)
		if !got.Equals(c.voxel) {
			t.Errorf("Позиция %+v: ожидался воксель %+v, получен %+v", c.pos, c.voxel, got)
		}
	}
}

func TestDistanceTo(t *testing.T) {
	a := Vec3Float{X: 1, Y: 2, Z: 3}
	b := Vec3Float{X: 4, Y: 6, Z: 3}
	if d := a.DistanceTo(b); math.Abs(d-5.0) > 1e-9 {
		t.Errorf("Ожидалось расстояние 5.0, получено %f", d)
	}
}
