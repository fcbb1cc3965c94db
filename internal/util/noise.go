package util

import (
	"github.com/aquilax/go-perlin"
)

// NoiseGenerator оборачивает генератор шума Перлина с фиксированным сидом.
// Один и тот же сид всегда даёт один и тот же шум — это требование
// детерминированности генерации ландшафта.
type NoiseGenerator struct {
	perlin *perlin.Perlin
	seed   int64
}

// NewNoiseGenerator создаёт генератор шума Перлина с указанным сидом
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав

	return &NoiseGenerator{
		perlin: perlin.NewPerlin(alpha, beta, n, seed),
		seed:   seed,
	}
}

// Seed возвращает сид генератора
func (ng *NoiseGenerator) Seed() int64 {
	return ng.seed
}

// Noise2D возвращает значение шума Перлина в диапазоне [-1, 1]
func (ng *NoiseGenerator) Noise2D(x, y float64) float64 {
	return ng.perlin.Noise2D(x, y)
}

// Noise2DNorm возвращает значение шума Перлина в диапазоне [0, 1]
func (ng *NoiseGenerator) Noise2DNorm(x, y float64) float64 {
	return (ng.perlin.Noise2D(x, y) + 1.0) / 2.0
}
