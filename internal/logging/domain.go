package logging

// Доменные хелперы логирования для движка ландшафта.

// LogChunkGenerated логирует генерацию чанка
func LogChunkGenerated(x, y, z int, durationMs float64) {
	Debug("Чанк (%d,%d,%d) сгенерирован за %.2f мс", x, y, z, durationMs)
}

// LogMeshExtracted логирует перестройку меша чанка
func LogMeshExtracted(x, y, z int, vertices, indices int) {
	Trace("Меш чанка (%d,%d,%d): %d вершин, %d индексов", x, y, z, vertices, indices)
}

// LogVoxelBroken логирует разрушение вокселя
func LogVoxelBroken(material string, x, y, z int, drops uint32) {
	Debug("Разрушен воксель %s в (%d,%d,%d), дропов: %d", material, x, y, z, drops)
}

// LogDropCollected логирует подбор дропа игроком
func LogDropCollected(material string, quantity uint32) {
	Debug("Подобран дроп %s x%d", material, quantity)
}

// LogChunkEvicted логирует выгрузку чанка из памяти
func LogChunkEvicted(x, y, z int) {
	Trace("Чанк (%d,%d,%d) выгружен из хранилища", x, y, z)
}
