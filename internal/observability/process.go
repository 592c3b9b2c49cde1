package observability

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats содержит снимок ресурсов процесса
type ProcessStats struct {
	RSSMB      float64 // Резидентная память, MB
	HeapMB     float64 // Выделено в куче Go, MB
	CPUPercent float64 // Загрузка CPU процессом с момента старта
	Goroutines int
}

// String возвращает краткое описание снимка
func (s ProcessStats) String() string {
	return fmt.Sprintf("rss=%.1fMB heap=%.1fMB cpu=%.1f%% goroutines=%d",
		s.RSSMB, s.HeapMB, s.CPUPercent, s.Goroutines)
}

// CollectProcessStats снимает текущие показатели процесса
func CollectProcessStats() (ProcessStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := ProcessStats{
		HeapMB:     float64(m.Alloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("open process: %w", err)
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("memory info: %w", err)
	}
	stats.RSSMB = float64(mem.RSS) / 1024 / 1024

	cpu, err := proc.CPUPercent()
	if err != nil {
		return stats, fmt.Errorf("cpu percent: %w", err)
	}
	stats.CPUPercent = cpu

	return stats, nil
}
