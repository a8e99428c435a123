package utils

import (
	"math"
	"runtime"
)

// MemUsage returns heap statistics in MiB as alternating keys and values for structured logging
func MemUsage() []any {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return []any{"allocMiB", bToMb(m.Alloc), "totalAllocMiB", bToMb(m.TotalAlloc), "sysMiB", bToMb(m.Sys),
		"numGC", m.NumGC}
}

// IndexNonFinite returns the position of the first NaN or Inf in v, or -1
func IndexNonFinite(v []float64) int {
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i
		}
	}
	return -1
}
