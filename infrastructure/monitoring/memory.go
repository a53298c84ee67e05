// Package monitoring watches process memory for unbounded growth.
package monitoring

import (
	"fmt"
	"runtime"
	"sync"

	infragin "github.com/jonesrussell/north-cloud/social-planner/infrastructure/gin"
)

const bytesPerMB = 1024 * 1024

// Snapshot is the part of the runtime state the monitor compares.
type Snapshot struct {
	HeapAlloc    uint64
	NumGoroutine int
}

// MemoryMonitor reports heap or goroutine growth beyond threshold times the
// baseline, e.g. 3.0 for a tripling.
type MemoryMonitor struct {
	mu        sync.RWMutex
	threshold float64
	baseline  Snapshot
	snapshot  func() Snapshot
}

// NewMemoryMonitor creates a monitor. Call EstablishBaseline once the
// service has warmed up.
func NewMemoryMonitor(threshold float64) *MemoryMonitor {
	return &MemoryMonitor{threshold: threshold, snapshot: takeSnapshot}
}

func takeSnapshot() Snapshot {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return Snapshot{HeapAlloc: stats.Alloc, NumGoroutine: runtime.NumGoroutine()}
}

// EstablishBaseline records the current state after a GC.
func (m *MemoryMonitor) EstablishBaseline() {
	runtime.GC()
	s := m.snapshot()

	m.mu.Lock()
	m.baseline = s
	m.mu.Unlock()
}

// CheckForLeaks compares the current state to the baseline. Without a
// baseline nothing is reported.
func (m *MemoryMonitor) CheckForLeaks() (leaked bool, report string) {
	m.mu.RLock()
	base := m.baseline
	m.mu.RUnlock()

	if base.HeapAlloc == 0 || base.NumGoroutine == 0 {
		return false, ""
	}
	now := m.snapshot()

	if growth := float64(now.HeapAlloc) / float64(base.HeapAlloc); growth > m.threshold {
		return true, fmt.Sprintf("heap grew %.2fx (%.2f MB to %.2f MB)",
			growth, float64(base.HeapAlloc)/bytesPerMB, float64(now.HeapAlloc)/bytesPerMB)
	}
	if growth := float64(now.NumGoroutine) / float64(base.NumGoroutine); growth > m.threshold {
		return true, fmt.Sprintf("goroutines grew %.2fx (%d to %d)", growth, base.NumGoroutine, now.NumGoroutine)
	}
	return false, ""
}

// Checker reports the monitor on GET /health.
func (m *MemoryMonitor) Checker() infragin.HealthChecker {
	return func() infragin.CheckResult {
		if leaked, report := m.CheckForLeaks(); leaked {
			return infragin.CheckResult{Status: infragin.HealthStatusUnhealthy, Message: report}
		}
		s := m.snapshot()
		return infragin.CheckResult{
			Status:  infragin.HealthStatusHealthy,
			Message: fmt.Sprintf("heap %.2f MB, %d goroutines", float64(s.HeapAlloc)/bytesPerMB, s.NumGoroutine),
		}
	}
}
