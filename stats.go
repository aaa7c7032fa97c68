package reactloop

import "sync"

// ExecutionStats holds monotonically increasing counters for one run. Standard keys are
// prefixed with [KeyPrefix]; see stats_keys.go.
//
// All methods are safe for concurrent use so hooks may read stats while a run progresses.
type ExecutionStats struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewExecutionStats creates an empty ExecutionStats.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{
		counters: make(map[string]int64),
	}
}

// IncrCounter increments a counter by delta. Creates the counter if it doesn't exist.
//
// Panics if delta is negative (counters only go up).
// Protected keys (e.g., KeyIterations) are silently ignored.
func (s *ExecutionStats) IncrCounter(key string, delta int64) {
	if delta < 0 {
		panic("reactloop: IncrCounter called with negative delta")
	}
	if isProtectedKey(key) {
		return
	}
	s.incr(key, delta)
}

func (s *ExecutionStats) incr(key string, delta int64) {
	s.mu.Lock()
	s.counters[key] += delta
	s.mu.Unlock()
}

// GetCounter returns the current value of a counter, or 0 if not set.
func (s *ExecutionStats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Counters returns a copy of all counters.
func (s *ExecutionStats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		result[k] = v
	}
	return result
}

// GetIterations returns the number of iterations started.
func (s *ExecutionStats) GetIterations() int64 {
	return s.GetCounter(KeyIterations)
}

// GetToolCallCount returns the total number of tool calls.
func (s *ExecutionStats) GetToolCallCount() int64 {
	return s.GetCounter(KeyToolCalls)
}

// GetParseErrorCount returns the number of unparsable model outputs.
func (s *ExecutionStats) GetParseErrorCount() int64 {
	return s.GetCounter(KeyParseErrors)
}
