package monitoring

import (
	"sync"
	"time"
)

// Monitor collects session metrics around inventory size and plan
// generation outcomes.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// SetInventorySize records the current number of tracked ingredients.
func (m *Monitor) SetInventorySize(n int) {
	m.RecordMetric("inventory_size", n)
}

// RecordPlanGenerated records a successful generation request.
func (m *Monitor) RecordPlanGenerated(model string, days int, duration time.Duration) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	count, _ := m.metrics["plans_generated"].(int)
	m.metrics["plans_generated"] = count + 1
	m.metrics["last_plan_model"] = model
	m.metrics["last_plan_days"] = days
	m.metrics["last_plan_duration_seconds"] = duration.Seconds()
	m.metrics["last_plan_at"] = time.Now().Format(time.RFC3339)
}

// RecordPlanFailed records a failed generation request.
func (m *Monitor) RecordPlanFailed() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	count, _ := m.metrics["plans_failed"].(int)
	m.metrics["plans_failed"] = count + 1
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}
