package simulator

import "time"

// BackendInfo provides metadata about a quantum backend implementation.
type BackendInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Vendor       string            `json:"vendor"`
	Capabilities map[string]bool   `json:"capabilities"`
	Metadata     map[string]string `json:"metadata"`
}

// ExecutionMetrics contains cumulative performance and execution statistics
// a backend may choose to expose across the shots it has served.
type ExecutionMetrics struct {
	TotalExecutions int64         `json:"total_executions"`
	SuccessfulRuns  int64         `json:"successful_runs"`
	FailedRuns      int64         `json:"failed_runs"`
	AverageTime     time.Duration `json:"average_time"`
	TotalTime       time.Duration `json:"total_time"`
	LastError       string        `json:"last_error,omitempty"`
	LastRunTime     time.Time     `json:"last_run_time"`
}

// Optional capability interfaces a Backend may additionally implement.
// qc/benchmark probes for these with the Get* helpers below rather
// than requiring every backend to carry them.

// BackendProvider exposes metadata about the backend.
type BackendProvider interface {
	GetBackendInfo() BackendInfo
}

// MetricsCollector provides execution metrics and statistics.
type MetricsCollector interface {
	GetMetrics() ExecutionMetrics
	ResetMetrics()
}

// ValidatingRunner can report which gate names a backend supports.
type ValidatingRunner interface {
	GetSupportedGates() []string
}

// SupportsMetrics checks if a backend provides execution metrics.
func SupportsMetrics(b Backend) bool {
	_, ok := b.(MetricsCollector)
	return ok
}

// SupportsValidation checks if a backend can report its supported gates.
func SupportsValidation(b Backend) bool {
	_, ok := b.(ValidatingRunner)
	return ok
}

// SupportsBackendInfo checks if a backend provides descriptive metadata.
func SupportsBackendInfo(b Backend) bool {
	_, ok := b.(BackendProvider)
	return ok
}

// GetBackendInfo safely gets backend information if available.
func GetBackendInfo(b Backend) *BackendInfo {
	if provider, ok := b.(BackendProvider); ok {
		info := provider.GetBackendInfo()
		return &info
	}
	return nil
}

// GetMetrics safely gets execution metrics if the backend collects them.
func GetMetrics(b Backend) *ExecutionMetrics {
	if collector, ok := b.(MetricsCollector); ok {
		metrics := collector.GetMetrics()
		return &metrics
	}
	return nil
}

// GetSupportedGates safely gets the backend's supported gate names if it
// reports them.
func GetSupportedGates(b Backend) []string {
	if validator, ok := b.(ValidatingRunner); ok {
		return validator.GetSupportedGates()
	}
	return nil
}
