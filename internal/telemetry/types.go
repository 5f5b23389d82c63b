// Package telemetry reads accelerator and host memory figures. Probes are
// query-only; the Sampler bounds every call with a timeout and reports
// failures as values so callers can degrade instead of failing.
package telemetry

import "context"

// GPUReading is one accelerator memory sample in MB.
type GPUReading struct {
	Name    string
	TotalMB int
	UsedMB  int
	FreeMB  int
}

// HostMemory is one host RAM sample. Percent is the used share, one decimal.
type HostMemory struct {
	TotalMB     int
	AvailableMB int
	Percent     float64
}

// GPUProbe queries accelerator memory.
type GPUProbe interface {
	ProbeGPU(ctx context.Context) (GPUReading, error)
}

// HostProbe queries host memory.
type HostProbe interface {
	ProbeHost(ctx context.Context) (HostMemory, error)
}
