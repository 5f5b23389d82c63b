package telemetry

import "context"

// StaticGPU returns a fixed reading. Used for capacity overrides and tests.
type StaticGPU struct {
	Reading GPUReading
	Err     error
}

func (s StaticGPU) ProbeGPU(ctx context.Context) (GPUReading, error) {
	if s.Err != nil {
		return GPUReading{}, s.Err
	}
	return s.Reading, nil
}

// StaticHost returns a fixed host reading.
type StaticHost struct {
	Memory HostMemory
	Err    error
}

func (s StaticHost) ProbeHost(ctx context.Context) (HostMemory, error) {
	if s.Err != nil {
		return HostMemory{}, s.Err
	}
	return s.Memory, nil
}
