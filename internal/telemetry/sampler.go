package telemetry

import (
	"context"
	"sync"
	"time"
)

// DefaultProbeTimeout bounds a single probe call when none is configured.
const DefaultProbeTimeout = 1500 * time.Millisecond

// Sample is the combined result of one GPU and one host probe.
type Sample struct {
	GPU     GPUReading
	Host    HostMemory
	GPUErr  error
	HostErr error
}

// Degraded names the probes that failed ("gpu", "host").
func (s Sample) Degraded() []string {
	var out []string
	if s.GPUErr != nil {
		out = append(out, "gpu")
	}
	if s.HostErr != nil {
		out = append(out, "host")
	}
	return out
}

// Sampler runs probes with a per-call timeout. It never returns an error;
// failures are carried in the Sample.
type Sampler struct {
	gpu     GPUProbe
	host    HostProbe
	timeout time.Duration
}

// NewSampler wires the probes. A nil probe is reported as unavailable.
func NewSampler(gpu GPUProbe, host HostProbe, timeout time.Duration) *Sampler {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Sampler{gpu: gpu, host: host, timeout: timeout}
}

// Sample queries GPU and host memory concurrently.
func (s *Sampler) Sample(ctx context.Context) Sample {
	var out Sample
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.GPU, out.GPUErr = s.GPU(ctx)
	}()
	go func() {
		defer wg.Done()
		out.Host, out.HostErr = s.Host(ctx)
	}()
	wg.Wait()
	return out
}

// GPU runs the GPU probe alone.
func (s *Sampler) GPU(ctx context.Context) (GPUReading, error) {
	if s.gpu == nil {
		return GPUReading{}, ErrUnavailable("no gpu probe configured")
	}
	return bounded(ctx, s.timeout, s.gpu.ProbeGPU)
}

// Host runs the host probe alone.
func (s *Sampler) Host(ctx context.Context) (HostMemory, error) {
	if s.host == nil {
		return HostMemory{}, ErrUnavailable("no host probe configured")
	}
	return bounded(ctx, s.timeout, s.host.ProbeHost)
}

// bounded abandons fn once the timeout passes, even if fn ignores its context.
func bounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		if ctx.Err() == context.DeadlineExceeded {
			return zero, timeoutError{after: timeout}
		}
		return zero, ctx.Err()
	}
}
