package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"orcad/internal/telemetry"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// countingGPU returns a fixed reading and counts calls.
type countingGPU struct {
	reading telemetry.GPUReading
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (g *countingGPU) ProbeGPU(ctx context.Context) (telemetry.GPUReading, error) {
	g.calls.Add(1)
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	if g.err != nil {
		return telemetry.GPUReading{}, g.err
	}
	return g.reading, nil
}

// fakeUnloader records unload calls.
type fakeUnloader struct {
	mu       sync.Mutex
	running  []string
	listErr  error
	failOn   map[string]bool
	unloaded []string
}

func (f *fakeUnloader) RunningModels(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.running...), nil
}

func (f *fakeUnloader) Unload(ctx context.Context, model string) error {
	if f.failOn[model] {
		return errors.New("unload refused")
	}
	f.mu.Lock()
	f.unloaded = append(f.unloaded, model)
	f.mu.Unlock()
	return nil
}

func (f *fakeUnloader) Unloaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.unloaded...)
}

// newTestOrchestrator builds an orchestrator with a fixed capacity, a fake
// clock and a 16 GB GPU probe reporting freeMB free.
func newTestOrchestrator(t *testing.T, totalMB, freeMB int) (*Orchestrator, *fakeClock, *countingGPU) {
	t.Helper()
	clk := newFakeClock()
	gpu := &countingGPU{reading: telemetry.GPUReading{Name: "Test GPU", TotalMB: totalMB, UsedMB: totalMB - freeMB, FreeMB: freeMB}}
	o := NewWithConfig(Config{
		GPU:           gpu,
		Host:          telemetry.StaticHost{Memory: telemetry.HostMemory{TotalMB: 32000, AvailableMB: 16000, Percent: 50}},
		TotalMemoryMB: totalMB,
		Now:           clk.Now,
	})
	return o, clk, gpu
}
