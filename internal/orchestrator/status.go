package orchestrator

import (
	"context"
	"math"
	"slices"

	"orcad/pkg/types"
)

const unknownDevice = "Unknown"

// Status returns the telemetry snapshot. Within the cache window the
// hardware fields and timestamp are those of the previous sample and no probe
// runs. ActiveModels always reflects the live table.
func (o *Orchestrator) Status(ctx context.Context) types.StatusResponse {
	o.pruneStale()
	s, ok := o.cachedStatus()
	if !ok {
		// Shared across concurrent callers; one caller's cancellation must not
		// degrade the sample the others receive.
		v, _, _ := o.sf.Do("status", func() (any, error) {
			if s, ok := o.cachedStatus(); ok {
				return s, nil
			}
			return o.refresh(context.WithoutCancel(ctx)), nil
		})
		s = cloneStatus(v.(types.StatusResponse))
	}
	s.ActiveModels = o.ActiveModels()
	return s
}

func (o *Orchestrator) cachedStatus() (types.StatusResponse, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.cached == nil || o.now().Sub(o.cachedAt) >= o.cacheTTL {
		return types.StatusResponse{}, false
	}
	return cloneStatus(*o.cached), true
}

// refresh samples hardware and replaces the cached snapshot.
func (o *Orchestrator) refresh(ctx context.Context) types.StatusResponse {
	now := o.now()
	s := o.sampler.Sample(ctx)

	o.mu.RLock()
	tier, total := o.tier, o.totalMB
	o.mu.RUnlock()

	resp := types.StatusResponse{
		Tier:         string(tier),
		DeviceName:   unknownDevice,
		TotalVRAMMB:  total,
		Timestamp:    unixSeconds(now),
		Degraded:     s.Degraded(),
	}
	if s.GPUErr == nil {
		if s.GPU.Name != "" {
			resp.DeviceName = s.GPU.Name
		}
		resp.Usage.Used = s.GPU.UsedMB
		resp.Usage.Free = s.GPU.FreeMB
		if total > 0 {
			resp.Usage.Percent = round1(float64(s.GPU.UsedMB) / float64(total) * 100)
		}
		gpuUsedMB.Set(float64(s.GPU.UsedMB))
		gpuFreeMB.Set(float64(s.GPU.FreeMB))
	} else {
		o.log.Warn().Err(s.GPUErr).Msg("gpu telemetry degraded")
		telemetryDegraded.WithLabelValues("gpu").Inc()
	}
	if s.HostErr == nil {
		resp.RAM = types.RAMUsage{
			Total:     s.Host.TotalMB,
			Available: s.Host.AvailableMB,
			Percent:   s.Host.Percent,
		}
		hostRAMAvailableMB.Set(float64(s.Host.AvailableMB))
	} else {
		o.log.Warn().Err(s.HostErr).Msg("host telemetry degraded")
		telemetryDegraded.WithLabelValues("host").Inc()
	}

	o.mu.Lock()
	o.cached = &resp
	o.cachedAt = now
	o.mu.Unlock()
	return cloneStatus(resp)
}

func cloneStatus(s types.StatusResponse) types.StatusResponse {
	s.Degraded = slices.Clone(s.Degraded)
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
