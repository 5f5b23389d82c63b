package orchestrator

import "context"

// Tier thresholds in MB, calibrated to consumer cards: 8-12 GB is LOW,
// 16 GB is MID, 24 GB and up is HIGH.
const (
	lowTierMaxMB = 12500
	midTierMaxMB = 20000
)

// DetermineTier maps total VRAM to a tier. Zero or unknown capacity is LOW.
func DetermineTier(totalMB int) Tier {
	switch {
	case totalMB <= lowTierMaxMB:
		return TierLow
	case totalMB <= midTierMaxMB:
		return TierMid
	default:
		return TierHigh
	}
}

// SetTotalMemory records capacity and recomputes the tier.
func (o *Orchestrator) SetTotalMemory(totalMB int) Tier {
	if totalMB < 0 {
		totalMB = 0
	}
	t := DetermineTier(totalMB)
	o.mu.Lock()
	o.totalMB = totalMB
	o.tier = t
	o.detected = true
	o.mu.Unlock()

	gpuTier.Set(float64(t.Level()))
	gpuTotalMB.Set(float64(totalMB))
	o.log.Info().Str("tier", string(t)).Int("total_vram_mb", totalMB).Msg("gpu tier set")
	o.publish("tier_set", "", map[string]any{"tier": string(t), "total_vram_mb": totalMB})
	return t
}

// Detect reads capacity from the GPU probe. A configured override wins.
// Probe failure degrades to 0 MB, which classifies as LOW.
func (o *Orchestrator) Detect(ctx context.Context) Tier {
	o.mu.RLock()
	override, total := o.override, o.totalMB
	o.mu.RUnlock()
	if override {
		return o.SetTotalMemory(total)
	}
	r, err := o.sampler.GPU(ctx)
	if err != nil {
		o.log.Warn().Err(err).Msg("gpu capacity detection failed; assuming least capable hardware")
		telemetryDegraded.WithLabelValues("gpu").Inc()
		return o.SetTotalMemory(0)
	}
	o.log.Info().Str("device", r.Name).Int("total_vram_mb", r.TotalMB).Msg("gpu detected")
	return o.SetTotalMemory(r.TotalMB)
}
