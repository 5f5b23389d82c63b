package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"orcad/pkg/types"
)

// Device recommendations.
const (
	DeviceGPU  = "gpu"
	DeviceCPU  = "cpu"
	DeviceAuto = "auto"
)

// offlineProvider opts out of GPU placement regardless of fit.
const offlineProvider = "offline"

// AdviseDevice recommends a placement for model on provider. It refreshes
// telemetry and compares free VRAM against the estimated footprint plus
// headroom. Unknown sizes get "auto".
func (o *Orchestrator) AdviseDevice(ctx context.Context, model, provider string) types.Advice {
	st := o.Status(ctx)
	est := o.catalog.Estimate(model)
	free := st.Usage.Free
	adv := types.Advice{Safe: true, EstimatedMB: est, FreeMB: free}
	reason := fmt.Sprintf("Free VRAM: %dMB vs Est: %dMB", free, est)

	switch {
	case est == 0:
		adv.Device = DeviceAuto
		adv.Reason = "Unknown model size, use Auto"
	case float64(free) > float64(est)*o.headroom && !strings.EqualFold(provider, offlineProvider):
		adv.Device = DeviceGPU
		adv.Reason = "Fits comfortably. " + reason
	default:
		adv.Device = DeviceCPU
		adv.Reason = "Insufficient VRAM. " + reason
	}
	adviceTotal.WithLabelValues(adv.Device).Inc()
	o.log.Debug().Str("model", model).Str("provider", provider).Str("device", adv.Device).Int("est_mb", est).Int("free_mb", free).Msg("device advice")
	return adv
}
