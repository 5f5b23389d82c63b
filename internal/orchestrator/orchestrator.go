package orchestrator

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"orcad/internal/telemetry"
	"orcad/pkg/types"
)

type Orchestrator struct {
	mu       sync.RWMutex
	tier     Tier
	totalMB  int
	detected bool
	override bool
	active   map[string]activeEntry
	cached   *types.StatusResponse
	cachedAt time.Time

	sampler  *telemetry.Sampler
	sf       singleflight.Group
	unloader Unloader
	catalog  *FootprintCatalog

	cacheTTL         time.Duration
	evictConflicting bool
	evictTimeout     time.Duration
	activeTTL        time.Duration
	defaultKeepAlive types.KeepAlive
	headroom         float64

	publisher EventPublisher
	log       zerolog.Logger
	now       func() time.Time
}

// New builds an Orchestrator over the given probes with default tunables.
func New(gpu telemetry.GPUProbe, host telemetry.HostProbe) *Orchestrator {
	return NewWithConfig(Config{GPU: gpu, Host: host})
}

// Tier returns the current operating tier.
func (o *Orchestrator) Tier() Tier {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.tier
}

// TotalMemoryMB returns the last detected (or overridden) capacity.
func (o *Orchestrator) TotalMemoryMB() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.totalMB
}

// Ready reports whether capacity has been detected or overridden.
func (o *Orchestrator) Ready() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.detected
}

// ActiveModels returns a copy of the live active-model table.
func (o *Orchestrator) ActiveModels() map[string]types.ActiveModel {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.activeSnapshotLocked()
}

func (o *Orchestrator) activeSnapshotLocked() map[string]types.ActiveModel {
	out := make(map[string]types.ActiveModel, len(o.active))
	for name, e := range o.active {
		out[name] = types.ActiveModel{Type: string(e.modelType), LastActive: unixSeconds(e.lastActive)}
	}
	return out
}

// unixSeconds renders t as fractional unix seconds.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
