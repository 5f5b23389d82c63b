package orchestrator

import (
	"time"

	"github.com/rs/zerolog"

	"orcad/internal/telemetry"
	"orcad/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultStatusCacheTTL = 1 * time.Second
	defaultEvictTimeout   = 5 * time.Second
	defaultHeadroomFactor = 1.2
)

// Config encapsulates all tunables for Orchestrator construction.
type Config struct {
	GPU  telemetry.GPUProbe
	Host telemetry.HostProbe
	// Unloader is the downstream host used for eviction; nil disables it.
	Unloader  Unloader
	Publisher EventPublisher
	Logger    *zerolog.Logger

	// TotalMemoryMB overrides detection when > 0.
	TotalMemoryMB  int
	StatusCacheTTL time.Duration
	ProbeTimeout   time.Duration

	// EvictConflicting turns the LOW-tier unload policy from advisory into
	// real unload requests against Unloader.
	EvictConflicting bool
	EvictTimeout     time.Duration

	// ActiveModelTTL prunes entries idle longer than this; 0 keeps them forever.
	ActiveModelTTL time.Duration

	DefaultKeepAlive types.KeepAlive
	HeadroomFactor   float64
	// Footprints maps exact model names to estimated MB.
	Footprints map[string]int

	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewWithConfig constructs an Orchestrator from Config. It performs no I/O;
// call Detect to read capacity from the GPU unless TotalMemoryMB is set.
func NewWithConfig(cfg Config) *Orchestrator {
	o := &Orchestrator{
		tier:             TierLow,
		active:           make(map[string]activeEntry),
		sampler:          telemetry.NewSampler(cfg.GPU, cfg.Host, cfg.ProbeTimeout),
		unloader:         cfg.Unloader,
		evictConflicting: cfg.EvictConflicting,
		activeTTL:        cfg.ActiveModelTTL,
		catalog:          NewFootprintCatalog(cfg.Footprints),
	}
	// Apply defaults if unset
	if cfg.StatusCacheTTL <= 0 {
		o.cacheTTL = defaultStatusCacheTTL
	} else {
		o.cacheTTL = cfg.StatusCacheTTL
	}
	if cfg.EvictTimeout <= 0 {
		o.evictTimeout = defaultEvictTimeout
	} else {
		o.evictTimeout = cfg.EvictTimeout
	}
	if cfg.HeadroomFactor <= 0 {
		o.headroom = defaultHeadroomFactor
	} else {
		o.headroom = cfg.HeadroomFactor
	}
	if cfg.DefaultKeepAlive == "" {
		o.defaultKeepAlive = types.KeepAliveDefault
	} else {
		o.defaultKeepAlive = cfg.DefaultKeepAlive
	}
	if cfg.Publisher == nil {
		o.publisher = noopPublisher{}
	} else {
		o.publisher = cfg.Publisher
	}
	if cfg.Logger == nil {
		o.log = zerolog.Nop()
	} else {
		o.log = cfg.Logger.With().Str("component", "orchestrator").Logger()
	}
	if cfg.Now == nil {
		o.now = time.Now
	} else {
		o.now = cfg.Now
	}
	if cfg.TotalMemoryMB > 0 {
		o.override = true
		o.SetTotalMemory(cfg.TotalMemoryMB)
	}
	return o
}
