package orchestrator

import (
	"context"

	"orcad/pkg/types"
)

// PrepareForModel is called before a caller asks a host to load a model.
// It returns the keep-alive directive for the current tier, runs any unload
// the tier's policy calls for, and records the model as active.
//
//	tier  LLM                          TTS
//	LOW   unload other LLMs, 0         unload all LLMs, 0
//	MID   -1                           0
//	HIGH  -1                           -1
//
// Other model types get the default directive untouched, HIGH tier included.
func (o *Orchestrator) PrepareForModel(ctx context.Context, mt ModelType, name string) types.Directive {
	tier := o.Tier()
	o.log.Info().Str("model", name).Str("type", string(mt)).Str("tier", string(tier)).Msg("preparing for model")

	d := types.Directive{KeepAlive: o.defaultKeepAlive}
	switch tier {
	case TierLow:
		switch mt {
		case ModelLLM:
			d.Evicted = o.unloadExcept(ctx, name)
			d.KeepAlive = types.KeepAliveTransient
		case ModelTTS:
			d.Evicted = o.unloadAll(ctx)
			d.KeepAlive = types.KeepAliveTransient
		}
	case TierMid:
		switch mt {
		case ModelLLM:
			d.KeepAlive = types.KeepAlivePersistent
		case ModelTTS:
			d.KeepAlive = types.KeepAliveTransient
		}
	case TierHigh:
		switch mt {
		case ModelLLM, ModelTTS:
			d.KeepAlive = types.KeepAlivePersistent
		}
	}

	o.pruneStale()
	o.mu.Lock()
	o.active[name] = activeEntry{modelType: mt, lastActive: o.now()}
	n := len(o.active)
	o.mu.Unlock()

	activeModels.Set(float64(n))
	directivesTotal.WithLabelValues(string(tier), string(mt), string(d.KeepAlive)).Inc()
	o.publish("prepare", name, map[string]any{"type": string(mt), "tier": string(tier), "keep_alive": string(d.KeepAlive)})
	return d
}
