package orchestrator

import (
	"context"
	"sort"
)

// Unloader is the downstream model host as seen by eviction.
type Unloader interface {
	// RunningModels lists models currently resident on the host.
	RunningModels(ctx context.Context) ([]string, error)
	// Unload asks the host to release a model now.
	Unload(ctx context.Context, model string) error
}

func (o *Orchestrator) unloadAll(ctx context.Context) []string {
	return o.evict(ctx, "")
}

func (o *Orchestrator) unloadExcept(ctx context.Context, keep string) []string {
	return o.evict(ctx, keep)
}

// evict unloads every running model except keep and returns the names it
// released. With eviction disabled it only logs; LOW-tier safety is then
// advisory and callers must not assume memory was freed.
func (o *Orchestrator) evict(ctx context.Context, keep string) []string {
	if !o.evictConflicting || o.unloader == nil {
		o.log.Debug().Str("keep", keep).Msg("eviction disabled; unload skipped")
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, o.evictTimeout)
	defer cancel()

	names, err := o.unloader.RunningModels(ctx)
	if err != nil {
		o.log.Warn().Err(err).Msg("listing running models failed; falling back to tracked LLMs")
		names = o.trackedModels(ModelLLM)
	}
	var evicted []string
	for _, n := range names {
		if n == keep {
			continue
		}
		if err := o.unloader.Unload(ctx, n); err != nil {
			o.log.Warn().Err(err).Str("model", n).Msg("unload failed")
			evictionsTotal.WithLabelValues("error").Inc()
			o.publish("evict_failed", n, map[string]any{"error": err.Error()})
			continue
		}
		o.log.Info().Str("model", n).Msg("model unloaded")
		evictionsTotal.WithLabelValues("ok").Inc()
		o.publish("evict", n, nil)
		evicted = append(evicted, n)
	}
	return evicted
}

// trackedModels returns active entries of the given type, sorted by name.
func (o *Orchestrator) trackedModels(mt ModelType) []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var out []string
	for name, e := range o.active {
		if e.modelType == mt {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
