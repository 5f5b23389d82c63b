package orchestrator

// pruneStale drops active entries idle longer than the configured TTL.
// A zero TTL keeps entries for the process lifetime.
func (o *Orchestrator) pruneStale() {
	if o.activeTTL <= 0 {
		return
	}
	cutoff := o.now().Add(-o.activeTTL)
	var dropped []string
	o.mu.Lock()
	for name, e := range o.active {
		if e.lastActive.Before(cutoff) {
			delete(o.active, name)
			dropped = append(dropped, name)
		}
	}
	n := len(o.active)
	o.mu.Unlock()
	if len(dropped) == 0 {
		return
	}
	activeModels.Set(float64(n))
	for _, name := range dropped {
		o.publish("active_expired", name, nil)
	}
	o.log.Debug().Strs("models", dropped).Msg("pruned stale active models")
}
