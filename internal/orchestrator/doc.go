// Package orchestrator decides how local model hosts should keep models
// resident given the accelerator memory available. It is structured into
// small files by concern:
//
//   - orchestrator.go: core Orchestrator type, constructor, simple getters.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - types.go: Tier, ModelType and the active-model entry.
//   - errors.go: error types and helpers (IsInvalidModelType).
//   - tier.go: tier classification and capacity detection.
//   - status.go: cached telemetry snapshot for /status.
//   - prepare.go: keep-alive policy table and active-model tracking.
//   - evict.go: unloading conflicting models from the host (opt-in).
//   - advise.go, footprint.go: CPU/GPU placement from estimated footprint.
//   - recommend.go: suggested models per tier.
//   - prune.go: optional expiry of stale active-model entries.
//   - events.go, eventpub_*.go: lifecycle events.
//   - metrics.go: Prometheus collectors.
//
// All state lives on one *Orchestrator guarded by a RWMutex. Telemetry and
// host calls run outside the lock. No operation returns an error: failures
// degrade to placeholder values and are logged.
package orchestrator
