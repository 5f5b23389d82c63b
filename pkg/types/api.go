package types

// PrepareRequest is the body of POST /prepare.
type PrepareRequest struct {
	// Model type: LLM, TTS or another capability name.
	// example: LLM
	ModelType string `json:"model_type" example:"LLM"`
	// Model name as known to the downstream host.
	// example: llama3:8b
	ModelName string `json:"model_name" example:"llama3:8b"`
}

// VRAMUsage summarizes accelerator memory usage in MB.
type VRAMUsage struct {
	// example: 3120
	Used int `json:"used" example:"3120"`
	// example: 13264
	Free int `json:"free" example:"13264"`
	// Used as a share of the detected total, one decimal.
	// example: 19.0
	Percent float64 `json:"percent" example:"19.0"`
}

// RAMUsage summarizes host memory in MB.
type RAMUsage struct {
	// example: 32011
	Total int `json:"total" example:"32011"`
	// example: 20480
	Available int `json:"available" example:"20480"`
	// example: 36.0
	Percent float64 `json:"percent" example:"36.0"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Operating tier derived from total VRAM.
	// example: MID
	Tier string `json:"tier" example:"MID"`
	// Accelerator name, "Unknown" when telemetry is unavailable.
	// example: NVIDIA GeForce RTX 4080
	DeviceName string `json:"device_name" example:"NVIDIA GeForce RTX 4080"`
	// Last detected total VRAM in MB.
	// example: 16384
	TotalVRAMMB int       `json:"total_vram_mb" example:"16384"`
	Usage       VRAMUsage `json:"usage"`
	RAM         RAMUsage  `json:"ram"`
	// Models prepared by the orchestrator, keyed by name.
	ActiveModels map[string]ActiveModel `json:"active_models"`
	// Sample time (unix seconds, fractional).
	// example: 1700000000.5
	Timestamp float64 `json:"timestamp" example:"1700000000.5"`
	// Probes that failed during this sample (gpu, host).
	Degraded []string `json:"degraded,omitempty"`
}

// Advice is returned by GET /advise.
type Advice struct {
	// Recommended placement: gpu, cpu or auto.
	// example: gpu
	Device string `json:"device" example:"gpu"`
	// example: Fits comfortably. Free VRAM: 13264MB vs Est: 6000MB
	Reason string `json:"reason" example:"Fits comfortably. Free VRAM: 13264MB vs Est: 6000MB"`
	// example: true
	Safe bool `json:"safe" example:"true"`
	// Estimated footprint in MB, 0 when unknown.
	// example: 6000
	EstimatedMB int `json:"estimated_mb" example:"6000"`
	// Free VRAM at decision time in MB.
	// example: 13264
	FreeMB int `json:"free_mb" example:"13264"`
}

// Recommendation lists suggested models for the current tier.
type Recommendation struct {
	// example: MID
	Tier string `json:"tier" example:"MID"`
	// example: llama3:8b-fp16
	LLM string `json:"llm" example:"llama3:8b-fp16"`
	// example: orpheus_standard
	TTS string `json:"tts" example:"orpheus_standard"`
}

// ProviderInfo describes a registered model host.
type ProviderInfo struct {
	// example: ollama
	ID string `json:"id" example:"ollama"`
	// example: Ollama
	Label        string   `json:"label" example:"Ollama"`
	Capabilities []string `json:"capabilities"`
}

// ProviderHealth is the result of a provider health probe.
type ProviderHealth struct {
	// example: ollama
	ID string `json:"id,omitempty" example:"ollama"`
	// example: true
	OK bool `json:"ok" example:"true"`
	// example: up
	Detail string `json:"detail" example:"up"`
	// example: 3.2
	LatencyMS float64 `json:"latency_ms" example:"3.2"`
}

// ProviderModelsResponse wraps GET /providers/{id}/models.
type ProviderModelsResponse struct {
	Models []string `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
