package orchestrator

import "orcad/pkg/types"

// RecommendModels suggests an LLM and a TTS voice model for the current tier.
func (o *Orchestrator) RecommendModels() types.Recommendation {
	t := o.Tier()
	r := types.Recommendation{Tier: string(t)}
	switch t {
	case TierHigh:
		r.LLM, r.TTS = "llama3:70b", "orpheus_high_fidelity"
	case TierMid:
		r.LLM, r.TTS = "llama3:8b-fp16", "orpheus_standard"
	default:
		r.LLM, r.TTS = "llama3:8b-quant", "fast_speech_nano"
	}
	return r
}
