package providers

import (
	"context"
	"strings"

	"orcad/pkg/types"
)

const DefaultOrpheusURL = "http://localhost:5005"

// Orpheus is the Orpheus TTS engine. It runs its voices on an LM Studio
// backend, so models are listed from there while health comes from the
// engine itself.
type Orpheus struct {
	base
	modelsURL string
}

// NewOrpheus returns a client for the engine at url. lmStudioURL is the
// backend serving its models; empty means DefaultLMStudioURL.
func NewOrpheus(url, lmStudioURL string, opts Options) *Orpheus {
	if url == "" {
		url = DefaultOrpheusURL
	}
	if lmStudioURL == "" {
		lmStudioURL = DefaultLMStudioURL
	}
	return &Orpheus{
		base:      newBase("orpheus", "Orpheus TTS Engine", []string{"tts.engine"}, url, opts),
		modelsURL: strings.TrimRight(lmStudioURL, "/") + "/models",
	}
}

// ListModels returns the model IDs loaded on the LM Studio backend.
func (o *Orpheus) ListModels(ctx context.Context) ([]string, error) {
	return o.listOpenAIModels(ctx, o.modelsURL)
}

// Health probes the engine's /health.
func (o *Orpheus) Health(ctx context.Context) types.ProviderHealth {
	return o.probe(ctx, o.url+"/health")
}
