package providers

import (
	"context"

	"orcad/pkg/types"
)

const DefaultLMStudioURL = "http://localhost:1234/v1"

// LMStudio is a client for LM Studio's OpenAI-compatible server.
type LMStudio struct {
	base
}

// NewLMStudio returns a client for the server at url, including the /v1 prefix.
func NewLMStudio(url string, opts Options) *LMStudio {
	if url == "" {
		url = DefaultLMStudioURL
	}
	return &LMStudio{base: newBase("lm_studio", "LM Studio", []string{"chat.llm", "llm", "tts"}, url, opts)}
}

// ListModels returns loaded model IDs from /models.
func (l *LMStudio) ListModels(ctx context.Context) ([]string, error) {
	return l.listOpenAIModels(ctx, l.url+"/models")
}

// Health probes /models.
func (l *LMStudio) Health(ctx context.Context) types.ProviderHealth {
	return l.probe(ctx, l.url+"/models")
}
