package providers

import (
	"context"
	"net/http"

	"orcad/pkg/types"
)

const DefaultOllamaURL = "http://localhost:11434"

// Ollama is a client for a local Ollama daemon. Besides listing and health it
// reports resident models and unloads them, which makes it the eviction
// target for the orchestrator.
type Ollama struct {
	base
}

// NewOllama returns a client for the daemon at url (root, without /api).
func NewOllama(url string, opts Options) *Ollama {
	if url == "" {
		url = DefaultOllamaURL
	}
	return &Ollama{base: newBase("ollama", "Ollama", []string{"chat.llm", "llm", "tts"}, url, opts)}
}

type ollamaModelList struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

func (l ollamaModelList) names() []string {
	out := make([]string, 0, len(l.Models))
	for _, m := range l.Models {
		n := m.Name
		if n == "" {
			n = m.Model
		}
		out = append(out, n)
	}
	return out
}

// ListModels returns installed models from /api/tags.
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	var res ollamaModelList
	if err := o.do(ctx, http.MethodGet, o.url+"/api/tags", nil, &res); err != nil {
		return nil, err
	}
	return res.names(), nil
}

// Health probes /api/tags.
func (o *Ollama) Health(ctx context.Context) types.ProviderHealth {
	return o.probe(ctx, o.url+"/api/tags")
}

// RunningModels returns models currently loaded in memory, from /api/ps.
func (o *Ollama) RunningModels(ctx context.Context) ([]string, error) {
	var res ollamaModelList
	if err := o.do(ctx, http.MethodGet, o.url+"/api/ps", nil, &res); err != nil {
		return nil, err
	}
	return res.names(), nil
}

type ollamaUnloadRequest struct {
	Model     string `json:"model"`
	KeepAlive int    `json:"keep_alive"`
}

// Unload asks Ollama to release model immediately. An empty generate request
// with keep_alive 0 is the documented way to do this.
func (o *Ollama) Unload(ctx context.Context, model string) error {
	if err := o.do(ctx, http.MethodPost, o.url+"/api/generate", ollamaUnloadRequest{Model: model, KeepAlive: 0}, nil); err != nil {
		return err
	}
	o.log.Debug().Str("model", model).Msg("unload requested")
	return nil
}
