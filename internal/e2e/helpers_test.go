package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"orcad/internal/httpapi"
	"orcad/internal/orchestrator"
	"orcad/internal/providers"
	"orcad/internal/registry"
	"orcad/internal/telemetry"
)

// createTempModelsDir creates a temporary directory holding sparse .gguf
// files of the given sizes in MB.
func createTempModelsDir(t *testing.T, sizes map[string]int) string {
	t.Helper()
	dir := t.TempDir()
	for name, mb := range sizes {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("create temp model %s: %v", name, err)
		}
		if err := f.Truncate(int64(mb) << 20); err != nil {
			t.Fatalf("truncate %s: %v", name, err)
		}
		_ = f.Close()
	}
	return dir
}

// countingGPU is a fixed GPU that counts probes and can be slowed down.
type countingGPU struct {
	reading telemetry.GPUReading
	delay   time.Duration
	calls   atomic.Int32
}

func (g *countingGPU) ProbeGPU(ctx context.Context) (telemetry.GPUReading, error) {
	g.calls.Add(1)
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return telemetry.GPUReading{}, ctx.Err()
		}
	}
	return g.reading, nil
}

// fakeOllama serves the subset of the Ollama API orcad uses.
type fakeOllama struct {
	mu       sync.Mutex
	running  []string
	unloaded []string
}

func (f *fakeOllama) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.URL.Path {
	case "/api/tags", "/api/ps":
		ms := []map[string]string{}
		for _, n := range f.running {
			ms = append(ms, map[string]string{"name": n})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"models": ms})
	case "/api/generate":
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.unloaded = append(f.unloaded, req.Model)
		for i, n := range f.running {
			if n == req.Model {
				f.running = append(f.running[:i], f.running[i+1:]...)
				break
			}
		}
		_, _ = w.Write([]byte(`{"done":true}`))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeOllama) setRunning(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = append([]string(nil), names...)
}

func (f *fakeOllama) Unloaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.unloaded...)
}

type harness struct {
	srv    *httptest.Server
	orch   *orchestrator.Orchestrator
	gpu    *countingGPU
	ollama *fakeOllama
}

// newServer wires registry, providers, orchestrator and the HTTP API the
// same way the serve command does, with fake hardware and a fake Ollama.
func newServer(t *testing.T, modelsDir string, gpu *countingGPU, cfg orchestrator.Config) *harness {
	t.Helper()
	fo := &fakeOllama{}
	ollamaSrv := httptest.NewServer(fo)
	t.Cleanup(ollamaSrv.Close)

	if modelsDir != "" {
		models, err := registry.LoadDir(modelsDir)
		if err != nil {
			t.Fatalf("scan models: %v", err)
		}
		cfg.Footprints = registry.Footprints(models)
	}
	ollama := providers.NewOllama(ollamaSrv.URL, providers.Options{})
	reg := providers.NewRegistry(ollama, providers.NewLMStudio("http://127.0.0.1:1/v1", providers.Options{Timeout: 100 * time.Millisecond}))

	cfg.GPU = gpu
	cfg.Host = telemetry.StaticHost{Memory: telemetry.HostMemory{TotalMB: 32000, AvailableMB: 20000, Percent: 37.5}}
	cfg.Unloader = ollama
	orch := orchestrator.NewWithConfig(cfg)
	orch.Detect(context.Background())

	srv := httptest.NewServer(httpapi.NewMux(httpapi.NewService(orch, reg)))
	t.Cleanup(srv.Close)
	return &harness{srv: srv, orch: orch, gpu: gpu, ollama: fo}
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
