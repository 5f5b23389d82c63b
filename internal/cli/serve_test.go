package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcad/internal/config"
	"orcad/internal/telemetry"
)

// fakeOllama serves /api/tags, /api/ps and records unload requests.
type fakeOllama struct {
	mu       sync.Mutex
	running  []string
	unloaded []string
}

func (f *fakeOllama) setRunning(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = names
}

func (f *fakeOllama) Unloaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.unloaded...)
}

func (f *fakeOllama) handler() http.Handler {
	mux := http.NewServeMux()
	list := func(names []string) map[string]any {
		ms := make([]map[string]string, 0, len(names))
		for _, n := range names {
			ms = append(ms, map[string]string{"name": n})
		}
		return map[string]any{"models": ms}
	}
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(list([]string{"llama3:8b", "orpheus"}))
	})
	mux.HandleFunc("/api/ps", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(list(f.running))
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.unloaded = append(f.unloaded, req.Model)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"done":true}`))
	})
	return mux
}

func stubProbes(t *testing.T, totalMB, freeMB int) {
	t.Helper()
	oldGPU, oldHost := newGPUProbe, newHostProbe
	newGPUProbe = func(int) telemetry.GPUProbe {
		return telemetry.StaticGPU{Reading: telemetry.GPUReading{Name: "Test GPU", TotalMB: totalMB, UsedMB: totalMB - freeMB, FreeMB: freeMB}}
	}
	newHostProbe = func() telemetry.HostProbe {
		return telemetry.StaticHost{Memory: telemetry.HostMemory{TotalMB: 32000, AvailableMB: 16000, Percent: 50}}
	}
	t.Cleanup(func() { newGPUProbe, newHostProbe = oldGPU, oldHost })
}

// startDaemon wires a full app against a fake Ollama and serves it.
func startDaemon(t *testing.T, cfg config.Config) (*app, *httptest.Server, *fakeOllama) {
	t.Helper()
	fo := &fakeOllama{}
	ollama := httptest.NewServer(fo.handler())
	t.Cleanup(ollama.Close)
	cfg.OllamaURL = ollama.URL
	a, err := buildApp(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	srv := httptest.NewServer(a.handler)
	t.Cleanup(srv.Close)
	return a, srv, fo
}

func runCLI(t *testing.T, server string, args ...string) (int, string, string) {
	t.Helper()
	cfg, out, errb := testConfig()
	cfg.Server = server
	code := mainWith(cfg, args)
	return code, out.String(), errb.String()
}

func TestBuildApp_DetectsTierAndMergesFootprints(t *testing.T) {
	stubProbes(t, 16384, 12000)
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "custom-13b.gguf"))
	require.NoError(t, err)
	require.NoError(t, f.Truncate(7<<20))
	require.NoError(t, f.Close())

	a, err := buildApp(context.Background(), config.Config{
		ModelsDir:  dir,
		Footprints: map[string]int{"pinned": 3000},
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "MID", string(a.orch.Tier()))
	assert.Equal(t, 16384, a.orch.TotalMemoryMB())
	assert.Equal(t, config.DefaultAddr, a.cfg.Addr)

	adv := a.orch.AdviseDevice(context.Background(), "custom-13b", "")
	assert.Equal(t, 7, adv.EstimatedMB)
	adv = a.orch.AdviseDevice(context.Background(), "pinned", "")
	assert.Equal(t, 3000, adv.EstimatedMB)
	assert.Len(t, a.reg.List(), 3)
}

func TestBuildApp_RejectsBadKeepAlive(t *testing.T) {
	stubProbes(t, 8192, 8000)
	_, err := buildApp(context.Background(), config.Config{DefaultKeepAlive: "forever"}, zerolog.Nop())
	require.Error(t, err)
}

func TestBuildApp_MissingModelsDir(t *testing.T) {
	stubProbes(t, 8192, 8000)
	_, err := buildApp(context.Background(), config.Config{ModelsDir: filepath.Join(t.TempDir(), "nope")}, zerolog.Nop())
	require.Error(t, err)
}

func TestEndToEnd_StatusAndRecommend(t *testing.T) {
	stubProbes(t, 24576, 20000)
	_, srv, _ := startDaemon(t, config.Config{})

	code, out, errOut := runCLI(t, srv.URL, "status")
	require.Equal(t, 0, code, errOut)
	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "HIGH", st["tier"])
	assert.Equal(t, "Test GPU", st["device_name"])

	code, out, _ = runCLI(t, srv.URL, "recommend")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"tier": "HIGH"`)
}

func TestEndToEnd_PrepareEvictsOnLowTier(t *testing.T) {
	stubProbes(t, 8192, 6000)
	_, srv, fo := startDaemon(t, config.Config{EvictConflicting: true})
	fo.setRunning("orpheus", "llama3:8b")

	code, out, errOut := runCLI(t, srv.URL, "prepare", "llm", "llama3:8b")
	require.Equal(t, 0, code, errOut)
	var d map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.EqualValues(t, 0, d["keep_alive"])
	assert.Equal(t, []string{"orpheus"}, fo.Unloaded())
}

func TestEndToEnd_PrepareValidationError(t *testing.T) {
	stubProbes(t, 16384, 12000)
	_, srv, _ := startDaemon(t, config.Config{})
	code, _, errOut := runCLI(t, srv.URL, "prepare", " ", "m")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "http 400")
}

func TestEndToEnd_AdviseAndProviders(t *testing.T) {
	stubProbes(t, 16384, 12000)
	_, srv, _ := startDaemon(t, config.Config{})

	code, out, _ := runCLI(t, srv.URL, "advise", "llama3:8b")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"device": "gpu"`)

	code, out, _ = runCLI(t, srv.URL, "advise", "llama3:8b", "--provider", "offline")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"device": "cpu"`)

	code, out, _ = runCLI(t, srv.URL, "providers")
	require.Equal(t, 0, code)
	for _, id := range []string{"ollama", "lm_studio", "orpheus"} {
		assert.Contains(t, out, id)
	}

	code, out, _ = runCLI(t, srv.URL, "providers", "models", "ollama")
	require.Equal(t, 0, code)
	assert.True(t, strings.Contains(out, "llama3:8b"), out)

	code, out, _ = runCLI(t, srv.URL, "providers", "health", "ollama")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"ok": true`)

	code, _, errOut := runCLI(t, srv.URL, "providers", "health", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "http 404")
}

func TestClient_ServerDown(t *testing.T) {
	code, _, errOut := runCLI(t, "http://127.0.0.1:1", "status")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "GET http://127.0.0.1:1/status")
}

func TestServe_StopsOnCancel(t *testing.T) {
	stubProbes(t, 8192, 8000)
	a, err := buildApp(context.Background(), config.Config{Addr: "127.0.0.1:0"}, zerolog.Nop())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()
	cancel()
	require.NoError(t, <-done)
}
