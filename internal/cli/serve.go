package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"orcad/internal/config"
	"orcad/internal/httpapi"
	"orcad/internal/orchestrator"
	"orcad/internal/providers"
	"orcad/internal/registry"
	"orcad/internal/telemetry"
	"orcad/pkg/types"
)

const shutdownTimeout = 5 * time.Second

// Probe constructors; tests replace them to avoid touching real hardware.
var (
	newGPUProbe  = func(index int) telemetry.GPUProbe { return telemetry.NewNvidiaSMI(index) }
	newHostProbe = func() telemetry.HostProbe { return telemetry.NewProcMeminfo("") }
)

// app is a fully wired daemon minus the listener.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	orch    *orchestrator.Orchestrator
	reg     *providers.Registry
	handler http.Handler
}

// footprintsFor merges footprints scanned from the models directory with
// the configured ones. Configured entries win.
func footprintsFor(cfg config.Config) (map[string]int, error) {
	out := map[string]int{}
	if cfg.ModelsDir != "" {
		models, err := registry.LoadDir(cfg.ModelsDir)
		if err != nil {
			return nil, fmt.Errorf("scan models dir: %w", err)
		}
		out = registry.Footprints(models)
	}
	maps.Copy(out, cfg.Footprints)
	return out, nil
}

func buildApp(ctx context.Context, cfg config.Config, log zerolog.Logger) (*app, error) {
	cfg = cfg.ApplyDefaults()
	fps, err := footprintsFor(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := types.ParseKeepAlive(cfg.DefaultKeepAlive); err != nil {
		return nil, fmt.Errorf("default_keep_alive: %w", err)
	}

	popts := providers.Options{Timeout: cfg.ProviderTimeout(), Logger: log}
	ollama := providers.NewOllama(cfg.OllamaURL, popts)
	reg := providers.NewRegistry(
		ollama,
		providers.NewLMStudio(cfg.LMStudioURL, popts),
		providers.NewOrpheus(cfg.OrpheusURL, cfg.OrpheusLMStudioURL, popts),
	)

	orch := orchestrator.NewWithConfig(orchestrator.Config{
		GPU:              newGPUProbe(cfg.GPUIndex),
		Host:             newHostProbe(),
		Unloader:         ollama,
		Publisher:        orchestrator.NewLogPublisher(log),
		Logger:           &log,
		TotalMemoryMB:    cfg.TotalMemoryMB,
		StatusCacheTTL:   cfg.StatusCacheTTL(),
		ProbeTimeout:     cfg.ProbeTimeout(),
		EvictConflicting: cfg.EvictConflicting,
		EvictTimeout:     cfg.EvictTimeout(),
		ActiveModelTTL:   cfg.ActiveModelTTL(),
		DefaultKeepAlive: types.KeepAlive(cfg.DefaultKeepAlive),
		HeadroomFactor:   cfg.HeadroomFactor,
		Footprints:       fps,
	})
	tier := orch.Detect(ctx)
	log.Info().Str("tier", string(tier)).Int("total_vram_mb", orch.TotalMemoryMB()).Int("footprints", len(fps)).Msg("orchestrator ready")

	httpapi.SetLogger(log)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, nil)

	return &app{
		cfg:     cfg,
		log:     log,
		orch:    orch,
		reg:     reg,
		handler: httpapi.NewMux(httpapi.NewService(orch, reg)),
	}, nil
}

// serve runs the HTTP server until ctx is canceled, then drains it.
func (a *app) serve(ctx context.Context) error {
	httpapi.SetBaseContext(ctx)
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info().Str("addr", a.cfg.Addr).Msg("orcad listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			a.log.Warn().Err(err).Msg("graceful shutdown error")
		}
		return nil
	})
	return g.Wait()
}
