package httpapi

import (
	"context"

	"orcad/internal/orchestrator"
	"orcad/internal/providers"
	"orcad/pkg/types"
)

// orcaService binds the orchestrator and the provider registry to Service.
type orcaService struct {
	orch *orchestrator.Orchestrator
	reg  *providers.Registry
}

// NewService returns the production Service. reg may be nil.
func NewService(o *orchestrator.Orchestrator, reg *providers.Registry) Service {
	if reg == nil {
		reg = providers.NewRegistry()
	}
	return &orcaService{orch: o, reg: reg}
}

func (s *orcaService) Status(ctx context.Context) types.StatusResponse { return s.orch.Status(ctx) }

func (s *orcaService) Prepare(ctx context.Context, modelType, modelName string) (types.Directive, error) {
	mt, err := orchestrator.ParseModelType(modelType)
	if err != nil {
		return types.Directive{}, err
	}
	return s.orch.PrepareForModel(ctx, mt, modelName), nil
}

func (s *orcaService) Advise(ctx context.Context, model, provider string) types.Advice {
	return s.orch.AdviseDevice(ctx, model, provider)
}

func (s *orcaService) Recommend() types.Recommendation { return s.orch.RecommendModels() }

func (s *orcaService) Providers() []types.ProviderInfo { return s.reg.List() }

func (s *orcaService) ProviderHealth(ctx context.Context, id string) (types.ProviderHealth, error) {
	return s.reg.Health(ctx, id)
}

func (s *orcaService) ProvidersHealth(ctx context.Context) []types.ProviderHealth {
	return s.reg.HealthAll(ctx)
}

func (s *orcaService) ProviderModels(ctx context.Context, id string) ([]string, error) {
	return s.reg.Models(ctx, id)
}

func (s *orcaService) Ready() bool { return s.orch.Ready() }
