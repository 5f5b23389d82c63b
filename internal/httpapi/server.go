package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orcad/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Status(ctx context.Context) types.StatusResponse
	Prepare(ctx context.Context, modelType, modelName string) (types.Directive, error)
	Advise(ctx context.Context, model, provider string) types.Advice
	Recommend() types.Recommendation
	Providers() []types.ProviderInfo
	ProviderHealth(ctx context.Context, id string) (types.ProviderHealth, error)
	ProvidersHealth(ctx context.Context) []types.ProviderHealth
	ProviderModels(ctx context.Context, id string) ([]string, error)
	Ready() bool
}

type handlers struct{ svc Service }

func NewMux(svc Service) http.Handler {
	h := handlers{svc: svc}
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/status", h.status)
	r.Post("/prepare", h.prepare)
	r.Get("/advise", h.advise)
	r.Get("/recommend", h.recommend)
	r.Route("/providers", func(r chi.Router) {
		r.Get("/", h.providers)
		r.Get("/health", h.providersHealth)
		r.Get("/{id}/health", h.providerHealth)
		r.Get("/{id}/models", h.providerModels)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func corsOptions() cors.Options {
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "X-Log-Level"}
	}
	return cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         300,
	}
}

// status godoc
// @Summary      Hardware snapshot
// @Description  Tier, VRAM and RAM usage, and active models. Cached for about one second.
// @Tags         orchestrator
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h handlers) status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	writeJSON(w, h.svc.Status(ctx))
}

// prepare godoc
// @Summary      Prepare for a model load
// @Description  Returns the keep-alive directive for the current tier and records the model as active.
// @Tags         orchestrator
// @Accept       json
// @Produce      json
// @Param        request  body      types.PrepareRequest  true  "Model to prepare"
// @Success      200      {object}  types.Directive
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /prepare [post]
func (h handlers) prepare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		reject(w, rejectContentType, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.PrepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			reject(w, rejectBodyTooLarge, http.StatusBadRequest, "request body too large")
			return
		}
		reject(w, rejectInvalidJSON, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ModelType) == "" {
		reject(w, rejectMissingType, http.StatusBadRequest, "model_type and model_name are required")
		return
	}
	if strings.TrimSpace(req.ModelName) == "" {
		reject(w, rejectMissingModel, http.StatusBadRequest, "model_type and model_name are required")
		return
	}
	logDebug(r, "prepare start", map[string]any{"model": req.ModelName, "type": req.ModelType})

	ctx, cancel := requestContext(r)
	defer cancel()
	d, err := h.svc.Prepare(ctx, req.ModelType, req.ModelName)
	if err != nil {
		status := statusForError(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, "prepare", status, start, err)
		return
	}
	writeJSON(w, d)
	logEnd(r, "prepare", http.StatusOK, start, nil)
}

// advise godoc
// @Summary      Device placement advice
// @Description  Recommends gpu, cpu or auto for a model given current free VRAM.
// @Tags         orchestrator
// @Produce      json
// @Param        model     query     string  true   "Model name"
// @Param        provider  query     string  false  "Provider id; offline forces cpu"
// @Success      200       {object}  types.Advice
// @Failure      400       {object}  types.ErrorResponse
// @Router       /advise [get]
func (h handlers) advise(w http.ResponseWriter, r *http.Request) {
	model := strings.TrimSpace(r.URL.Query().Get("model"))
	if model == "" {
		reject(w, rejectMissingModel, http.StatusBadRequest, "model is required")
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	writeJSON(w, h.svc.Advise(ctx, model, r.URL.Query().Get("provider")))
}

// recommend godoc
// @Summary      Model recommendation for the current tier
// @Tags         orchestrator
// @Produce      json
// @Success      200  {object}  types.Recommendation
// @Router       /recommend [get]
func (h handlers) recommend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Recommend())
}

// providers godoc
// @Summary      List providers
// @Tags         providers
// @Produce      json
// @Success      200  {array}  types.ProviderInfo
// @Router       /providers [get]
func (h handlers) providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Providers())
}

// providersHealth godoc
// @Summary      Probe every provider
// @Tags         providers
// @Produce      json
// @Success      200  {array}  types.ProviderHealth
// @Router       /providers/health [get]
func (h handlers) providersHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	writeJSON(w, h.svc.ProvidersHealth(ctx))
}

// providerHealth godoc
// @Summary      Probe one provider
// @Tags         providers
// @Produce      json
// @Param        id   path      string  true  "Provider id"
// @Success      200  {object}  types.ProviderHealth
// @Failure      404  {object}  types.ErrorResponse
// @Router       /providers/{id}/health [get]
func (h handlers) providerHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := requestContext(r)
	defer cancel()
	res, err := h.svc.ProviderHealth(ctx, chi.URLParam(r, "id"))
	if err != nil {
		status := statusForError(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, "provider_health", status, start, err)
		return
	}
	writeJSON(w, res)
}

// providerModels godoc
// @Summary      List a provider's models
// @Tags         providers
// @Produce      json
// @Param        id   path      string  true  "Provider id"
// @Success      200  {object}  types.ProviderModelsResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      502  {object}  types.ErrorResponse
// @Router       /providers/{id}/models [get]
func (h handlers) providerModels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := requestContext(r)
	defer cancel()
	models, err := h.svc.ProviderModels(ctx, chi.URLParam(r, "id"))
	if err != nil {
		status := statusForError(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, "provider_models", status, start, err)
		return
	}
	if models == nil {
		models = []string{}
	}
	writeJSON(w, types.ProviderModelsResponse{Models: models})
	logEnd(r, "provider_models", http.StatusOK, start, nil)
}
