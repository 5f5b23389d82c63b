// Package providers talks to the local model hosts orcad coordinates with:
// Ollama, LM Studio and the Orpheus TTS engine. Each provider can list its
// models and report health; Ollama also serves as the eviction target.
package providers

import (
	"context"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"orcad/pkg/types"
)

// DefaultTimeout bounds a single provider request when none is configured.
const DefaultTimeout = 1 * time.Second

// Provider is a model host reachable over HTTP.
type Provider interface {
	ID() string
	Label() string
	Capabilities() []string
	// ListModels returns model names the host currently offers.
	ListModels(ctx context.Context) ([]string, error)
	// Health probes the host. It never fails; problems are reported in the result.
	Health(ctx context.Context) types.ProviderHealth
}

// Options configures a provider client.
type Options struct {
	// Timeout applies per request via context.
	Timeout time.Duration
	Logger  zerolog.Logger
	// Client overrides the HTTP client (tests).
	Client *http.Client
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Client == nil {
		o.Client = newHTTPClient(o.Timeout)
	}
	return o
}

// Info renders p for listings.
func Info(p Provider) types.ProviderInfo {
	return types.ProviderInfo{ID: p.ID(), Label: p.Label(), Capabilities: slices.Clone(p.Capabilities())}
}

// HasCapability reports whether p declares capability c.
func HasCapability(p Provider, c string) bool {
	return slices.Contains(p.Capabilities(), c)
}

// base carries what every HTTP provider shares.
type base struct {
	id      string
	label   string
	caps    []string
	url     string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
}

func newBase(id, label string, caps []string, url string, opts Options) base {
	opts = opts.withDefaults()
	return base{
		id:      id,
		label:   label,
		caps:    caps,
		url:     strings.TrimRight(url, "/"),
		timeout: opts.Timeout,
		http:    opts.Client,
		log:     opts.Logger.With().Str("provider", id).Logger(),
	}
}

func (b base) ID() string             { return b.id }
func (b base) Label() string          { return b.label }
func (b base) Capabilities() []string { return b.caps }

// newHTTPClient builds a pooled client. Timeout stays 0 on the client; every
// request carries its own context deadline.
func newHTTPClient(connectTimeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr, Timeout: 0}
}
