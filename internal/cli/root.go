package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"orcad/internal/config"
	"orcad/internal/orchestrator"
)

// serveFlags holds serve-only flag values before they are merged over the
// config file.
type serveFlags struct {
	configPath   string
	addr         string
	modelsDir    string
	totalMB      int
	gpuIndex     int
	evict        bool
	keepAlive    string
	headroom     float64
	activeTTLS   int
	ollamaURL    string
	lmStudioURL  string
	orpheusURL   string
	corsOrigins  string
	providerMS   int
	maxBodyBytes int64
}

// runServe is the serve action; tests replace it.
var runServe = func(ctx context.Context, cfg config.Config, c *Config) error {
	log := newLogger(c.Err, cfg.LogLevel, cfg.LogFormat)
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	return a.serve(ctx)
}

func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "orcad",
		Short:         "GPU-aware residency orchestrator for local model hosts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("server", cfg.Server, "orcad base URL for client commands (defaults ORCAD_URL)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults ORCAD_LOG_LEVEL or info)")
	root.PersistentFlags().String("log-format", cfg.LogFormat, "Log format: json|console (defaults ORCAD_LOG_FORMAT or json)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.Flags().Lookup("server"); f != nil && f.Value.String() != "" {
			cfg.Server = f.Value.String()
		}
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Value.String() != "" {
			cfg.LogLvl = f.Value.String()
		}
		if f := cmd.Flags().Lookup("log-format"); f != nil && f.Value.String() != "" {
			cfg.LogFormat = f.Value.String()
		}
	}

	root.AddCommand(newServeCmd(cfg))

	statusCmd := &cobra.Command{Use: "status", Short: "Show GPU/host memory, tier and active models", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, cfg.Server, "/status", nil, nil)
	}}

	var provider string
	adviseCmd := &cobra.Command{Use: "advise <model>", Short: "Ask whether a model should run on GPU or CPU", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"model": {args[0]}}
		if provider != "" {
			q.Set("provider", provider)
		}
		return call(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, cfg.Server, "/advise", q, nil)
	}}
	adviseCmd.Flags().StringVar(&provider, "provider", "", "Provider the model will run on (offline forces cpu)")

	prepareCmd := &cobra.Command{Use: "prepare <type> <name>", Short: "Get the residency directive for loading a model", Example: "  orcad prepare LLM llama3:8b\n  orcad prepare TTS orpheus", Args: cobra.ExactArgs(2), RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"model_type": args[0], "model_name": args[1]}
		return call(cmd.Context(), cmd.OutOrStdout(), http.MethodPost, cfg.Server, "/prepare", nil, body)
	}}

	recommendCmd := &cobra.Command{Use: "recommend", Short: "Show model recommendations for the detected tier", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, cfg.Server, "/recommend", nil, nil)
	}}

	providersCmd := &cobra.Command{Use: "providers", Short: "List configured providers", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, cfg.Server, "/providers", nil, nil)
	}}
	providersHealth := &cobra.Command{Use: "health [id]", Short: "Probe one or all providers", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		path := "/providers/health"
		if len(args) == 1 {
			path = "/providers/" + url.PathEscape(args[0]) + "/health"
		}
		return call(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, cfg.Server, path, nil, nil)
	}}
	providersModels := &cobra.Command{Use: "models <id>", Short: "List models offered by a provider", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, cfg.Server, "/providers/"+url.PathEscape(args[0])+"/models", nil, nil)
	}}
	providersCmd.AddCommand(providersHealth, providersModels)

	// offline helper, no daemon needed
	tierCmd := &cobra.Command{Use: "tier <total_vram_mb>", Short: "Print the tier for a VRAM size in MB", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		mb, err := strconv.Atoi(args[0])
		if err != nil || mb < 0 {
			return fmt.Errorf("invalid MB value: %q", args[0])
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), orchestrator.DetermineTier(mb))
		return err
	}}

	root.AddCommand(statusCmd, adviseCmd, prepareCmd, recommendCmd, providersCmd, tierCmd)
	return root
}

func newServeCmd(cfg *Config) *cobra.Command {
	var sf serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the orcad HTTP daemon",
		Example: "  orcad serve --config /etc/orcad.yaml\n" +
			"  orcad serve --total-memory-mb 16384 --evict",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := resolveServeConfig(cmd, cfg, sf)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, conf, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&sf.configPath, "config", envStr("ORCAD_CONFIG", ""), "Config file (.yaml, .json or .toml; defaults ORCAD_CONFIG)")
	f.StringVar(&sf.addr, "addr", envStr("ORCAD_ADDR", config.DefaultAddr), "HTTP listen address (defaults ORCAD_ADDR)")
	f.StringVar(&sf.modelsDir, "models-dir", "", "Directory of *.gguf files whose sizes seed the footprint catalog")
	f.IntVar(&sf.totalMB, "total-memory-mb", envInt("ORCAD_TOTAL_MEMORY_MB", 0), "Override detected VRAM in MB (0 = detect)")
	f.IntVar(&sf.gpuIndex, "gpu-index", 0, "nvidia-smi device index")
	f.BoolVar(&sf.evict, "evict", envBool("ORCAD_EVICT", false), "Unload conflicting models on LOW tier instead of advising only")
	f.StringVar(&sf.keepAlive, "default-keep-alive", config.DefaultKeepAlive, "keep_alive for model types without a policy")
	f.Float64Var(&sf.headroom, "headroom", config.DefaultHeadroomFactor, "Free VRAM must exceed footprint times this factor for gpu advice")
	f.IntVar(&sf.activeTTLS, "active-ttl-s", 0, "Forget active models idle longer than this many seconds (0 = never)")
	f.StringVar(&sf.ollamaURL, "ollama-url", envStr("OLLAMA_URL", ""), "Ollama base URL")
	f.StringVar(&sf.lmStudioURL, "lmstudio-url", envStr("LMSTUDIO_URL", ""), "LM Studio base URL (with /v1)")
	f.StringVar(&sf.orpheusURL, "orpheus-url", envStr("ORPHEUS_URL", ""), "Orpheus TTS base URL")
	f.StringVar(&sf.corsOrigins, "cors-origins", envStr("ORCAD_CORS_ORIGINS", ""), "Comma-separated allowed CORS origins (empty disables CORS)")
	f.IntVar(&sf.providerMS, "provider-timeout-ms", config.DefaultProviderMS, "Per-request provider timeout in ms")
	f.Int64Var(&sf.maxBodyBytes, "max-body-bytes", config.DefaultMaxBodyBytes, "Maximum JSON request body size")
	return cmd
}

// resolveServeConfig loads the config file when given, then applies flags.
// A flag overrides the file only when set explicitly or through its
// environment default.
func resolveServeConfig(cmd *cobra.Command, c *Config, sf serveFlags) (config.Config, error) {
	var conf config.Config
	if sf.configPath != "" {
		loaded, err := config.Load(sf.configPath)
		if err != nil {
			return conf, fmt.Errorf("load config: %w", err)
		}
		conf = loaded
	}
	set := func(name, env string) bool {
		if cmd.Flags().Changed(name) {
			return true
		}
		return env != "" && os.Getenv(env) != ""
	}
	if set("addr", "ORCAD_ADDR") || conf.Addr == "" {
		conf.Addr = sf.addr
	}
	if set("models-dir", "") {
		conf.ModelsDir = sf.modelsDir
	}
	if set("total-memory-mb", "ORCAD_TOTAL_MEMORY_MB") {
		conf.TotalMemoryMB = sf.totalMB
	}
	if set("gpu-index", "") {
		conf.GPUIndex = sf.gpuIndex
	}
	if set("evict", "ORCAD_EVICT") {
		conf.EvictConflicting = sf.evict
	}
	if set("default-keep-alive", "") || conf.DefaultKeepAlive == "" {
		conf.DefaultKeepAlive = sf.keepAlive
	}
	if set("headroom", "") || conf.HeadroomFactor <= 0 {
		conf.HeadroomFactor = sf.headroom
	}
	if set("active-ttl-s", "") {
		conf.ActiveModelTTLS = sf.activeTTLS
	}
	if set("ollama-url", "OLLAMA_URL") {
		conf.OllamaURL = sf.ollamaURL
	}
	if set("lmstudio-url", "LMSTUDIO_URL") {
		conf.LMStudioURL = sf.lmStudioURL
	}
	if set("orpheus-url", "ORPHEUS_URL") {
		conf.OrpheusURL = sf.orpheusURL
	}
	if set("cors-origins", "ORCAD_CORS_ORIGINS") {
		conf.CORSOrigins = splitCSV(sf.corsOrigins)
	}
	if set("provider-timeout-ms", "") || conf.ProviderTimeoutMS <= 0 {
		conf.ProviderTimeoutMS = sf.providerMS
	}
	if set("max-body-bytes", "") || conf.MaxBodyBytes <= 0 {
		conf.MaxBodyBytes = sf.maxBodyBytes
	}
	if set("log-level", "ORCAD_LOG_LEVEL") || conf.LogLevel == "" {
		conf.LogLevel = c.LogLvl
	}
	if set("log-format", "ORCAD_LOG_FORMAT") || conf.LogFormat == "" {
		conf.LogFormat = c.LogFormat
	}
	return conf.ApplyDefaults(), nil
}
