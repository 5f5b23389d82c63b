package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"orcad/internal/config"
)

func testConfig() (*Config, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	return &Config{Server: "http://127.0.0.1:1", LogLvl: "info", LogFormat: "json", Out: &out, Err: &errb}, &out, &errb
}

// helper to restore stubs after each test
func withServeStub(t *testing.T, fn func(ctx context.Context, cfg config.Config, c *Config) error) {
	t.Helper()
	old := runServe
	runServe = fn
	t.Cleanup(func() { runServe = old })
}

func TestMainWithArgs_NoArgs_ShowsUsageAndExit2(t *testing.T) {
	cfg, out, _ := testConfig()
	if code := mainWith(cfg, nil); code != 2 {
		t.Fatalf("expected exit code 2 for no args, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestMainWithArgs_UnknownCommand_Exit1(t *testing.T) {
	cfg, _, errb := testConfig()
	if code := mainWith(cfg, []string{"wat"}); code != 1 {
		t.Fatalf("expected exit code 1 for unknown command, got %d", code)
	}
	if !strings.Contains(errb.String(), "unknown command") {
		t.Fatalf("expected error on stderr, got %q", errb.String())
	}
}

func TestTierCommand(t *testing.T) {
	cases := map[string]string{"8192": "LOW", "12500": "LOW", "16384": "MID", "24576": "HIGH"}
	for in, want := range cases {
		cfg, out, _ := testConfig()
		if code := mainWith(cfg, []string{"tier", in}); code != 0 {
			t.Fatalf("tier %s exit=%d", in, code)
		}
		if got := strings.TrimSpace(out.String()); got != want {
			t.Fatalf("tier %s = %q, want %q", in, got, want)
		}
	}
	cfg, _, _ := testConfig()
	if code := mainWith(cfg, []string{"tier", "lots"}); code != 1 {
		t.Fatalf("expected exit 1 for invalid MB, got %d", code)
	}
}

func TestServe_FlagsAreParsedAndPassedThrough(t *testing.T) {
	var got config.Config
	withServeStub(t, func(ctx context.Context, cfg config.Config, c *Config) error {
		got = cfg
		return nil
	})
	cfg, _, _ := testConfig()
	args := []string{"--log-level", "debug", "serve", "--addr", ":9999", "--total-memory-mb", "16384", "--evict", "--cors-origins", "http://a, http://b", "--default-keep-alive", "10m"}
	if code := mainWith(cfg, args); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got.Addr != ":9999" || got.TotalMemoryMB != 16384 || !got.EvictConflicting {
		t.Fatalf("flags not applied: %+v", got)
	}
	if len(got.CORSOrigins) != 2 || got.CORSOrigins[1] != "http://b" {
		t.Fatalf("cors origins: %v", got.CORSOrigins)
	}
	if got.DefaultKeepAlive != "10m" || got.LogLevel != "debug" {
		t.Fatalf("keep-alive/log level: %+v", got)
	}
	// defaults filled in
	if got.StatusCacheMS != config.DefaultStatusCacheMS || got.HeadroomFactor != config.DefaultHeadroomFactor {
		t.Fatalf("defaults missing: %+v", got)
	}
}

func TestServe_EnvAddr(t *testing.T) {
	t.Setenv("ORCAD_ADDR", ":7777")
	var got config.Config
	withServeStub(t, func(ctx context.Context, cfg config.Config, c *Config) error {
		got = cfg
		return nil
	})
	cfg, _, _ := testConfig()
	if code := mainWith(cfg, []string{"serve"}); code != 0 {
		t.Fatalf("exit=%d", code)
	}
	if got.Addr != ":7777" {
		t.Fatalf("expected env addr, got %q", got.Addr)
	}
}

func TestServe_MissingConfigFileFails(t *testing.T) {
	withServeStub(t, func(ctx context.Context, cfg config.Config, c *Config) error {
		t.Fatal("serve must not run")
		return nil
	})
	cfg, _, errb := testConfig()
	if code := mainWith(cfg, []string{"serve", "--config", "/nonexistent/orcad.yaml"}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errb.String(), "load config") {
		t.Fatalf("unexpected stderr: %q", errb.String())
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("ORCAD_X_STR", "v")
	t.Setenv("ORCAD_X_BOOL", "Yes")
	t.Setenv("ORCAD_X_INT", "42")
	t.Setenv("ORCAD_X_BAD", "nope")
	if envStr("ORCAD_X_STR", "d") != "v" || envStr("ORCAD_X_UNSET", "d") != "d" {
		t.Fatal("envStr")
	}
	if !envBool("ORCAD_X_BOOL", false) || envBool("ORCAD_X_STR", true) || !envBool("ORCAD_X_UNSET", true) {
		t.Fatal("envBool")
	}
	if envInt("ORCAD_X_INT", 0) != 42 || envInt("ORCAD_X_BAD", 7) != 7 {
		t.Fatal("envInt")
	}
}
