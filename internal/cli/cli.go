// Package cli implements the orcad command line: the serve command that
// runs the daemon and thin client commands that query a running instance.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config carries persistent flag values shared by all commands.
type Config struct {
	Server    string
	LogLvl    string
	LogFormat string
	Out       io.Writer
	Err       io.Writer
}

func defaultConfig() *Config {
	return &Config{
		Server:    envStr("ORCAD_URL", "http://localhost:8000"),
		LogLvl:    envStr("ORCAD_LOG_LEVEL", "info"),
		LogFormat: envStr("ORCAD_LOG_FORMAT", "json"),
		Out:       os.Stdout,
		Err:       os.Stderr,
	}
}

// MainWithArgs runs the CLI and returns a process exit code: 0 on success,
// 2 when no command was given, 1 on any error.
func MainWithArgs(args []string) int {
	return mainWith(defaultConfig(), args)
}

func mainWith(cfg *Config, args []string) int {
	root := buildRootCmdWith(cfg)
	root.SetOut(cfg.Out)
	root.SetErr(cfg.Err)
	if len(args) == 0 {
		_ = root.Usage()
		return 2
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(cfg.Err, "error:", err)
		return 1
	}
	return 0
}

// Env helpers
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	s := strings.ToLower(v)
	return s == "1" || s == "true" || s == "yes"
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// splitCSV splits a comma-separated list, trimming blanks and dropping
// empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
