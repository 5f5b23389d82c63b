package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Model represents a model file discovered on disk. Only the size matters to
// the orchestrator; it feeds the footprint catalog.
type Model struct {
	// Stable identifier (file name without extension).
	// example: llama-3.1-8b-q4_k_m
	ID string `json:"id" example:"llama-3.1-8b-q4_k_m"`
	// Absolute path to the model file on disk.
	// example: /home/user/models/llama-3.1-8b-q4_k_m.gguf
	Path string `json:"path" example:"/home/user/models/llama-3.1-8b-q4_k_m.gguf"`
	// File size in MB, used as the estimated memory footprint.
	// example: 4692
	SizeMB int `json:"size_mb" example:"4692"`
}

// KeepAlive is the residency instruction forwarded to a model host.
// "0" unloads right after the request, "-1" keeps the model loaded
// indefinitely, anything else is a duration string the host understands.
type KeepAlive string

const (
	KeepAliveTransient  KeepAlive = "0"
	KeepAlivePersistent KeepAlive = "-1"
	KeepAliveDefault    KeepAlive = "5m"
)

// IsNumeric reports whether the value encodes as a JSON number.
func (k KeepAlive) IsNumeric() bool {
	n, err := strconv.Atoi(string(k))
	return err == nil && strconv.Itoa(n) == string(k)
}

// MarshalJSON writes numeric values as numbers and durations as strings.
func (k KeepAlive) MarshalJSON() ([]byte, error) {
	if k.IsNumeric() {
		return []byte(k), nil
	}
	return json.Marshal(string(k))
}

// UnmarshalJSON accepts either a JSON number or a string.
func (k *KeepAlive) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*k = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = KeepAlive(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("keep_alive: %w", err)
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("keep_alive must be an integer or duration string: %s", n)
	}
	*k = KeepAlive(strconv.FormatInt(i, 10))
	return nil
}

// Directive tells a caller how to parameterize its load request to the host.
type Directive struct {
	// Residency instruction: 0 (transient), -1 (persistent) or a duration string.
	// example: -1
	KeepAlive KeepAlive `json:"keep_alive" swaggertype:"string" example:"-1"`
	// Reserved for request rejection; currently never true.
	// example: false
	Blocked bool `json:"blocked" example:"false"`
	// Models unloaded from the host before the directive was returned.
	Evicted []string `json:"evicted,omitempty"`
}

// ActiveModel is the orchestrator's record of a recently prepared model.
type ActiveModel struct {
	// Model type the caller requested (LLM, TTS, ...).
	// example: LLM
	Type string `json:"type" example:"LLM"`
	// Last time the model was prepared (unix seconds, fractional).
	// example: 1700000000.25
	LastActive float64 `json:"last_active" example:"1700000000.25"`
}

// ParseKeepAlive validates s as an integer or a Go duration string ("5m",
// "1h30m") and returns it as a KeepAlive.
func ParseKeepAlive(s string) (KeepAlive, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("keep_alive is empty")
	}
	if _, err := strconv.Atoi(s); err == nil {
		return KeepAlive(s), nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return "", fmt.Errorf("keep_alive %q: %w", s, err)
	}
	return KeepAlive(s), nil
}
