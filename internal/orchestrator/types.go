package orchestrator

import (
	"strings"
	"time"
)

// Tier is a coarse capability class derived from total VRAM.
type Tier string

const (
	TierLow  Tier = "LOW"
	TierMid  Tier = "MID"
	TierHigh Tier = "HIGH"
)

// Level orders tiers: LOW=0, MID=1, HIGH=2.
func (t Tier) Level() int {
	switch t {
	case TierMid:
		return 1
	case TierHigh:
		return 2
	default:
		return 0
	}
}

// ModelType is the capability family a caller is about to load.
// Types other than LLM and TTS are accepted and get the default directive.
type ModelType string

const (
	ModelLLM  ModelType = "LLM"
	ModelTTS  ModelType = "TTS"
	ModelFSPU ModelType = "FSPU"
)

// ParseModelType normalizes s to upper case. Empty input is rejected.
func ParseModelType(s string) (ModelType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", invalidModelTypeError{}
	}
	return ModelType(s), nil
}

// activeEntry tracks one prepared model.
type activeEntry struct {
	modelType  ModelType
	lastActive time.Time
}
