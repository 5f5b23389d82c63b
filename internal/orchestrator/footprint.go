package orchestrator

import "strings"

type footprintToken struct {
	token string
	mb    int
}

// defaultFootprintTokens is checked in order; larger sizes come first so
// "70b" wins over "7b".
var defaultFootprintTokens = []footprintToken{
	{token: "70b", mb: 48000},
	{token: "8b", mb: 6000},
	{token: "7b", mb: 5500},
	{token: "1b", mb: 2000},
}

// FootprintCatalog estimates the memory a model needs, in MB.
type FootprintCatalog struct {
	exact  map[string]int
	tokens []footprintToken
}

// NewFootprintCatalog builds a catalog from exact-name layers. Later layers
// override earlier ones; names are matched case-insensitively.
func NewFootprintCatalog(layers ...map[string]int) *FootprintCatalog {
	c := &FootprintCatalog{exact: make(map[string]int), tokens: defaultFootprintTokens}
	for _, l := range layers {
		for name, mb := range l {
			if mb <= 0 {
				continue
			}
			c.exact[normalizeModelName(name)] = mb
		}
	}
	return c
}

// Estimate returns the footprint for model, or 0 when unknown.
func (c *FootprintCatalog) Estimate(model string) int {
	key := normalizeModelName(model)
	if key == "" {
		return 0
	}
	if mb, ok := c.exact[key]; ok {
		return mb
	}
	for _, t := range c.tokens {
		if strings.Contains(key, t.token) {
			return t.mb
		}
	}
	return 0
}

func normalizeModelName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
