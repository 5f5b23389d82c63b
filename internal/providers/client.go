package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"orcad/pkg/types"
)

// do sends one request under the provider timeout and decodes a JSON body
// into out when out is non-nil.
func (b base) do(ctx context.Context, method, url string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := b.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", url, ctx.Err())
		}
		return fmt.Errorf("%s not reachable: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return upstreamError{url: url, status: resp.StatusCode, body: string(bytes.TrimSpace(snippet))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// probe issues a GET and reports health. Latency is reported only when the
// endpoint answered 2xx.
func (b base) probe(ctx context.Context, url string) types.ProviderHealth {
	start := time.Now()
	err := b.do(ctx, http.MethodGet, url, nil, nil)
	h := types.ProviderHealth{ID: b.id}
	var ue upstreamError
	switch {
	case err == nil:
		h.OK = true
		h.Detail = "up"
		h.LatencyMS = float64(time.Since(start).Microseconds()) / 1000
	case errors.As(err, &ue):
		h.Detail = fmt.Sprintf("http %d", ue.status)
	default:
		h.Detail = err.Error()
	}
	if !h.OK {
		b.log.Debug().Str("url", url).Str("detail", h.Detail).Msg("provider unhealthy")
	}
	return h
}

// openAIModels is the OpenAI-compatible /v1/models shape.
type openAIModels struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (b base) listOpenAIModels(ctx context.Context, url string) ([]string, error) {
	var res openAIModels
	if err := b.do(ctx, http.MethodGet, url, nil, &res); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(res.Data))
	for _, m := range res.Data {
		out = append(out, m.ID)
	}
	return out, nil
}
