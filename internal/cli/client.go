package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/pretty"
)

const clientTimeout = 10 * time.Second

// httpDo is the transport used by client commands; tests replace it.
var httpDo = func(req *http.Request) (*http.Response, error) {
	return (&http.Client{Timeout: clientTimeout}).Do(req)
}

// call issues one request against the daemon and writes the pretty-printed
// JSON response to w. Non-2xx answers become errors carrying the server's
// error message.
func call(ctx context.Context, w io.Writer, method, base, path string, q url.Values, body any) error {
	u := strings.TrimRight(base, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpDo(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: http %d: %s", method, path, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("%s %s: http %d", method, path, resp.StatusCode)
	}
	_, err = w.Write(pretty.Pretty(raw))
	return err
}
