package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

func preview(b []byte) string {
	if len(b) > 400 {
		b = b[:400]
	}
	return string(b)
}

// Wrapping a plain handler falls back to the URL path as label.
func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plain", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := scrape(t)
	if !bytes.Contains(body, []byte("orcad_http_requests_total")) || !bytes.Contains(body, []byte(`path="/plain"`)) {
		t.Fatalf("expected orcad_http_requests_total for /plain; got: %q", preview(body))
	}
}

// Inside the mux, the chi route pattern is used instead of the raw path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	svc := &mockService{models: map[string][]string{"ollama": {"m"}}}
	h := NewMux(svc)
	if w := get(h, "/providers/ollama/models"); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := scrape(t)
	if !bytes.Contains(body, []byte(`path="/providers/{id}/models"`)) {
		t.Fatalf("expected route pattern label; got: %q", preview(body))
	}
	if bytes.Contains(body, []byte(`path="/providers/ollama/models"`)) {
		t.Fatalf("raw path leaked into labels")
	}
}

func TestRejectedReasons_CountedPerValidationFailure(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(64)
	h := NewMux(&mockService{})
	count := func(r rejectReason) float64 { return testutil.ToFloat64(apiRejected.WithLabelValues(string(r))) }
	before := map[rejectReason]float64{}
	for _, r := range rejectReasons {
		before[r] = count(r)
	}

	req := httptest.NewRequest(http.MethodPost, "/prepare", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	h.ServeHTTP(httptest.NewRecorder(), req)
	postJSON(t, h, "/prepare", `{not json`)
	postJSON(t, h, "/prepare", `{"model_type":"LLM","model_name":"`+strings.Repeat("a", 128)+`"}`)
	postJSON(t, h, "/prepare", `{"model_name":"m"}`)
	postJSON(t, h, "/prepare", `{"model_type":"LLM"}`)
	get(h, "/advise")

	want := map[rejectReason]float64{
		rejectContentType:  1,
		rejectInvalidJSON:  1,
		rejectBodyTooLarge: 1,
		rejectMissingType:  1,
		rejectMissingModel: 2,
	}
	for r, n := range want {
		if got := count(r) - before[r]; got != n {
			t.Fatalf("reason %s: got +%v, want +%v", r, got, n)
		}
	}
}

func TestRejectedReasons_ExportedAtZero(t *testing.T) {
	body := scrape(t)
	for _, r := range rejectReasons {
		if !bytes.Contains(body, []byte(`reason="`+string(r)+`"`)) {
			t.Fatalf("reason %s missing from exposition", r)
		}
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	w := get(NewMux(&mockService{}), "/metrics")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("orcad_http_inflight_requests")) {
		t.Fatalf("status=%d", w.Code)
	}
}
