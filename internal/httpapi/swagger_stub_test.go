//go:build !swagger

package httpapi

import (
	"net/http"
	"testing"
)

func TestSwaggerDisabledByDefault(t *testing.T) {
	if w := get(NewMux(&mockService{}), "/swagger/index.html"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without swagger tag, got %d", w.Code)
	}
}
