package httpapi

import (
	"testing"
	"time"
)

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB on zero, got %d", maxBodyBytes)
	}
}

func TestSetMaxBodyBytes_PositiveSetsValue(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(1234)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
}

func TestSetRequestTimeout_NormalizesNegativeToZero(t *testing.T) {
	defer SetRequestTimeout(0)
	SetRequestTimeout(-5 * time.Second)
	if requestTimeout != 0 {
		t.Fatalf("expected 0, got %v", requestTimeout)
	}
	SetRequestTimeout(3 * time.Second)
	if requestTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %v", requestTimeout)
	}
}

func TestCORS_Options(t *testing.T) {
	SetCORSOptions(true, []string{"http://localhost:5173"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)
	o := corsOptions()
	if len(o.AllowedMethods) != 3 || len(o.AllowedHeaders) != 2 || o.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected options: %+v", o)
	}
}
