package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("ORCAD_LOG_LEVEL"))

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// logEnd records the outcome of an API call at the request's log level.
// Errors are logged from LevelError up, successes from LevelInfo up.
func logEnd(r *http.Request, op string, status int, start time.Time, err error) {
	lvl := requestLogLevel(r)
	if lvl == LevelOff || (err == nil && lvl < LevelInfo) {
		return
	}
	dur := time.Since(start)
	if zlog == nil {
		if err != nil {
			log.Printf("%s end status=%d dur=%s err=%v", op, status, dur, err)
		} else {
			log.Printf("%s end status=%d dur=%s", op, status, dur)
		}
		return
	}
	z := zlog.Info()
	if err != nil {
		z = zlog.Warn().Err(err)
	}
	z = z.Str("op", op).Int("status", status).Dur("dur", dur).Str("path", r.URL.Path)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg("request end")
}

// logDebug emits a debug line when the request asked for it.
func logDebug(r *http.Request, msg string, fields map[string]any) {
	if requestLogLevel(r) < LevelDebug {
		return
	}
	if zlog == nil {
		log.Printf("%s %v", msg, fields)
		return
	}
	zlog.Debug().Fields(fields).Str("path", r.URL.Path).Msg(msg)
}
