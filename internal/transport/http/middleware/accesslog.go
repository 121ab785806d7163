package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	appCtx "github.com/baechuer/cityevents/services/nearby-service/internal/pkg/context"
)

// AccessLog writes one line per request. Server errors log at error level,
// client errors at warn.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		ev := zlog.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = zlog.Error()
		case status >= http.StatusBadRequest:
			ev = zlog.Warn()
		}
		logRequest(ev, r).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("latency", time.Since(start)).
			Msg("http_request")
	})
}

func logRequest(ev *zerolog.Event, r *http.Request) *zerolog.Event {
	ev = ev.
		Str("request_id", appCtx.GetRequestID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("remote_ip", r.RemoteAddr)
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			ev = ev.Str("route", pattern)
		}
	}
	return ev
}
