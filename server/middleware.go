package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ai_content_studio/metrics"
)

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return s.logRoute("", next)
}

// unmatched 包装 404/405 handler；mux 对未匹配的请求不会执行 r.Use 中间件。
func (s *Server) unmatched(next http.Handler) http.Handler {
	return s.requestID(s.logRoute("unmatched", next))
}

// logRoute records the access log line and HTTP metrics. An empty route
// is taken from the matched mux template.
func (s *Server) logRoute(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		elapsed := time.Since(start)

		// Label by route template to keep cardinality bounded.
		label := route
		if label == "" {
			label = "static"
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil && tpl != "/" {
					label = tpl
				}
			}
		}
		metrics.ObserveHTTP(r.Method, label, strconv.Itoa(rw.status), elapsed)

		s.logger.Info("http request",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", label),
			zap.Int("status", rw.status),
			zap.Duration("elapsed", elapsed))
	})
}
