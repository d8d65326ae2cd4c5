package middleware

import (
	"net/http"
	"strings"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware wraps the API in an OpenCensus server span named after
// the RPC endpoint, e.g. "POST flexEditor.addElement".
func TracingMiddleware(next http.Handler) http.Handler {
	annotate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.FromContext(r.Context())
		if span == nil {
			next.ServeHTTP(w, r)
			return
		}

		span.AddAttributes(
			trace.StringAttribute("http.user_agent", r.UserAgent()),
			trace.StringAttribute("rpc.endpoint", endpointName(r.URL.Path)),
		)
		if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
			span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
		}
		if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
			span.AddAttributes(trace.StringAttribute("editor.session_id", sessionID))
		}

		next.ServeHTTP(&traceResponseWriter{ResponseWriter: w, span: span}, r)
	})

	return &ochttp.Handler{
		Handler: annotate,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + endpointName(r.URL.Path)
		},
		IsPublicEndpoint: true,
	}
}

// endpointName strips the /api/ prefix of an RPC path
func endpointName(path string) string {
	return strings.TrimPrefix(path, "/api/")
}

// traceResponseWriter marks the span failed on 4xx and 5xx answers
type traceResponseWriter struct {
	http.ResponseWriter
	span       *trace.Span
	statusCode int
}

func (trw *traceResponseWriter) WriteHeader(code int) {
	trw.statusCode = code
	trw.span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
	if code >= 400 {
		trw.span.SetStatus(trace.Status{
			Code:    trace.StatusCodeUnknown,
			Message: http.StatusText(code),
		})
	}
	trw.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*traceResponseWriter)(nil)
