package middleware

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type loggerKey struct{}

// traceFields returns the zap fields for an active span, or nil when the
// span context is not valid.
func traceFields(span trace.Span) []zap.Field {
	sc := span.SpanContext()
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// WithTraceLogger returns middleware that stores a request-scoped logger in
// the context, carrying the request path and any active trace IDs.
func WithTraceLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := logger.With(zap.String("path", r.URL.Path))
			if fields := traceFields(trace.SpanFromContext(r.Context())); fields != nil {
				scoped = scoped.With(fields...)
			}
			r = r.WithContext(context.WithValue(r.Context(), loggerKey{}, scoped))
			next.ServeHTTP(w, r)
		})
	}
}

// LoggerFromContext retrieves the request-scoped logger, falling back to the
// provided logger with trace IDs attached when a span is active.
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	if fields := traceFields(trace.SpanFromContext(ctx)); fields != nil {
		return fallback.With(fields...)
	}
	return fallback
}

// LoggerFromRequest is shorthand for LoggerFromContext on the request context.
func LoggerFromRequest(r *http.Request, fallback *zap.Logger) *zap.Logger {
	return LoggerFromContext(r.Context(), fallback)
}
