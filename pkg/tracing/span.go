package tracing

import (
	"context"
	"fmt"

	"go.opencensus.io/trace"
)

// StartServiceSpan starts a span named "service.method"
func StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, serviceName+"."+methodName)
}

// EndSpan records err on the span, if any, and ends it
func EndSpan(span *trace.Span, err error) {
	if err != nil {
		span.SetStatus(trace.Status{
			Code:    trace.StatusCodeUnknown,
			Message: err.Error(),
		})
	}
	span.End()
}

// TraceMethod runs f inside a service span
func TraceMethod(ctx context.Context, serviceName, methodName string, f func(context.Context) error) (err error) {
	ctx, span := StartServiceSpan(ctx, serviceName, methodName)
	defer func() { EndSpan(span, err) }()
	return f(ctx)
}

// TraceMethodWithResult runs f inside a service span and passes its result through
func TraceMethodWithResult[T any](ctx context.Context, serviceName, methodName string, f func(context.Context) (T, error)) (result T, err error) {
	ctx, span := StartServiceSpan(ctx, serviceName, methodName)
	defer func() { EndSpan(span, err) }()
	return f(ctx)
}

// AddAttribute adds an attribute to the span in ctx, if there is one
func AddAttribute(ctx context.Context, key string, value interface{}) {
	span := trace.FromContext(ctx)
	if span == nil {
		return
	}

	switch v := value.(type) {
	case string:
		span.AddAttributes(trace.StringAttribute(key, v))
	case int:
		span.AddAttributes(trace.Int64Attribute(key, int64(v)))
	case int64:
		span.AddAttributes(trace.Int64Attribute(key, v))
	case bool:
		span.AddAttributes(trace.BoolAttribute(key, v))
	case fmt.Stringer:
		span.AddAttributes(trace.StringAttribute(key, v.String()))
	default:
		span.AddAttributes(trace.StringAttribute(key, fmt.Sprintf("%v", v)))
	}
}

// MarkSpanError flags the span in ctx as failed
func MarkSpanError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if span := trace.FromContext(ctx); span != nil {
		span.SetStatus(trace.Status{
			Code:    trace.StatusCodeUnknown,
			Message: err.Error(),
		})
	}
}
