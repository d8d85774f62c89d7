package bootstrap

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// OTelHandler: 레코드에 현재 span의 trace_id/span_id를 붙여 내부 핸들러로 넘긴다.
// span이 없는 컨텍스트에서는 아무 속성도 추가하지 않는다.
type OTelHandler struct {
	inner slog.Handler
}

// NewOTelHandler: inner를 감싼 OTelHandler를 생성합니다.
func NewOTelHandler(inner slog.Handler) *OTelHandler {
	return &OTelHandler{inner: inner}
}

// Enabled: 내부 핸들러의 레벨 판단을 따릅니다.
func (h *OTelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle: span 컨텍스트가 유효하면 trace_id/span_id를 추가합니다.
func (h *OTelHandler) Handle(ctx context.Context, record slog.Record) error {
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	//nolint:wrapcheck // slog.Handler 구현
	return h.inner.Handle(ctx, record)
}

// WithAttrs: 속성이 추가된 핸들러를 다시 감쌉니다.
func (h *OTelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &OTelHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup: 그룹이 추가된 핸들러를 다시 감쌉니다.
func (h *OTelHandler) WithGroup(name string) slog.Handler {
	return &OTelHandler{inner: h.inner.WithGroup(name)}
}
