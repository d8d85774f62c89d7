package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"transport", TransportError{Endpoint: "e", Err: context.Canceled}, "transport"},
		{"upstream", UpstreamError{Endpoint: "e", StatusCode: 502}, "upstream"},
		{"malformed", MalformedResponseError{Endpoint: "e", Reason: ReasonInvalidResponse}, "malformed"},
		{"wrapped malformed", fmt.Errorf("dispatch: %w", MalformedResponseError{Reason: "x"}), "malformed"},
		{"audio", AudioFetchError{URL: "u", StatusCode: 404}, "audio_fetch"},
		{"other", errors.New("x"), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	err := TransportError{Endpoint: "query-with-langchain-gpt4", Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected unwrap to deadline exceeded")
	}
}
