package health

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	Init("1.2.3")
	resp := Get()
	if resp.Status != "ok" {
		t.Errorf("expected ok, got %q", resp.Status)
	}
	if resp.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", resp.Version)
	}
	if resp.Goroutines <= 0 {
		t.Errorf("expected positive goroutine count, got %d", resp.Goroutines)
	}
}

func TestReady(t *testing.T) {
	ok := Check{Name: "session_store", Run: func(context.Context) error { return nil }}
	down := Check{Name: "cache", Run: func(context.Context) error { return errors.New("refused") }}

	resp := Ready(context.Background(), ok)
	if resp.Status != "ok" || resp.Checks["session_store"] != "ok" {
		t.Fatalf("unexpected ready response: %+v", resp)
	}

	resp = Ready(context.Background(), ok, down)
	if resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %q", resp.Status)
	}
	if !strings.HasPrefix(resp.Checks["cache"], "down:") {
		t.Errorf("expected cache down, got %q", resp.Checks["cache"])
	}
}
