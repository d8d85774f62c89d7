package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/httpserver"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunHTTPServer_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := httpserver.NewServer("127.0.0.1:0", http.NewServeMux(), httpserver.ServerOptions{})

	taskStarted := make(chan struct{})
	task := BackgroundTask{
		Name: "waiter",
		Run: func(ctx context.Context) error {
			close(taskStarted)
			<-ctx.Done()
			return nil
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- RunHTTPServer(ctx, newDiscardLogger(), "test", server, time.Second, task)
	}()

	<-taskStarted
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTPServer did not stop after cancel")
	}
}

func TestRunHTTPServer_PropagatesTaskFailure(t *testing.T) {
	server := httpserver.NewServer("127.0.0.1:0", http.NewServeMux(), httpserver.ServerOptions{})
	boom := errors.New("boom")

	app := NewServerApp("test", newDiscardLogger(), server, time.Second, BackgroundTask{
		Name: "failing",
		Run: func(context.Context) error {
			return boom
		},
	})

	done := make(chan error, 1)
	go func() {
		done <- app.Run(context.Background())
	}()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTPServer did not stop after task failure")
	}
}

func TestServerApp_NilRun(t *testing.T) {
	var app *ServerApp
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
