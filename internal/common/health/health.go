// Package health: 서비스 상태 정보
package health

import (
	"context"
	"runtime"
	"sync"
	"time"
)

var (
	startTime = time.Now()
	version   = "dev"
	initOnce  sync.Once
)

// Init: 서비스 시작 시 호출 (버전 정보 설정)
func Init(v string) {
	initOnce.Do(func() {
		startTime = time.Now()
		if v != "" {
			version = v
		}
	})
}

// Response: /health 엔드포인트 표준 응답
type Response struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime"`
	Goroutines int               `json:"goroutines"`
	Checks     map[string]string `json:"checks,omitempty"`
}

// Check: 준비 상태 검사 항목. Run이 에러를 반환하면 해당 의존성은 down으로 표시된다.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Get: 현재 상태 반환
func Get() Response {
	return Response{
		Status:     "ok",
		Version:    version,
		Uptime:     formatDuration(time.Since(startTime)),
		Goroutines: runtime.NumGoroutine(),
	}
}

// Ready: 의존성 검사를 포함한 상태 반환. 하나라도 실패하면 Status는 "degraded".
func Ready(ctx context.Context, checks ...Check) Response {
	resp := Get()
	if len(checks) == 0 {
		return resp
	}

	resp.Checks = make(map[string]string, len(checks))
	for _, check := range checks {
		if check.Run == nil {
			continue
		}
		if err := check.Run(ctx); err != nil {
			resp.Checks[check.Name] = "down: " + err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Checks[check.Name] = "ok"
	}
	return resp
}

// formatDuration: Duration을 초 단위로 반올림
func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
