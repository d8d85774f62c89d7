// Package metrics: 봇 동작 지표를 Prometheus 형식으로 수집한다.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jugalbandi"

// Recorder 는 디스패치/업데이트 지표를 기록한다. nil Recorder는 아무것도 기록하지 않는다.
type Recorder struct {
	registry         *prometheus.Registry
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	updatesTotal     *prometheus.CounterVec
	audioTotal       *prometheus.CounterVec
}

// NewRecorder 는 전용 레지스트리에 Go/프로세스 수집기와 봇 지표를 등록한다.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: registry,
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "QA API calls by endpoint and result.",
		}, []string{"endpoint", "result"}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "QA API call latency.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"endpoint"}),
		updatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Telegram updates by classified kind.",
		}, []string{"kind"}),
		audioTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_delivery_total",
			Help:      "Synthesized answer audio deliveries by result.",
		}, []string{"result"}),
	}
	registry.MustRegister(r.dispatchTotal, r.dispatchDuration, r.updatesTotal, r.audioTotal)
	return r
}

// ObserveDispatch 는 QA API 호출 1회를 기록한다. result는 "success" 또는 에러 분류다.
func (r *Recorder) ObserveDispatch(endpoint, result string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.dispatchTotal.WithLabelValues(endpoint, result).Inc()
	r.dispatchDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveUpdate 는 수신한 업데이트 종류를 기록한다.
func (r *Recorder) ObserveUpdate(kind string) {
	if r == nil {
		return
	}
	r.updatesTotal.WithLabelValues(kind).Inc()
}

// ObserveAudio 는 음성 후속 전송 결과를 기록한다.
func (r *Recorder) ObserveAudio(result string) {
	if r == nil {
		return
	}
	r.audioTotal.WithLabelValues(result).Inc()
}

// Handler 는 /metrics 노출용 핸들러를 반환한다. 응답 압축은 라우터 미들웨어가 맡는다.
func (r *Recorder) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if r != nil {
		gatherer = r.registry
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{DisableCompression: true})
}
