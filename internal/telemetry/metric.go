package telemetry

import (
	"strconv"
	"strings"
	"time"

	"bitlink/config"
	"bitlink/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// Metric struct；未啟用時所有欄位為 nil，方法皆可安全呼叫
type Metric struct {
	Registry           *prometheus.Registry
	ApiRequestsTotal   *prometheus.CounterVec
	ApiRequestDuration *prometheus.HistogramVec
	LookupSuccessTotal *prometheus.CounterVec
	LookupFailTotal    *prometheus.CounterVec
	config             *config.Configuration
}

// NewMetric 建立所有指標；cleanup 在設定了 Pushgateway 時把指標推送出去
func NewMetric(config *config.Configuration, logger *zap.Logger) (*Metric, func()) {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}, func() {}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	m := &Metric{
		Registry: registry,
		config:   config,
		ApiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricApiRequestsTotal),
				Help: "Outgoing HTTP requests (Bitly API and long url probes)",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ApiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricName(config, core.MetricApiRequestDuration),
				Help:    "Outgoing HTTP request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		LookupSuccessTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricLookupSuccessTotal),
				Help: "Successful shorten / click lookups",
			},
			labelNames(core.MetricLabelOperation),
		),
		LookupFailTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricLookupFailTotal),
				Help: "Failed shorten / click lookups",
			},
			labelNames(core.MetricLabelOperation, core.MetricLabelReason),
		),
	}

	cleanup := func() {
		if err := m.Push(); err != nil {
			logger.Warn("failed to push metrics", zap.Error(err))
		}
	}
	return m, cleanup
}

// ObserveRequest 記錄一次對外請求；status 為 0 代表請求沒送出去
func (m *Metric) ObserveRequest(endpoint core.BitlyEndpoint, status int, elapsed time.Duration) {
	if m == nil || m.ApiRequestsTotal == nil {
		return
	}
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.ApiRequestsTotal.WithLabelValues(string(endpoint), statusLabel).Inc()
	m.ApiRequestDuration.WithLabelValues(string(endpoint)).Observe(elapsed.Seconds())
}

func (m *Metric) LookupSucceeded(op core.Operation) {
	if m == nil || m.LookupSuccessTotal == nil {
		return
	}
	m.LookupSuccessTotal.WithLabelValues(string(op)).Inc()
}

func (m *Metric) LookupFailed(op core.Operation, reason string) {
	if m == nil || m.LookupFailTotal == nil {
		return
	}
	m.LookupFailTotal.WithLabelValues(string(op), reason).Inc()
}

// Push 把 registry 推到 Pushgateway；未設定時不做事
func (m *Metric) Push() error {
	if m == nil || m.Registry == nil || m.config.Telemetry.Metric.PushGatewayUrl == "" {
		return nil
	}
	job := m.config.Telemetry.Metric.Job
	if job == "" {
		job = m.config.App.Name
	}
	return push.New(m.config.Telemetry.Metric.PushGatewayUrl, job).
		Gatherer(m.Registry).
		Push()
}

func metricName(config *config.Configuration, name core.MetricName) string {
	prefix := strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, config.App.Name)
	if prefix == "" {
		return string(name)
	}
	return prefix + "_" + string(name)
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
