package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DashboardMetrics métricas da carga e normalização das vendas
type DashboardMetrics struct {
	normalizedRows  *prometheus.CounterVec
	refreshDuration *prometheus.HistogramVec
	canonicalRows   prometheus.Gauge
}

// NewDashboardMetrics registra as métricas no registerer informado.
// Com registerer nulo as métricas são ignoradas.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	if reg == nil {
		return &DashboardMetrics{}
	}

	normalizedRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_dashboard_normalized_rows_total",
		Help: "Registros processados pela normalização, por resultado.",
	}, []string{"outcome"})
	refreshDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_dashboard_refresh_duration_seconds",
		Help:    "Duração da atualização da tabela de vendas em segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	canonicalRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sales_dashboard_canonical_rows",
		Help: "Quantidade de vendas na tabela em memória.",
	})

	reg.MustRegister(normalizedRows, refreshDuration, canonicalRows)

	return &DashboardMetrics{
		normalizedRows:  normalizedRows,
		refreshDuration: refreshDuration,
		canonicalRows:   canonicalRows,
	}
}

// AddRows soma count registros ao resultado outcome
func (m *DashboardMetrics) AddRows(outcome string, count int) {
	if m == nil || m.normalizedRows == nil || count <= 0 {
		return
	}
	m.normalizedRows.WithLabelValues(normalizeLabel(outcome)).Add(float64(count))
}

// ObserveRefresh registra a duração de uma atualização
func (m *DashboardMetrics) ObserveRefresh(status string, duration time.Duration) {
	if m == nil || m.refreshDuration == nil {
		return
	}
	m.refreshDuration.WithLabelValues(normalizeLabel(status)).Observe(duration.Seconds())
}

// SetCanonicalRows atualiza o tamanho da tabela em memória
func (m *DashboardMetrics) SetCanonicalRows(count int) {
	if m == nil || m.canonicalRows == nil {
		return
	}
	m.canonicalRows.Set(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
