// metrics - пакет с метриками Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result для метрики кэша отрисовки.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	// PayloadBuilt - количество успешно построенных содержимых QR-кода по типам.
	PayloadBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrgen_payload_built_total",
			Help: "Total number of successfully built QR payloads",
		},
		[]string{"type"},
	)

	// PayloadRejected - количество отклоненных форм по типам.
	PayloadRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrgen_payload_rejected_total",
			Help: "Total number of QR payloads rejected by validation",
		},
		[]string{"type"},
	)

	// RenderFailures - количество ошибок внешнего сервиса отрисовки.
	RenderFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qrgen_render_failures_total",
			Help: "Total number of failed QR render calls",
		},
	)

	// RenderDuration - время отрисовки QR-кода.
	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qrgen_render_duration_seconds",
			Help:    "Duration of QR render calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// JournalFailures - количество ошибок записи в журнал запросов.
	JournalFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qrgen_journal_failures_total",
			Help: "Total number of failed request journal writes",
		},
	)

	// RenderCache - обращения к кэшу отрисовки по результату.
	RenderCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrgen_render_cache_total",
			Help: "Render cache lookups by result",
		},
		[]string{"result"},
	)
)
