package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StatsRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petshop_stats_refreshes_total",
			Help: "Total de recálculos de estatísticas por resultado",
		},
		[]string{"kind", "result"},
	)

	StatsRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "petshop_stats_refresh_duration_seconds",
			Help: "Duração dos recálculos de estatísticas",
		},
		[]string{"kind"},
	)

	RealtimeNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petshop_realtime_notifications_total",
			Help: "Notificações LISTEN/NOTIFY recebidas por canal",
		},
		[]string{"channel"},
	)

	WebhookCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petshop_webhook_calls_total",
			Help: "Chamadas de webhook por endpoint e resultado",
		},
		[]string{"endpoint", "result"},
	)

	ReportExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petshop_report_exports_total",
			Help: "Arquivos exportados por entidade e formato",
		},
		[]string{"entity", "format"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petshop_http_requests_total",
			Help: "Requisições HTTP por rota, método e status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "petshop_http_request_duration_seconds",
			Help: "Duração das requisições HTTP por rota",
		},
		[]string{"route", "method"},
	)
)

// Handler expõe as métricas no formato do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush mantém o suporte a streaming (SSE) quando o writer original suporta
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// InstrumentRoute registra contagem e duração usando o path registrado da rota,
// evitando cardinalidade alta com IDs na URL.
func InstrumentRoute(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
