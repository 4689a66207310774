package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks account and grant creation.
type Metrics struct {
	AccountsCreated prometheus.Counter
	GrantsCreated   *prometheus.CounterVec
	Rejections      *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
}

// New registers every metric on reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AccountsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "poa_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		GrantsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poa_grants_created_total",
			Help: "Total number of power of attorney grants created, by authorization",
		}, []string{"authorization"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poa_commands_rejected_total",
			Help: "Commands rejected by domain rules, by command and reason",
		}, []string{"command", "reason"}),
		CommandDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "poa_command_duration_seconds",
			Help:    "Duration of create commands including store calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"command"}),
	}
}

func (m *Metrics) IncrementAccountCreated() {
	m.AccountsCreated.Inc()
}

func (m *Metrics) IncrementGrantCreated(authorization string) {
	m.GrantsCreated.WithLabelValues(authorization).Inc()
}

func (m *Metrics) IncrementRejected(command, reason string) {
	m.Rejections.WithLabelValues(command, reason).Inc()
}

// ObserveCommand records the duration of command since start.
func (m *Metrics) ObserveCommand(command string, start time.Time) {
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}
