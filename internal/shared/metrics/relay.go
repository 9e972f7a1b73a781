package metrics

import "github.com/prometheus/client_golang/prometheus"

// Relay agrupa os contadores do pipeline webhook -> telegram -> histórico
type Relay struct {
	Received      *prometheus.CounterVec // por origem
	Notifications *prometheus.CounterVec // por resultado: ok | failed
	StoreErrors   prometheus.Counter
	OddsFetches   *prometheus.CounterVec // por resultado: ok | cached | failed
}

// NewRelay cria e registra os contadores no registerer informado
func NewRelay(reg prometheus.Registerer) *Relay {
	m := &Relay{
		Received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_webhooks_received_total",
			Help: "análises recebidas por origem",
		}, []string{"origin"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_notifications_total",
			Help: "envios ao telegram por resultado",
		}, []string{"result"}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_history_write_errors_total",
			Help: "falhas ao gravar o histórico",
		}),
		OddsFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_odds_fetch_total",
			Help: "consultas ao provedor de odds por resultado",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Received, m.Notifications, m.StoreErrors, m.OddsFetches)
	return m
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

// Callbacks para o servidor HTTP; evitam acoplar os handlers ao prometheus
func (m *Relay) OnIngested(origin string) { m.Received.WithLabelValues(origin).Inc() }
func (m *Relay) OnNotify(ok bool)         { m.Notifications.WithLabelValues(result(ok)).Inc() }
func (m *Relay) OnStoreError()            { m.StoreErrors.Inc() }
func (m *Relay) OnOddsFetch(res string)   { m.OddsFetches.WithLabelValues(res).Inc() }
