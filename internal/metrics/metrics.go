package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "navaro",
		Name:      "appointments_created_total",
		Help:      "Agendamentos criados com sucesso.",
	})

	AppointmentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "navaro",
		Name:      "appointments_completed_total",
		Help:      "Agendamentos concluídos (liquidação executada).",
	})

	ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "navaro",
		Name:      "appointment_validation_rejections_total",
		Help:      "Reservas rejeitadas pelo validador, por motivo.",
	}, []string{"reason"})

	PaymentsSucceeded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "navaro",
		Name:      "payments_succeeded_total",
		Help:      "Pagamentos confirmados, por provedor.",
	}, []string{"provider"})

	QueueJoins = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "navaro",
		Name:      "queue_joins_total",
		Help:      "Entradas na fila de atendimento.",
	})

	SettlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "navaro",
		Name:      "settlement_duration_seconds",
		Help:      "Duração da liquidação financeira na conclusão.",
		Buckets:   prometheus.DefBuckets,
	})
)
