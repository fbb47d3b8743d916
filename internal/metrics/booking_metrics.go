package metrics

import "github.com/prometheus/client_golang/prometheus"

// Booking outcomes recorded by BookingMetrics.
const (
	OutcomeListed   = "listed"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// BookingMetrics counts create-show attempts by outcome.
type BookingMetrics struct {
	bookings *prometheus.CounterVec
}

// NewBookingMetrics registers the booking collectors on reg.
func NewBookingMetrics(reg prometheus.Registerer) (*BookingMetrics, error) {
	m := &BookingMetrics{
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fyyur_show_bookings_total",
				Help: "Create-show attempts partitioned by outcome",
			},
			[]string{"outcome"},
		),
	}
	if err := reg.Register(m.bookings); err != nil {
		return nil, err
	}
	return m, nil
}

// Observe increments the counter for outcome.  A nil receiver is a no-op.
func (m *BookingMetrics) Observe(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}
