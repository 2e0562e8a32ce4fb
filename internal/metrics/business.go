package metrics

import "time"

// IncrementTripCreated increments trip creation counter
func (m *Metrics) IncrementTripCreated() {
	m.safeExecute("IncrementTripCreated", func() {
		m.TripCreatedTotal.Inc()
	})
}

// RecordCommitmentUpdate counts a saved commitment by its resulting status
func (m *Metrics) RecordCommitmentUpdate(status string) {
	m.safeExecute("RecordCommitmentUpdate", func() {
		m.CommitmentUpdatesTotal.WithLabelValues(status).Inc()
	})
}

// RecordCommitmentWarning counts an advisory warning by code
func (m *Metrics) RecordCommitmentWarning(code string) {
	m.safeExecute("RecordCommitmentWarning", func() {
		m.CommitmentWarningsTotal.WithLabelValues(code).Inc()
	})
}

// IncrementConditionReminders adds n sent reminders
func (m *Metrics) IncrementConditionReminders(n int) {
	if n <= 0 {
		return
	}
	m.safeExecute("IncrementConditionReminders", func() {
		m.ConditionRemindersSentTotal.Add(float64(n))
	})
}

// ObserveRosterCompute records how long a roster took to build
func (m *Metrics) ObserveRosterCompute(d time.Duration) {
	m.safeExecute("ObserveRosterCompute", func() {
		m.RosterComputeDuration.Observe(d.Seconds())
	})
}

// SetTripsTotal sets total trips gauge
func (m *Metrics) SetTripsTotal(count int64) {
	m.safeExecute("SetTripsTotal", func() {
		m.TripsTotal.Set(float64(count))
	})
}

// SetParticipantsTotal sets total participants gauge
func (m *Metrics) SetParticipantsTotal(count int64) {
	m.safeExecute("SetParticipantsTotal", func() {
		m.ParticipantsTotal.Set(float64(count))
	})
}

// SetConditionalParticipants sets the conditional participants gauge
func (m *Metrics) SetConditionalParticipants(count int64) {
	m.safeExecute("SetConditionalParticipants", func() {
		m.ConditionalParticipants.Set(float64(count))
	})
}
