package commitment

// Capacity is the advisory fullness summary of a trip
type Capacity struct {
	IsFull         bool
	SpotsRemaining *int
	// PipelineTotal is confirmed plus conditional; the waitlist is never
	// folded into the limit comparison.
	PipelineTotal int
	WaitlistCount int
}

// CapacitySummary derives fullness figures from roster counts. A nil limit
// means the trip is unbounded. The result is advisory only: confirming into a
// full trip is not blocked here.
func CapacitySummary(confirmedCount int, capacityLimit *int, conditionalCount, waitlistCount int) Capacity {
	c := Capacity{
		PipelineTotal: confirmedCount + conditionalCount,
		WaitlistCount: waitlistCount,
	}
	if capacityLimit == nil {
		return c
	}

	c.IsFull = confirmedCount >= *capacityLimit
	remaining := max(0, *capacityLimit-confirmedCount)
	c.SpotsRemaining = &remaining
	return c
}
