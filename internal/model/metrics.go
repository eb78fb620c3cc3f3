package model

// WorkloadMetrics holds all derived workload figures for one athlete on one
// reference date, in both raw and normalized form.
type WorkloadMetrics struct {
	Acute             float64
	Chronic           float64
	ACR               float64
	NormAcute         float64
	NormChronic       float64
	NormACR           float64
	DailyWorkload     float64
	NormDailyWorkload float64
}

// AthleteReport is the per-athlete daily rollup produced by the collector.
type AthleteReport struct {
	UserID string
	Name   string
	Date   string // ISO 8601 reference date

	Metrics WorkloadMetrics

	// Counts and sums over the reference day's live (non-simulated) throws.
	ThrowCount          int
	HighEffortCount     int
	SessionWorkload     float64
	NormSessionWorkload float64
}
