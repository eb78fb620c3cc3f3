package recorder

// DailyMetricsRecord holds one athlete-day of computed workload figures.
type DailyMetricsRecord struct {
	UserID            string
	Date              string
	Acute             float64
	Chronic           float64
	ACR               float64
	NormAcute         float64
	NormChronic       float64
	NormACR           float64
	DailyWorkload     float64
	NormDailyWorkload float64
	ThrowCount        int
	HighEffortCount   int
}

// RiskEventRecord holds one alert-worthy risk assessment.
type RiskEventRecord struct {
	UserID              string
	Date                string
	ACR                 float64
	Zone                string
	ConsecutiveRiskDays int
	Note                string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordMetrics(rec *DailyMetricsRecord) error
	RecordRiskEvent(evt *RiskEventRecord) error
	Close() error
}
