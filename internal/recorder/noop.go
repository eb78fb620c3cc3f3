package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordMetrics(_ *DailyMetricsRecord) error { return nil }
func (n *NoopRecorder) RecordRiskEvent(_ *RiskEventRecord) error  { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
