package model

// RiskZone maps an ACR band to a named load-management zone.
type RiskZone struct {
	Label string
	Level int  // 0 = safe, higher is worse
	Alert bool // whether the zone warrants an alert
}

// RiskAssessment is the output of the risk engine for a single report.
type RiskAssessment struct {
	Zone         RiskZone
	ACR          float64
	Commentary   string
	SpikeWarning string // non-empty when the day's load far exceeds the chronic average
}
