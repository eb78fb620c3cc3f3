package model

import "time"

// AthleteState tracks alert bookkeeping for one athlete.
type AthleteState struct {
	RecentACRs          []float64 `json:"recent_acrs"`
	ConsecutiveRiskDays int       `json:"consecutive_risk_days"`
	LastAlertAt         time.Time `json:"last_alert_at"`
}

// RosterState is the persisted alert state for the whole roster.
type RosterState struct {
	Athletes  map[string]*AthleteState `json:"athletes"`
	UpdatedAt time.Time                `json:"updated_at"`
}
