package roster

import (
	"log"
	"sync"
	"time"

	"ThrowSentinel/internal/model"
)

// recentACRWindow caps how many daily ratios are kept per athlete.
const recentACRWindow = 14

// Manager tracks per-athlete alert state with concurrency safety, persisting
// it to disk after every change.
type Manager struct {
	mu       sync.Mutex
	state    *model.RosterState
	filePath string
	cooldown time.Duration
}

// NewManager creates a Manager, loading or initializing state from disk.
// cooldown is the minimum gap between repeated alerts for the same athlete.
func NewManager(filePath string, cooldown time.Duration) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	if state.Athletes == nil {
		state.Athletes = make(map[string]*model.AthleteState)
	}

	m := &Manager{state: state, filePath: filePath, cooldown: cooldown}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordAssessment folds a day's risk assessment into the athlete's state
// and reports whether an alert should be sent now. Alerts fire only for
// alerting zones and respect the per-athlete cooldown.
func (m *Manager) RecordAssessment(userID string, assessment *model.RiskAssessment, at time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	athlete := m.state.Athletes[userID]
	if athlete == nil {
		athlete = &model.AthleteState{}
		m.state.Athletes[userID] = athlete
	}

	athlete.RecentACRs = append(athlete.RecentACRs, assessment.ACR)
	if len(athlete.RecentACRs) > recentACRWindow {
		athlete.RecentACRs = athlete.RecentACRs[len(athlete.RecentACRs)-recentACRWindow:]
	}

	if assessment.Zone.Alert {
		athlete.ConsecutiveRiskDays++
	} else {
		athlete.ConsecutiveRiskDays = 0
	}

	shouldAlert := assessment.Zone.Alert && at.Sub(athlete.LastAlertAt) >= m.cooldown
	if shouldAlert {
		athlete.LastAlertAt = at
	}

	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save roster state: %v", err)
	}
	return shouldAlert
}

// AthleteState returns a copy of one athlete's state.
func (m *Manager) AthleteState(userID string) (model.AthleteState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	athlete := m.state.Athletes[userID]
	if athlete == nil {
		return model.AthleteState{}, false
	}
	copied := *athlete
	copied.RecentACRs = append([]float64(nil), athlete.RecentACRs...)
	return copied, true
}

// GetState returns a deep copy of the full roster state.
func (m *Manager) GetState() model.RosterState {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := model.RosterState{
		Athletes:  make(map[string]*model.AthleteState, len(m.state.Athletes)),
		UpdatedAt: m.state.UpdatedAt,
	}
	for id, athlete := range m.state.Athletes {
		copied := *athlete
		copied.RecentACRs = append([]float64(nil), athlete.RecentACRs...)
		out.Athletes[id] = &copied
	}
	return out
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
