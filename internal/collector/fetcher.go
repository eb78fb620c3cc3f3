package collector

import (
	"context"

	"ThrowSentinel/internal/model"
)

// Fetcher is the data-access surface the collector needs from the Pulse API.
// Dates are ISO 8601 strings; defaulting rules live behind the interface.
type Fetcher interface {
	GetSnapshots(ctx context.Context, startDate, endDate string, userIDs []string) (map[string][]model.DailySnapshot, error)
	GetEvents(ctx context.Context, startDate, endDate string, userIDs []string) (map[string][]model.ThrowEvent, error)
	GetTeam(ctx context.Context) (*model.Team, error)
	Name() string
}
