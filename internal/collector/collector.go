package collector

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ThrowSentinel/internal/calculator"
	"ThrowSentinel/internal/model"
)

// snapshotLookback is how many days of history are pulled before the
// reference date: the chronic window plus a week of slack so the dynamic
// divisors see the athlete's full recent history.
const snapshotLookback = 35

const dateLayout = "2006-01-02"

// MockFetcher returns canned data for development and testing.
type MockFetcher struct {
	Snapshots map[string][]model.DailySnapshot
	Events    map[string][]model.ThrowEvent
	Team      *model.Team
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) GetSnapshots(_ context.Context, _, _ string, userIDs []string) (map[string][]model.DailySnapshot, error) {
	out := make(map[string][]model.DailySnapshot, len(userIDs))
	for _, id := range userIDs {
		out[id] = m.Snapshots[id]
	}
	return out, nil
}

func (m *MockFetcher) GetEvents(_ context.Context, _, _ string, userIDs []string) (map[string][]model.ThrowEvent, error) {
	out := make(map[string][]model.ThrowEvent, len(userIDs))
	for _, id := range userIDs {
		out[id] = m.Events[id]
	}
	return out, nil
}

func (m *MockFetcher) GetTeam(_ context.Context) (*model.Team, error) {
	if m.Team == nil {
		return &model.Team{}, nil
	}
	return m.Team, nil
}

// Collector orchestrates data fetching and workload computation.
type Collector struct {
	Fetcher Fetcher
	UserIDs []string // explicit athlete list; empty means the whole team
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, userIDs []string) *Collector {
	return &Collector{Fetcher: fetcher, UserIDs: userIDs}
}

// CollectAthlete fetches one athlete's recent snapshots and the reference
// day's throw events, and derives all workload metrics. endDate is ISO 8601;
// empty means today.
func (c *Collector) CollectAthlete(ctx context.Context, userID, name, endDate string) (*model.AthleteReport, error) {
	if endDate == "" {
		endDate = time.Now().Format(dateLayout)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", endDate, err)
	}
	startDate := end.AddDate(0, 0, -(snapshotLookback - 1)).Format(dateLayout)

	snapshotsByUser, err := c.Fetcher.GetSnapshots(ctx, startDate, endDate, []string{userID})
	if err != nil {
		return nil, fmt.Errorf("fetch snapshots for %s: %w", userID, err)
	}
	snapshots := snapshotsByUser[userID]
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshots for %s in %s..%s: %w", userID, startDate, endDate, calculator.ErrNoSnapshots)
	}

	report := &model.AthleteReport{UserID: userID, Name: name, Date: endDate}
	report.Metrics = computeMetrics(snapshots, endDate)

	// The reference day's own snapshot carries the daily workload figures.
	for _, snap := range snapshots {
		if snap.Date == endDate {
			report.Metrics.DailyWorkload = snap.DailyWorkload
			report.Metrics.NormDailyWorkload = snap.NormDailyWorkload
			break
		}
	}

	eventsByUser, err := c.Fetcher.GetEvents(ctx, endDate, endDate, []string{userID})
	if err != nil {
		log.Printf("[WARN] fetch events for %s failed: %v, throw counts unavailable", userID, err)
		return report, nil
	}
	live := calculator.FilterSimulated(eventsByUser[userID], false)
	report.ThrowCount = len(live)
	report.HighEffortCount = len(calculator.FilterHighEffort(live, true))
	report.SessionWorkload = calculator.SumWorkload(live, false)
	report.NormSessionWorkload = calculator.SumWorkload(live, true)

	return report, nil
}

// CollectTeam produces a report for every tracked athlete. With no explicit
// user list the roster comes from the session owner's team. Athletes that
// fail to collect are skipped with a warning rather than failing the run.
func (c *Collector) CollectTeam(ctx context.Context, endDate string) ([]*model.AthleteReport, error) {
	athletes, err := c.resolveAthletes(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*model.AthleteReport, 0, len(athletes))
	for _, athlete := range athletes {
		report, err := c.CollectAthlete(ctx, athlete.userID, athlete.name, endDate)
		if err != nil {
			log.Printf("[WARN] collect %s: %v", athlete.userID, err)
			continue
		}
		reports = append(reports, report)
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("no athlete reports collected")
	}
	return reports, nil
}

type athlete struct {
	userID string
	name   string
}

func (c *Collector) resolveAthletes(ctx context.Context) ([]athlete, error) {
	if len(c.UserIDs) > 0 {
		athletes := make([]athlete, 0, len(c.UserIDs))
		for _, id := range c.UserIDs {
			athletes = append(athletes, athlete{userID: id, name: id})
		}
		return athletes, nil
	}

	team, err := c.Fetcher.GetTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch team: %w", err)
	}
	if len(team.Members) == 0 {
		return nil, fmt.Errorf("team %q has no members", team.Team.Name)
	}
	athletes := make([]athlete, 0, len(team.Members))
	for _, member := range team.Members {
		name := strings.TrimSpace(member.FirstName + " " + member.LastName)
		if name == "" {
			name = member.UserID
		}
		athletes = append(athletes, athlete{userID: member.UserID, name: name})
	}
	return athletes, nil
}

// computeMetrics derives acute, chronic, and ACR in both raw and normalized
// form. A failed metric is logged and left at zero so one bad figure does not
// sink the whole report.
func computeMetrics(snapshots []model.DailySnapshot, endDate string) model.WorkloadMetrics {
	var metrics model.WorkloadMetrics

	if v, err := calculator.CalculateAcuteWorkload(snapshots, endDate, false); err != nil {
		log.Printf("[WARN] acute workload calculation failed: %v", err)
	} else {
		metrics.Acute = v
	}
	if v, err := calculator.CalculateChronicWorkload(snapshots, endDate, false); err != nil {
		log.Printf("[WARN] chronic workload calculation failed: %v", err)
	} else {
		metrics.Chronic = v
	}
	if v, err := calculator.CalculateACR(snapshots, endDate, false); err != nil {
		log.Printf("[WARN] ACR calculation failed: %v", err)
	} else {
		metrics.ACR = v
	}

	if v, err := calculator.CalculateAcuteWorkload(snapshots, endDate, true); err != nil {
		log.Printf("[WARN] normalized acute workload calculation failed: %v", err)
	} else {
		metrics.NormAcute = v
	}
	if v, err := calculator.CalculateChronicWorkload(snapshots, endDate, true); err != nil {
		log.Printf("[WARN] normalized chronic workload calculation failed: %v", err)
	} else {
		metrics.NormChronic = v
	}
	if v, err := calculator.CalculateACR(snapshots, endDate, true); err != nil {
		log.Printf("[WARN] normalized ACR calculation failed: %v", err)
	} else {
		metrics.NormACR = v
	}

	return metrics
}
