package calculator

import (
	"errors"
	"fmt"
	"time"

	"ThrowSentinel/internal/model"
)

const (
	acuteLength   = 9  // days
	chronicLength = 28 // days

	dateLayout = "2006-01-02"
)

// acuteWeights[offset] is the weight applied to the day `offset` days before
// the reference date. Fixed by the vendor's published workload methodology;
// do not re-derive.
var acuteWeights = [acuteLength]float64{1.3, 1.225, 1.15, 1.075, 1.0, 0.925, 0.85, 0.775, 0.7}

// ErrNoSnapshots is returned when a workload computation is attempted over an
// empty snapshot set.
var ErrNoSnapshots = errors.New("no snapshot data")

// WorkloadsByDate converts daily snapshots into a map from calendar date
// (UTC midnight) to the chosen daily workload scalar. Days without a snapshot
// are absent from the map; consumers treat them as zero workload.
func WorkloadsByDate(snapshots []model.DailySnapshot, normalized bool) (map[time.Time]float64, error) {
	workloads := make(map[time.Time]float64, len(snapshots))
	for _, snap := range snapshots {
		day, err := time.Parse(dateLayout, snap.Date)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot date %q: %w", snap.Date, err)
		}
		if normalized {
			workloads[day] = snap.NormDailyWorkload
		} else {
			workloads[day] = snap.DailyWorkload
		}
	}
	return workloads, nil
}

// CalculateAcuteWorkload computes the 9-day exponentially weighted acute
// workload for the given reference date. endDate is expected in ISO 8601 form
// (YYYY-MM-DD); when empty it defaults to the most recent snapshot date.
//
// The dates in snapshots are assumed to be the only days of throwing, and the
// divisor is adjusted accordingly when the history is shorter than the window.
// A reference date with no data within the window yields 0.0; only a
// reference date before all available history is an error.
func CalculateAcuteWorkload(snapshots []model.DailySnapshot, endDate string, normalized bool) (float64, error) {
	workloads, err := WorkloadsByDate(snapshots, normalized)
	if err != nil {
		return 0, err
	}
	start, end, err := windowBounds(workloads, endDate)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for offset := 0; offset < acuteLength; offset++ {
		sum += workloads[end.AddDate(0, 0, -offset)] * acuteWeights[offset]
	}
	return sum / float64(acuteDivisor(daysBetween(start, end))), nil
}

// CalculateChronicWorkload computes the 28-day flat-average chronic workload
// for the given reference date. Defaulting, divisor adjustment, and edge
// cases behave exactly as in CalculateAcuteWorkload.
func CalculateChronicWorkload(snapshots []model.DailySnapshot, endDate string, normalized bool) (float64, error) {
	workloads, err := WorkloadsByDate(snapshots, normalized)
	if err != nil {
		return 0, err
	}
	start, end, err := windowBounds(workloads, endDate)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for offset := 0; offset < chronicLength; offset++ {
		sum += workloads[end.AddDate(0, 0, -offset)]
	}
	return sum / float64(chronicDivisor(daysBetween(start, end))), nil
}

// CalculateACR computes the acute:chronic workload ratio for the given
// reference date. A zero chronic workload yields 0.0 rather than a division
// error; chronic's own date errors still propagate.
func CalculateACR(snapshots []model.DailySnapshot, endDate string, normalized bool) (float64, error) {
	chronic, err := CalculateChronicWorkload(snapshots, endDate, normalized)
	if err != nil {
		return 0, err
	}
	if chronic == 0.0 {
		return 0.0, nil
	}

	acute, err := CalculateAcuteWorkload(snapshots, endDate, normalized)
	if err != nil {
		return 0, err
	}
	return acute / chronic, nil
}

// windowBounds resolves the earliest available date and the reference date
// for a window computation. The reference date must not precede all history.
func windowBounds(workloads map[time.Time]float64, endDate string) (start, end time.Time, err error) {
	if len(workloads) == 0 {
		return time.Time{}, time.Time{}, ErrNoSnapshots
	}

	first := true
	for day := range workloads {
		if first {
			start, end = day, day
			first = false
			continue
		}
		if day.Before(start) {
			start = day
		}
		if day.After(end) {
			end = day
		}
	}

	if endDate != "" {
		end, err = time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse end date %q: %w", endDate, err)
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date after end date: %s > %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}
