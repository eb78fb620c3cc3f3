package calculator

import "ThrowSentinel/internal/model"

// FilterByTag returns the throw events whose tag is one of tags, or, when
// blacklist is true, those whose tag is not. The empty tag is itself a valid
// filter value: passing "" selects throws that carry no tag at all.
func FilterByTag(events []model.ThrowEvent, tags []string, blacklist bool) []model.ThrowEvent {
	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}

	filtered := make([]model.ThrowEvent, 0, len(events))
	for _, event := range events {
		_, matched := tagSet[event.Tag]
		if matched != blacklist {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// FilterSimulated returns the throw events whose simulated flag equals
// simulated.
func FilterSimulated(events []model.ThrowEvent, simulated bool) []model.ThrowEvent {
	filtered := make([]model.ThrowEvent, 0, len(events))
	for _, event := range events {
		if event.Simulated == simulated {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// FilterHighEffort returns the throw events whose high-effort flag equals
// highEffort.
func FilterHighEffort(events []model.ThrowEvent, highEffort bool) []model.ThrowEvent {
	filtered := make([]model.ThrowEvent, 0, len(events))
	for _, event := range events {
		if event.HighEffort == highEffort {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// SumWorkload sums the chosen workload scalar across throw events.
func SumWorkload(events []model.ThrowEvent, normalized bool) float64 {
	sum := 0.0
	for _, event := range events {
		if normalized {
			sum += event.NormalizedWorkload
		} else {
			sum += event.Workload
		}
	}
	return sum
}
