package calculator

// acuteDivisor returns the divisor for the acute workload average, given the
// span in days between the earliest available date and the reference date.
// With a full week or more of history the divisor is the window length; with
// less it shrinks toward the available span so that a short history is not
// understated (span 0, the first day of throwing, divides by 3, growing by
// one per additional day).
func acuteDivisor(span int) int {
	if span >= 6 {
		return acuteLength
	}
	return span + 3
}

// chronicDivisor is the chronic-window counterpart of acuteDivisor: span 0
// divides by 5, growing by one per day until the full 28 at span 23.
func chronicDivisor(span int) int {
	if span >= 23 {
		return chronicLength
	}
	return span + 5
}
