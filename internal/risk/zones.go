package risk

import (
	"fmt"

	"ThrowSentinel/internal/model"
)

// Zones is the ordered ACR classification table. An athlete falls into the
// first zone whose MinACR does not exceed their ratio. The 0.8-1.3 band is
// the published "sweet spot" for throwing load management.
var Zones = []struct {
	MinACR float64
	Zone   model.RiskZone
}{
	{1.5, model.RiskZone{Label: "danger", Level: 3, Alert: true}},
	{1.3, model.RiskZone{Label: "caution", Level: 2, Alert: true}},
	{0.8, model.RiskZone{Label: "sweet spot", Level: 0}},
	{0.0, model.RiskZone{Label: "detraining", Level: 1}},
}

// RampUpZone covers athletes with no chronic workload yet: the ratio
// computation short-circuits to 0.0 on a zero chronic, which is a new or
// returning thrower rather than a detrained one.
var RampUpZone = model.RiskZone{Label: "ramp-up", Level: 1}

// spikeFactor flags a single day whose workload exceeds this multiple of the
// chronic daily average.
const spikeFactor = 1.5

// zoneFor maps an ACR value to a RiskZone.
func zoneFor(acr float64) model.RiskZone {
	if acr == 0.0 {
		return RampUpZone
	}
	for _, z := range Zones {
		if acr >= z.MinACR {
			return z.Zone
		}
	}
	return Zones[len(Zones)-1].Zone
}

// Assess classifies an athlete's daily report into a risk zone, with a spike
// warning when the day's load is far above the chronic average. Normalized
// figures are used throughout so athletes are comparable.
func Assess(report *model.AthleteReport) *model.RiskAssessment {
	acr := report.Metrics.NormACR
	zone := zoneFor(acr)

	assessment := &model.RiskAssessment{
		Zone:       zone,
		ACR:        acr,
		Commentary: fmt.Sprintf("ACR %.2f (%s)", acr, zone.Label),
	}

	chronic := report.Metrics.NormChronic
	daily := report.Metrics.NormDailyWorkload
	if chronic > 0 && daily > spikeFactor*chronic {
		assessment.SpikeWarning = fmt.Sprintf("daily workload %.1f is %.1fx the chronic average %.1f",
			daily, daily/chronic, chronic)
	}
	return assessment
}
