package notifier

import (
	"fmt"
	"strings"

	"ThrowSentinel/internal/model"
)

// zoneEmoji marks each risk zone in chat output.
func zoneEmoji(zone model.RiskZone) string {
	switch {
	case zone.Level >= 3:
		return "🔴"
	case zone.Level == 2:
		return "🟠"
	case zone.Level == 1:
		return "🟡"
	default:
		return "🟢"
	}
}

// FormatRiskAlert formats an alert for a single athlete whose ACR has left
// the safe band.
func FormatRiskAlert(report *model.AthleteReport, assessment *model.RiskAssessment, consecutiveDays int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>Workload alert</b> | %s\n\n", zoneEmoji(assessment.Zone), report.Date))
	b.WriteString(fmt.Sprintf("Athlete: %s\n", report.Name))
	b.WriteString(fmt.Sprintf("Zone: %s (ACR %.2f)\n", assessment.Zone.Label, assessment.ACR))
	b.WriteString(fmt.Sprintf("Acute: %.2f | Chronic: %.2f\n", report.Metrics.NormAcute, report.Metrics.NormChronic))
	if report.ThrowCount > 0 {
		b.WriteString(fmt.Sprintf("Today: %d throws (%d high effort)\n", report.ThrowCount, report.HighEffortCount))
	}
	if consecutiveDays > 1 {
		b.WriteString(fmt.Sprintf("Day %d in a risky zone\n", consecutiveDays))
	}
	if assessment.SpikeWarning != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", assessment.SpikeWarning))
	}
	return b.String()
}

// FormatAthleteStatus formats the on-demand status for one athlete.
func FormatAthleteStatus(report *model.AthleteReport, assessment *model.RiskAssessment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>%s</b> | %s\n\n", zoneEmoji(assessment.Zone), report.Name, report.Date))
	b.WriteString(fmt.Sprintf("ACR: %.2f (%s)\n", assessment.ACR, assessment.Zone.Label))
	b.WriteString(fmt.Sprintf("Acute workload: %.2f\n", report.Metrics.NormAcute))
	b.WriteString(fmt.Sprintf("Chronic workload: %.2f\n", report.Metrics.NormChronic))
	b.WriteString(fmt.Sprintf("Daily workload: %.2f\n", report.Metrics.NormDailyWorkload))
	b.WriteString(fmt.Sprintf("Throws today: %d (%d high effort)\n", report.ThrowCount, report.HighEffortCount))
	if report.SessionWorkload > 0 {
		b.WriteString(fmt.Sprintf("Session workload: %.1f\n", report.SessionWorkload))
	}
	if assessment.SpikeWarning != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", assessment.SpikeWarning))
	}
	return b.String()
}

// FormatTeamSummary formats the team overview sent with the weekly report
// and the /team command.
func FormatTeamSummary(date string, reports []*model.AthleteReport, assessments []*model.RiskAssessment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Team workload summary</b> | %s\n\n", date))
	for i, report := range reports {
		assessment := assessments[i]
		b.WriteString(fmt.Sprintf("%s %s: ACR %.2f (%s), %d throws\n",
			zoneEmoji(assessment.Zone), report.Name, assessment.ACR,
			assessment.Zone.Label, report.ThrowCount))
	}

	var alerting int
	for _, assessment := range assessments {
		if assessment.Zone.Alert {
			alerting++
		}
	}
	b.WriteString("  ─────────────────\n")
	if alerting == 0 {
		b.WriteString("All athletes in a safe zone ✅")
	} else {
		b.WriteString(fmt.Sprintf("%d athlete(s) outside the safe band", alerting))
	}
	return b.String()
}
