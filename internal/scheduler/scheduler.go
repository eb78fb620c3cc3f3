package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ThrowSentinel/internal/collector"
	"ThrowSentinel/internal/model"
	"ThrowSentinel/internal/notifier"
	"ThrowSentinel/internal/recorder"
	"ThrowSentinel/internal/risk"
	"ThrowSentinel/internal/roster"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Roster    *roster.Manager
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rm *roster.Manager, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Roster:    rm,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily workload check and the weekly team summary.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyCheck); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily check immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyCheck()
}

func (s *Scheduler) dailyCheck() {
	log.Println("[INFO] running daily workload check")
	reports, err := s.Collector.CollectTeam(s.Ctx, "")
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily workload collection failed: %v", err))
		return
	}

	now := time.Now()
	for _, report := range reports {
		assessment := risk.Assess(report)

		if err := s.Recorder.RecordMetrics(metricsRecord(report)); err != nil {
			log.Printf("[ERROR] record metrics for %s: %v", report.UserID, err)
		}

		shouldAlert := s.Roster.RecordAssessment(report.UserID, assessment, now)
		if !shouldAlert {
			continue
		}

		var consecutive int
		if state, ok := s.Roster.AthleteState(report.UserID); ok {
			consecutive = state.ConsecutiveRiskDays
		}
		s.trySend(notifier.FormatRiskAlert(report, assessment, consecutive))

		if err := s.Recorder.RecordRiskEvent(&recorder.RiskEventRecord{
			UserID:              report.UserID,
			Date:                report.Date,
			ACR:                 assessment.ACR,
			Zone:                assessment.Zone.Label,
			ConsecutiveRiskDays: consecutive,
			Note:                assessment.Commentary,
		}); err != nil {
			log.Printf("[ERROR] record risk event for %s: %v", report.UserID, err)
		}
	}
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly team summary")
	reports, err := s.Collector.CollectTeam(s.Ctx, "")
	if err != nil {
		log.Printf("[ERROR] weekly collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Weekly summary collection failed: %v", err))
		return
	}
	if len(reports) == 0 {
		log.Println("[WARN] weekly summary: no athlete reports")
		return
	}

	assessments := make([]*model.RiskAssessment, len(reports))
	for i, report := range reports {
		assessments[i] = risk.Assess(report)
	}
	s.trySend(notifier.FormatTeamSummary(reports[0].Date, reports, assessments))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch {
	case command == "/report":
		s.dailyCheck()
		return ""
	case command == "/team":
		reports, err := s.Collector.CollectTeam(s.Ctx, "")
		if err != nil {
			return fmt.Sprintf("❌ Collection failed: %v", err)
		}
		if len(reports) == 0 {
			return "No athlete data available"
		}
		assessments := make([]*model.RiskAssessment, len(reports))
		for i, report := range reports {
			assessments[i] = risk.Assess(report)
		}
		return notifier.FormatTeamSummary(reports[0].Date, reports, assessments)
	case strings.HasPrefix(command, "/athlete "):
		userID := strings.TrimSpace(strings.TrimPrefix(command, "/athlete "))
		report, err := s.Collector.CollectAthlete(s.Ctx, userID, userID, "")
		if err != nil {
			return fmt.Sprintf("❌ Collection failed for %s: %v", userID, err)
		}
		return notifier.FormatAthleteStatus(report, risk.Assess(report))
	default:
		return "Available commands:\n• /report\n• /team\n• /athlete <id>"
	}
}

func metricsRecord(report *model.AthleteReport) *recorder.DailyMetricsRecord {
	return &recorder.DailyMetricsRecord{
		UserID:            report.UserID,
		Date:              report.Date,
		Acute:             report.Metrics.Acute,
		Chronic:           report.Metrics.Chronic,
		ACR:               report.Metrics.ACR,
		NormAcute:         report.Metrics.NormAcute,
		NormChronic:       report.Metrics.NormChronic,
		NormACR:           report.Metrics.NormACR,
		DailyWorkload:     report.Metrics.DailyWorkload,
		NormDailyWorkload: report.Metrics.NormDailyWorkload,
		ThrowCount:        report.ThrowCount,
		HighEffortCount:   report.HighEffortCount,
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
