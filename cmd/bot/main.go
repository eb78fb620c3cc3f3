package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ThrowSentinel/internal/collector"
	"ThrowSentinel/internal/config"
	"ThrowSentinel/internal/notifier"
	"ThrowSentinel/internal/pulse"
	"ThrowSentinel/internal/recorder"
	"ThrowSentinel/internal/roster"
	"ThrowSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ThrowSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Pulse client
	client := pulse.NewClient(cfg.Pulse.BaseURL, cfg.Pulse.ClientID, cfg.Pulse.ClientSecret, cfg.Pulse.RefreshToken, cfg.Proxy)
	if err := client.Authenticate(ctx); err != nil {
		log.Fatalf("[FATAL] pulse authentication: %v", err)
	}
	log.Printf("[INFO] data source: %s (%s)", client.Name(), client)

	// Init collector
	col := collector.NewCollector(client, cfg.Roster.UserIDs)

	// Init roster manager
	rm, err := roster.NewManager(cfg.Roster.StateFile, time.Duration(cfg.Roster.AlertCooldownHours)*time.Hour)
	if err != nil {
		log.Fatalf("[FATAL] init roster manager: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, rm, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily check now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] ThrowSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] ThrowSentinel stopped")
}
