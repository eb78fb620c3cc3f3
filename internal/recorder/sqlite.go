package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			user_id             TEXT NOT NULL,
			date                TEXT NOT NULL,
			acute               REAL,
			chronic             REAL,
			acr                 REAL,
			norm_acute          REAL,
			norm_chronic        REAL,
			norm_acr            REAL,
			daily_workload      REAL,
			norm_daily_workload REAL,
			throw_count         INTEGER,
			high_effort_count   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_user_date ON daily_metrics(user_id, date)`,

		`CREATE TABLE IF NOT EXISTS risk_events (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp             INTEGER NOT NULL,
			user_id               TEXT NOT NULL,
			date                  TEXT NOT NULL,
			acr                   REAL,
			zone                  TEXT,
			consecutive_risk_days INTEGER,
			note                  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_risk_user_date ON risk_events(user_id, date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordMetrics(rec *DailyMetricsRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO daily_metrics
		(timestamp, user_id, date, acute, chronic, acr,
		 norm_acute, norm_chronic, norm_acr,
		 daily_workload, norm_daily_workload, throw_count, high_effort_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.UserID, rec.Date,
		rec.Acute, rec.Chronic, rec.ACR,
		rec.NormAcute, rec.NormChronic, rec.NormACR,
		rec.DailyWorkload, rec.NormDailyWorkload,
		rec.ThrowCount, rec.HighEffortCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordRiskEvent(evt *RiskEventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO risk_events
		(timestamp, user_id, date, acr, zone, consecutive_risk_days, note)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.UserID, evt.Date,
		evt.ACR, evt.Zone, evt.ConsecutiveRiskDays, evt.Note,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
