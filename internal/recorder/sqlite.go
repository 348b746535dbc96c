package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the scheduler writes.
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
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol        TEXT NOT NULL,
			timestamp     INTEGER NOT NULL,
			source        TEXT,
			price         REAL,
			sma50         REAL,
			sma200        REAL,
			trend         TEXT,
			rsi           REAL,
			rsi_signal    TEXT,
			support       REAL,
			resistance    REAL,
			volume        REAL,
			volume_sma    REAL,
			volume_status TEXT,
			news_count    INTEGER,
			avg_polarity  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON analysis_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS rsi_alerts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL,
			timestamp  INTEGER NOT NULL,
			signal     TEXT,
			rsi        REAL,
			price      REAL,
			delivered  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_symbol_ts ON rsi_alerts(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analysis_snapshots
		(symbol, timestamp, source, price, sma50, sma200, trend, rsi, rsi_signal,
		 support, resistance, volume, volume_sma, volume_status, news_count, avg_polarity)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.Symbol, snap.Timestamp.UnixMilli(), snap.Source,
		snap.Price, snap.SMA50, snap.SMA200, snap.Trend,
		snap.RSI, snap.RSISignal, snap.Support, snap.Resistance,
		snap.Volume, snap.VolumeSMA, snap.VolumeStatus,
		snap.NewsCount, snap.AvgPolarity,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	if evt.Delivered {
		delivered = 1
	}
	_, err := r.db.Exec(`INSERT INTO rsi_alerts
		(symbol, timestamp, signal, rsi, price, delivered)
		VALUES (?,?,?,?,?,?)`,
		evt.Symbol, time.Now().UnixMilli(), evt.Signal, evt.RSI, evt.Price, delivered,
	)
	return err
}

func (r *SQLiteRecorder) History(symbol string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.Query(`SELECT symbol, timestamp, source, price, sma50, sma200, trend,
		rsi, rsi_signal, support, resistance, volume, volume_sma, volume_status,
		news_count, avg_polarity
		FROM analysis_snapshots WHERE symbol = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var ts int64
		if err := rows.Scan(&s.Symbol, &ts, &s.Source, &s.Price, &s.SMA50, &s.SMA200, &s.Trend,
			&s.RSI, &s.RSISignal, &s.Support, &s.Resistance, &s.Volume, &s.VolumeSMA,
			&s.VolumeStatus, &s.NewsCount, &s.AvgPolarity); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		s.Timestamp = time.UnixMilli(ts)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
