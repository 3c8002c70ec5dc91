package game

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunStore persists finished runs to a local sqlite database so the
// run-complete screen can show a history across sessions.
type RunStore struct {
	db *sql.DB
}

const runTableName = "runs"

// Run is one finished (or abandoned) play session.
type Run struct {
	ID          int
	PlayerName  string
	LevelID     string
	Ticks       uint64
	DurationSec float64
	Completed   bool
	CreatedAt   time.Time
}

func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database %s: %w", dbPath, err)
	}

	store := &RunStore{db: db}
	if err := store.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (store *RunStore) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + runTableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		level_id TEXT NOT NULL,
		ticks INTEGER NOT NULL,
		duration_seconds REAL NOT NULL,
		completed INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := store.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

func (store *RunStore) SaveRun(playerName, levelID string, ticks uint64, durationSec float64, completed bool) error {
	const insertSQL = `
	INSERT INTO ` + runTableName + ` (player_name, level_id, ticks, duration_seconds, completed)
	VALUES (?, ?, ?, ?, ?);`

	_, err := store.db.Exec(insertSQL, playerName, levelID, ticks, durationSec, completed)
	if err != nil {
		return fmt.Errorf("failed to insert run for %s: %w", playerName, err)
	}
	return nil
}

// GetRecentRuns retrieves a paginated run history, fastest completed runs
// first, then the rest by recency.
func (store *RunStore) GetRecentRuns(limit, offset int) ([]Run, error) {
	const selectSQL = `
	SELECT id, player_name, level_id, ticks, duration_seconds, completed, created_at
	FROM ` + runTableName + `
	ORDER BY completed DESC, duration_seconds ASC, created_at DESC
	LIMIT ? OFFSET ?;`

	rows, err := store.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var completed int
		var createdAt string
		if err := rows.Scan(&run.ID, &run.PlayerName, &run.LevelID, &run.Ticks,
			&run.DurationSec, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.Completed = completed != 0
		if parsed, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			run.CreatedAt = parsed
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating run rows: %w", err)
	}
	return runs, nil
}

func (store *RunStore) GetTotalRunCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + runTableName + `;`
	var count int
	if err := store.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

func (store *RunStore) Close() error {
	return store.db.Close()
}
