package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps experiment results in a SQLite database so runs can be
// queried across sessions. It mirrors the CSV records; it is not a
// saved-game format.
type Store struct {
	conn *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	started_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS agent_configs (
	run_id TEXT NOT NULL REFERENCES runs(id),
	id INTEGER NOT NULL,
	kind TEXT NOT NULL,
	goroutines INTEGER NOT NULL,
	episodes INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	PRIMARY KEY (run_id, id)
);
CREATE TABLE IF NOT EXISTS game_records (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL REFERENCES runs(id),
	agent1 INTEGER NOT NULL,
	agent2 INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	starting_player TEXT NOT NULL,
	winner TEXT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	duration_ns INTEGER NOT NULL,
	total_moves INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS move_records (
	game_id TEXT NOT NULL REFERENCES game_records(id),
	step INTEGER NOT NULL,
	player TEXT NOT NULL,
	row INTEGER NOT NULL,
	col INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	search_duration_ns INTEGER NOT NULL,
	search_episodes INTEGER NOT NULL,
	consistent_samples INTEGER NOT NULL,
	PRIMARY KEY (game_id, step)
);
`

// NewStore opens (and if needed creates) the results database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping results database: %w", err)
	}

	if _, err := conn.Exec(storeSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create results schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// InsertRun registers an experiment run.
func (s *Store) InsertRun(runID, name string, startedAt time.Time) error {
	_, err := s.conn.Exec(
		"INSERT INTO runs (id, name, started_at) VALUES (?, ?, ?)",
		runID, name, startedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// InsertAgentConfigs stores the agent configurations of a run.
func (s *Store) InsertAgentConfigs(runID string, configs []AgentConfig) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, config := range configs {
		_, err := tx.Exec(
			"INSERT INTO agent_configs (run_id, id, kind, goroutines, episodes, duration_ns, seed) VALUES (?, ?, ?, ?, ?, ?, ?)",
			runID, config.ID, config.Kind, config.Goroutines, config.Episodes,
			int64(config.Duration), int64(config.Seed),
		)
		if err != nil {
			return fmt.Errorf("failed to insert agent config %d: %w", config.ID, err)
		}
	}
	return tx.Commit()
}

// InsertGameRecord stores one completed game.
func (s *Store) InsertGameRecord(runID string, record GameRecord) error {
	_, err := s.conn.Exec(
		`INSERT INTO game_records
		 (id, run_id, agent1, agent2, seed, starting_player, winner, start_time, end_time, duration_ns, total_moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, runID, record.Agent1, record.Agent2, int64(record.Seed),
		record.StartingPlayer, record.Winner,
		record.StartTime.UTC(), record.EndTime.UTC(),
		int64(record.Duration), record.TotalMoves,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game record %s: %w", record.ID, err)
	}
	return nil
}

// InsertMoveRecords stores the moves of one game in a single
// transaction.
func (s *Store) InsertMoveRecords(records []MoveRecord) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, record := range records {
		_, err := tx.Exec(
			`INSERT INTO move_records
			 (game_id, step, player, row, col, outcome, search_duration_ns, search_episodes, consistent_samples)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.Game, record.Step, record.Player, record.Row, record.Col,
			record.Outcome, int64(record.Duration), record.Episodes, record.ConsistentSamples,
		)
		if err != nil {
			return fmt.Errorf("failed to insert move record for game %s step %d: %w",
				record.Game, record.Step, err)
		}
	}
	return tx.Commit()
}

// GameCount reports how many games a run has stored.
func (s *Store) GameCount(runID string) (int, error) {
	var count int
	err := s.conn.QueryRow(
		"SELECT COUNT(*) FROM game_records WHERE run_id = ?", runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count game records: %w", err)
	}
	return count, nil
}
