package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/ovyshniak/redline/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS edit_requests (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		model TEXT NOT NULL,
		granularity TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS edit_results (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		service_name TEXT NOT NULL,
		edited_text TEXT NOT NULL,
		latency_ms INTEGER,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (request_id) REFERENCES edit_requests(id)
	);

	CREATE TABLE IF NOT EXISTS edit_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		model TEXT NOT NULL,
		granularity TEXT NOT NULL,
		edited_text TEXT NOT NULL,
		service_used TEXT,
		usage_count INTEGER DEFAULT 1,
		invalidated BOOLEAN DEFAULT FALSE,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, model, granularity)
	);

	-- batch_checkpoints tracks progress of directory runs for resume support
	CREATE TABLE IF NOT EXISTS batch_checkpoints (
		id TEXT PRIMARY KEY,
		input_dir TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		model TEXT NOT NULL,
		status TEXT DEFAULT 'running',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- batch_checkpoint_files stores per-file completion state
	CREATE TABLE IF NOT EXISTS batch_checkpoint_files (
		checkpoint_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (checkpoint_id, file_name),
		FOREIGN KEY (checkpoint_id) REFERENCES batch_checkpoints(id)
	);

	CREATE INDEX IF NOT EXISTS idx_memory_lookup ON edit_memory(source_text, model, granularity);
	CREATE INDEX IF NOT EXISTS idx_results_request ON edit_results(request_id);
	CREATE INDEX IF NOT EXISTS idx_checkpoint_files ON batch_checkpoint_files(checkpoint_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) SaveRequest(ctx context.Context, req internal.EditRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO edit_requests (id, source_text, model, granularity, created_at) VALUES (?, ?, ?, ?, ?)`,
		req.ID, req.SourceText, req.Model, req.Granularity, req.Timestamp)
	return err
}

func (s *Store) SaveResult(ctx context.Context, requestID, serviceName, editedText string, latencyMs int, errMsg string) error {
	id := fmt.Sprintf("%s_%s", requestID, serviceName)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO edit_results (id, request_id, service_name, edited_text, latency_ms, error) VALUES (?, ?, ?, ?, ?, ?)`,
		id, requestID, serviceName, editedText, latencyMs, errMsg)
	return err
}

// GetCachedEdit looks up a previous correction of sourceText for the given
// model and granularity. A hit bumps the entry's usage counters.
func (s *Store) GetCachedEdit(ctx context.Context, sourceText, model, granularity string) (string, bool, error) {
	var editedText string
	var invalidated bool

	err := s.db.QueryRowContext(ctx,
		`SELECT edited_text, invalidated FROM edit_memory WHERE source_text = ? AND model = ? AND granularity = ?`,
		normalizeText(sourceText), model, granularity).Scan(&editedText, &invalidated)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if invalidated {
		return "", false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE edit_memory SET usage_count = usage_count + 1, last_used = ? WHERE source_text = ? AND model = ? AND granularity = ?`,
		time.Now(), normalizeText(sourceText), model, granularity)

	return editedText, true, err
}

func (s *Store) SaveToMemory(ctx context.Context, sourceText, model, granularity, editedText, serviceUsed string) error {
	id := fmt.Sprintf("mem_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO edit_memory (id, source_text, model, granularity, edited_text, service_used, usage_count, invalidated, last_used, created_at) VALUES (?, ?, ?, ?, ?, ?, 1, FALSE, ?, ?)`,
		id, normalizeText(sourceText), model, granularity, editedText, serviceUsed, time.Now(), time.Now())
	return err
}

// MemoryEntry is a row from the edit_memory table.
type MemoryEntry struct {
	ID          string
	SourceText  string
	Model       string
	Granularity string
	EditedText  string
	ServiceUsed string
	UsageCount  int
	Invalidated bool
	LastUsed    time.Time
}

// CacheStats summarises edit memory usage.
type CacheStats struct {
	TotalEntries   int
	ActiveEntries  int
	InvalidEntries int
	TotalUsage     int
}

func (s *Store) InvalidateMemory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE edit_memory SET invalidated = TRUE WHERE id = ?`, id)
	return err
}

// DeleteMemory permanently removes an edit memory entry by ID.
func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM edit_memory WHERE id = ?`, id)
	return err
}

// ClearMemory removes all edit memory entries.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM edit_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListMemory returns all edit memory entries ordered by most recently used.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, model, granularity, edited_text, service_used, usage_count, invalidated, last_used FROM edit_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.Model, &e.Granularity, &e.EditedText, &e.ServiceUsed, &e.UsageCount, &e.Invalidated, &e.LastUsed); err != nil {
			return nil, err
		}
		results = append(results, e)
	}

	return results, rows.Err()
}

// Stats returns summary statistics for the edit memory.
func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN NOT invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(usage_count), 0)
		FROM edit_memory`).Scan(
		&stats.TotalEntries,
		&stats.ActiveEntries,
		&stats.InvalidEntries,
		&stats.TotalUsage,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// BatchCheckpoint represents a directory run's checkpoint record.
type BatchCheckpoint struct {
	ID        string
	InputDir  string
	OutputDir string
	Model     string
	Status    string
	CreatedAt time.Time
}

// CreateBatchCheckpoint creates a new checkpoint record and returns its ID.
func (s *Store) CreateBatchCheckpoint(ctx context.Context, inputDir, outputDir, model string) (string, error) {
	id := fmt.Sprintf("cp_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batch_checkpoints (id, input_dir, output_dir, model) VALUES (?, ?, ?, ?)`,
		id, inputDir, outputDir, model)
	return id, err
}

// FindRunningCheckpoint returns the most recent unfinished checkpoint for
// the same directory pair and model, if any.
func (s *Store) FindRunningCheckpoint(ctx context.Context, inputDir, outputDir, model string) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM batch_checkpoints WHERE input_dir = ? AND output_dir = ? AND model = ? AND status = 'running' ORDER BY created_at DESC LIMIT 1`,
		inputDir, outputDir, model).Scan(&id)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// MarkFile records the outcome of one file within a batch run.
func (s *Store) MarkFile(ctx context.Context, checkpointID, fileName, status, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO batch_checkpoint_files (checkpoint_id, file_name, status, error) VALUES (?, ?, ?, ?)`,
		checkpointID, fileName, status, errMsg)
	return err
}

// FileDone reports whether a file already completed within a batch run.
func (s *Store) FileDone(ctx context.Context, checkpointID, fileName string) (bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM batch_checkpoint_files WHERE checkpoint_id = ? AND file_name = ?`,
		checkpointID, fileName).Scan(&status)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status == "done", nil
}

// CompleteBatchCheckpoint marks a batch run finished.
func (s *Store) CompleteBatchCheckpoint(ctx context.Context, checkpointID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE batch_checkpoints SET status = 'done', updated_at = ? WHERE id = ?`,
		time.Now(), checkpointID)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText canonicalises lookup keys: NFC form, trimmed, inner
// whitespace collapsed. Identical sentences copied out of different sources
// should hit the same cache row.
func normalizeText(text string) string {
	text = norm.NFC.String(text)
	return strings.Join(strings.Fields(text), " ")
}
