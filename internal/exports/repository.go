package exports

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	CountRuns(ctx context.Context) (int, error)

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateRun(ctx context.Context, run *Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO export_runs (id, bundle_name, bundle_path, artifact_count, error_count, metadata_applied, final_filename, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.BundleName, run.BundlePath, run.ArtifactCount, run.ErrorCount,
		boolToInt(run.MetadataApplied), nullString(run.FinalFilename), run.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, bundle_name, bundle_path, artifact_count, error_count, metadata_applied, final_filename, created_at
		FROM export_runs WHERE id = ?
	`, id)
	return scanRun(row)
}

func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, bundle_name, bundle_path, artifact_count, error_count, metadata_applied, final_filename, created_at
		FROM export_runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var applied int
		var finalFilename sql.NullString
		var createdAt string

		if err := rows.Scan(&run.ID, &run.BundleName, &run.BundlePath, &run.ArtifactCount,
			&run.ErrorCount, &applied, &finalFilename, &createdAt); err != nil {
			return nil, err
		}
		run.MetadataApplied = applied == 1
		run.FinalFilename = finalFilename.String
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRepository) CountRuns(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM export_runs").Scan(&count)
	return count, err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func scanRun(row *sql.Row) (*Run, error) {
	var run Run
	var applied int
	var finalFilename sql.NullString
	var createdAt string

	err := row.Scan(&run.ID, &run.BundleName, &run.BundlePath, &run.ArtifactCount,
		&run.ErrorCount, &applied, &finalFilename, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	run.MetadataApplied = applied == 1
	run.FinalFilename = finalFilename.String
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
