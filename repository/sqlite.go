package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"naija-tax/domain"

	_ "github.com/mattn/go-sqlite3"
)

const userCountName = "user-count"

// SQLiteStore persists the submission counter and submission history.
// It satisfies both CounterRepository and SubmissionRepository.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer keeps increments serialised inside this process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0,
			last_updated DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			email TEXT NOT NULL,
			period TEXT NOT NULL,
			gross_income REAL NOT NULL,
			total_tax REAL NOT NULL,
			net_income REAL NOT NULL,
			user_number INTEGER NOT NULL,
			submitted_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) GetCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE name = ?`, userCountName,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read count: %w", err)
	}
	return count, nil
}

// Increment bumps the counter in a single upsert statement, so concurrent
// writers serialise on the database lock instead of racing a read-modify-write.
func (s *SQLiteStore) Increment(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO counters (name, value, last_updated) VALUES (?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = value + 1,
			last_updated = excluded.last_updated
		RETURNING value`,
		userCountName, time.Now().UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment count: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sub domain.Submission) error {
	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (first_name, email, period, gross_income, total_tax, net_income, user_number, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.FirstName, sub.Email, string(sub.Period), sub.GrossIncome,
		sub.TotalTax, sub.NetIncome, sub.UserNumber, submittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// RecentSubmissions returns up to limit submissions, newest first.
func (s *SQLiteStore) RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT first_name, email, period, gross_income, total_tax, net_income, user_number, submitted_at
		FROM submissions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		var period string
		if err := rows.Scan(&sub.FirstName, &sub.Email, &period, &sub.GrossIncome,
			&sub.TotalTax, &sub.NetIncome, &sub.UserNumber, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.Period = domain.Period(period)
		out = append(out, sub)
	}
	return out, rows.Err()
}
