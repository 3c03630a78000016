// Package store persists verification history in SQLite. It sits outside
// the core pipeline; the CLI opts in with --save.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/truthlens/truthlens/internal/model"
)

// Store manages the verification history database
type Store struct {
	db *sql.DB
}

// Record is one saved verification
type Record struct {
	ID          int64     `json:"id"`
	Digest      string    `json:"digest"` // sha256 of the verified text
	Input       string    `json:"input"`
	Subject     string    `json:"subject,omitempty"`
	Score       int       `json:"score"`
	Verdict     string    `json:"verdict"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS verifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			digest TEXT NOT NULL,
			input TEXT NOT NULL,
			subject TEXT,
			score INTEGER NOT NULL,
			verdict TEXT NOT NULL,
			explanation TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verifications_digest ON verifications(digest)`,
		`CREATE INDEX IF NOT EXISTS idx_verifications_created_at ON verifications(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// Save records a completed verification
func (s *Store) Save(report *model.Report) (int64, error) {
	digest := sha256.Sum256([]byte(report.Input))

	res, err := s.db.Exec(
		`INSERT INTO verifications (digest, input, subject, score, verdict, explanation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		hex.EncodeToString(digest[:]),
		report.Input,
		report.Subject,
		report.Score.OverallScore,
		string(report.Score.Verdict),
		report.Score.Explanation,
		report.VerifiedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert verification: %w", err)
	}

	return res.LastInsertId()
}

// Recent returns up to limit most recent verifications, newest first
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, digest, input, subject, score, verdict, explanation, created_at
		 FROM verifications ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		var subject, explanation sql.NullString
		var createdAt string

		if err := rows.Scan(&r.ID, &r.Digest, &r.Input, &subject, &r.Score, &r.Verdict, &explanation, &createdAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Subject = subject.String
		r.Explanation = explanation.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = t
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}
