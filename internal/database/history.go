package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/logmetrics/internal/model"
	"github.com/nao1215/logmetrics/internal/report"
)

// FileName is the name of the database file inside the database directory.
const FileName = "logmetrics.db"

// HistoryDB provides persistent storage for generated reports.
// It is safe for concurrent use because all access goes through a single
// database/sql connection.
type HistoryDB struct {
	// db is the underlying database connection.
	db *sql.DB

	// dbPath is the path to the database file.
	dbPath string
}

// Options configures database behavior.
type Options struct {
	// CreateIfNotExists creates the database file and its directory if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging mode.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw fails instead of silently creating a new file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the schema if it does not exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		generated_at TEXT NOT NULL,
		runs_dir TEXT NOT NULL,
		output_path TEXT NOT NULL,
		total_runs INTEGER NOT NULL,
		run_names TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at);
	CREATE INDEX IF NOT EXISTS idx_reports_fingerprint ON reports(fingerprint);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// ReportMetadata describes a stored report without its full content.
type ReportMetadata struct {
	// ID is the unique identifier of the report in the database.
	ID int64

	// GeneratedAt is when the report was saved.
	GeneratedAt time.Time

	// RunsDir is the runs directory the report was built from.
	RunsDir string

	// OutputPath is where the report JSON was written.
	OutputPath string

	// TotalRuns is the number of runs in the report.
	TotalRuns int

	// RunNames lists the run names in report order.
	RunNames []string

	// Fingerprint is the hex SHA3-256 digest of the report JSON.
	Fingerprint string
}

// Fingerprint returns the hex encoded SHA3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaveReport stores rep and returns the new row ID.
// The stored JSON is byte-identical to the data.json written for rep, so
// its fingerprint matches a SHA3-256 sum of that file.
func (hdb *HistoryDB) SaveReport(ctx context.Context, runsDir, outputPath string, rep *model.Report) (int64, error) {
	reportJSON, err := report.Marshal(rep)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	runNamesJSON, err := json.Marshal(rep.Summary.RunNames)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize run names: %w", err)
	}

	query := `
	INSERT INTO reports (generated_at, runs_dir, output_path, total_runs, run_names, fingerprint, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		time.Now().UTC().Format(time.RFC3339Nano),
		runsDir,
		outputPath,
		rep.Summary.TotalRuns,
		string(runNamesJSON),
		Fingerprint(reportJSON),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	return result.LastInsertId()
}

// ListReports returns the metadata of stored reports, newest first.
// A limit of zero or less returns every report.
func (hdb *HistoryDB) ListReports(ctx context.Context, limit int) ([]ReportMetadata, error) {
	query := `
	SELECT id, generated_at, runs_dir, output_path, total_runs, run_names, fingerprint
	FROM reports
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var results []ReportMetadata
	for rows.Next() {
		var meta ReportMetadata
		var generatedAt, runNamesJSON string

		if err := rows.Scan(
			&meta.ID,
			&generatedAt,
			&meta.RunsDir,
			&meta.OutputPath,
			&meta.TotalRuns,
			&runNamesJSON,
			&meta.Fingerprint,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report metadata: %w", err)
		}

		meta.GeneratedAt = parseTimestamp(generatedAt)
		if err := json.Unmarshal([]byte(runNamesJSON), &meta.RunNames); err != nil {
			meta.RunNames = []string{}
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetReportByID retrieves a stored report by its database ID.
// Returns nil, nil if no report has that ID.
func (hdb *HistoryDB) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	query := `
	SELECT report_json FROM reports
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var rep model.Report
	if err := json.Unmarshal([]byte(reportJSON), &rep); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &rep, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// More specific formats come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp parses s with each known format and returns the zero
// time if none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
