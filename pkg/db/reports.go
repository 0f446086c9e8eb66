package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/sachai/models"
	"github.com/google/uuid"
)

// ErrReportNotFound is returned by GetReport for an unknown id.
var ErrReportNotFound = errors.New("report not found")

// ReportRecord is one stored fact-check.
type ReportRecord struct {
	ID         string
	CreatedAt  time.Time
	Deployment string
	Input      string
	Language   string
	Summary    string
	ClaimCount int
	Report     *models.Report
}

// InsertReport stores a report and returns its new id.
func (db *DB) InsertReport(deployment, input, language string, report *models.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("failed to insert report: nil report")
	}
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO reports (report_id, created_at, deployment, input, language, summary, claim_count, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, time.Now().UnixMilli(), deployment, input, language, report.Summary, len(report.VerifiedClaims), string(data))
	if err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}
	return id, nil
}

// GetReport loads one report by id.
func (db *DB) GetReport(id string) (*ReportRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}

	row := db.QueryRow(`
		SELECT report_id, created_at, deployment, input, language, summary, claim_count, report_json
		FROM reports
		WHERE report_id = ?
	`, id)

	rec, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListReports returns the most recent reports first. A limit of zero or
// less returns all of them.
func (db *DB) ListReports(limit int) ([]ReportRecord, error) {
	query := `
		SELECT report_id, created_at, deployment, input, language, summary, claim_count, report_json
		FROM reports
		ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []ReportRecord
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*ReportRecord, error) {
	var (
		rec       ReportRecord
		createdAt int64
		language  sql.NullString
		summary   sql.NullString
		data      string
	)
	err := s.Scan(&rec.ID, &createdAt, &rec.Deployment, &rec.Input, &language, &summary, &rec.ClaimCount, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	rec.CreatedAt = time.UnixMilli(createdAt)
	rec.Language = language.String
	rec.Summary = summary.String

	rec.Report = &models.Report{}
	if err := json.Unmarshal([]byte(data), rec.Report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", rec.ID, err)
	}
	return &rec, nil
}
