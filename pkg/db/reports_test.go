package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/sachai/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func sampleReport(summary string, claims int) *models.Report {
	r := &models.Report{Summary: summary, VerifiedClaims: []models.VerifiedClaim{}}
	for i := 0; i < claims; i++ {
		r.VerifiedClaims = append(r.VerifiedClaims, models.VerifiedClaim{
			ClaimText: "claim",
			Result:    "Supported",
			Sources: []models.Source{
				{URL: "https://example.com", Title: "Example", Text: "text", IsInfluential: true},
			},
		})
	}
	return r
}

func TestInsertAndGetReport(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	report := sampleReport("Mostly true", 2)
	id, err := db.InsertReport(models.DeploymentPage, "The sky is blue.", "en", report)
	if err != nil {
		t.Fatalf("InsertReport() error = %v", err)
	}
	if id == "" {
		t.Fatal("InsertReport() returned empty id")
	}

	got, err := db.GetReport(id)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if got.Deployment != models.DeploymentPage || got.Input != "The sky is blue." || got.Language != "en" {
		t.Errorf("GetReport() = %+v", got)
	}
	if got.Summary != "Mostly true" || got.ClaimCount != 2 {
		t.Errorf("summary/claims = %q/%d", got.Summary, got.ClaimCount)
	}
	if len(got.Report.VerifiedClaims) != 2 || !got.Report.VerifiedClaims[0].Sources[0].IsInfluential {
		t.Errorf("decoded report = %+v", got.Report)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestInsertReport_Nil(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.InsertReport(models.DeploymentPopup, "x", "", nil); err == nil {
		t.Error("InsertReport(nil) should fail")
	}
}

func TestGetReport_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		name string
		id   string
	}{
		{name: "malformed id", id: "not-a-uuid"},
		{name: "unknown id", id: "00000000-0000-0000-0000-000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.GetReport(tt.id)
			if !errors.Is(err, ErrReportNotFound) {
				t.Errorf("GetReport(%q) error = %v, want ErrReportNotFound", tt.id, err)
			}
		})
	}
}

func TestListReports(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, summary := range []string{"first", "second", "third"} {
		if _, err := db.InsertReport(models.DeploymentPopup, summary, "", sampleReport(summary, 1)); err != nil {
			t.Fatalf("InsertReport() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "all", limit: 0, want: []string{"third", "second", "first"}},
		{name: "limited", limit: 2, want: []string{"third", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListReports(tt.limit)
			if err != nil {
				t.Fatalf("ListReports() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListReports() returned %d, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.Summary != tt.want[i] {
					t.Errorf("record %d summary = %q, want %q", i, rec.Summary, tt.want[i])
				}
			}
		})
	}
}

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if _, err := db.InsertReport(models.DeploymentPage, "x", "", sampleReport("s", 0)); err != nil {
		t.Fatalf("InsertReport() error = %v", err)
	}
	_ = db.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.ListReports(0)
	if err != nil || len(got) != 1 {
		t.Errorf("ListReports() after reopen = %d, %v", len(got), err)
	}
}
