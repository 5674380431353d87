package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hheidy0463/ReproCare/internal/domain"
)

func newVisitRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("visit_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateVisit_Error_NoTable(t *testing.T) {
	db := newVisitRepoDB(t /* no migrations */)
	v, err := CreateVisit(context.Background(), db)
	if err == nil || v != nil {
		t.Fatalf("expected error creating without table, got visit=%v err=%v", v, err)
	}
}

func TestCreateVisit_Success_SeedsStatusAndAudit(t *testing.T) {
	db := newVisitRepoDB(t, &domain.Visit{})

	start := time.Now().UTC().Add(-time.Minute)
	v, err := CreateVisit(context.Background(), db)
	if err != nil {
		t.Fatalf("CreateVisit: %v", err)
	}
	if v.ID == "" || v.Status != domain.StatusCreated {
		t.Fatalf("unexpected Visit fields: %+v", v)
	}
	if v.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset/really old: %v", v.CreatedAt)
	}
	if len(v.AuditEvents) != 1 || !strings.HasPrefix(v.AuditEvents[0], domain.EventVisitCreated+":") {
		t.Fatalf("audit trail not seeded: %v", v.AuditEvents)
	}
	// round-trip
	var got domain.Visit
	if err := db.First(&got, "id = ?", v.ID).Error; err != nil {
		t.Fatalf("load created visit: %v", err)
	}
	if got.Status != domain.StatusCreated || len(got.AuditEvents) != 1 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestGetVisit_NotFound(t *testing.T) {
	db := newVisitRepoDB(t, &domain.Visit{})
	_, err := GetVisit(context.Background(), db, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveVisit_PersistsStageOutputs(t *testing.T) {
	db := newVisitRepoDB(t, &domain.Visit{})

	v, err := CreateVisit(context.Background(), db)
	if err != nil {
		t.Fatalf("CreateVisit: %v", err)
	}

	v.Status = domain.StatusIntakeComplete
	v.IntakeRaw = []domain.QA{{Q: "Allergies?", A: "None"}}
	v.IntakeStructured = map[string]any{"allergies": "none"}
	v.ProviderNote = "Reviewed."
	v.AppendAudit(domain.EventIntakeFinished, time.Now())
	if err := SaveVisit(context.Background(), db, v); err != nil {
		t.Fatalf("SaveVisit: %v", err)
	}

	got, err := GetVisit(context.Background(), db, v.ID)
	if err != nil {
		t.Fatalf("GetVisit: %v", err)
	}
	if got.Status != domain.StatusIntakeComplete {
		t.Fatalf("Status = %q; want intake_complete", got.Status)
	}
	if len(got.IntakeRaw) != 1 || got.IntakeRaw[0].Q != "Allergies?" {
		t.Fatalf("IntakeRaw round-trip mismatch: %+v", got.IntakeRaw)
	}
	if got.IntakeStructured["allergies"] != "none" {
		t.Fatalf("IntakeStructured round-trip mismatch: %+v", got.IntakeStructured)
	}
	if len(got.AuditEvents) != 2 {
		t.Fatalf("audit trail length = %d; want 2 (%v)", len(got.AuditEvents), got.AuditEvents)
	}
}

func TestListVisitsPage_OrderAndPaging(t *testing.T) {
	db := newVisitRepoDB(t, &domain.Visit{})

	// Seed with known CreatedAt so order is deterministic.
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) // oldest
	t2 := t1.Add(1 * time.Hour)
	t3 := t1.Add(2 * time.Hour) // newest
	for i, ts := range []time.Time{t1, t2, t3} {
		v := &domain.Visit{
			ID:        fmt.Sprintf("v%d", i+1),
			Status:    domain.StatusCreated,
			CreatedAt: ts,
		}
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed visit %d: %v", i+1, err)
		}
	}

	total, err := CountVisits(context.Background(), db)
	if err != nil || total != 3 {
		t.Fatalf("CountVisits = (%d, %v); want (3, nil)", total, err)
	}

	page, err := ListVisitsPage(context.Background(), db, 0, 2)
	if err != nil {
		t.Fatalf("ListVisitsPage: %v", err)
	}
	if len(page) != 2 || page[0].ID != "v3" || page[1].ID != "v2" {
		t.Fatalf("first page order wrong: %+v", page)
	}

	page, err = ListVisitsPage(context.Background(), db, 2, 2)
	if err != nil {
		t.Fatalf("ListVisitsPage offset: %v", err)
	}
	if len(page) != 1 || page[0].ID != "v1" {
		t.Fatalf("second page wrong: %+v", page)
	}
}
