package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/llm"
	"github.com/hheidy0463/ReproCare/internal/repo"
)

// fakeVisitRepo is an in-memory VisitRepo capturing calls for assertions.
// A nil *gorm.DB is fine; the fake never touches it.
type fakeVisitRepo struct {
	visits map[string]*domain.Visit
	saved  *domain.Visit

	createErr error
	getErr    error
	saveErr   error
	listErr   error
}

func newFakeVisitRepo(seed ...*domain.Visit) *fakeVisitRepo {
	r := &fakeVisitRepo{visits: map[string]*domain.Visit{}}
	for _, v := range seed {
		r.visits[v.ID] = v
	}
	return r
}

func (r *fakeVisitRepo) CreateVisit(_ context.Context, _ *gorm.DB) (*domain.Visit, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	v := &domain.Visit{
		ID:        fmt.Sprintf("visit-%d", len(r.visits)+1),
		Status:    domain.StatusCreated,
		CreatedAt: time.Now().UTC(),
	}
	v.AppendAudit(domain.EventVisitCreated, v.CreatedAt)
	r.visits[v.ID] = v
	return v, nil
}

func (r *fakeVisitRepo) GetVisit(_ context.Context, _ *gorm.DB, id string) (*domain.Visit, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	v, ok := r.visits[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVisitRepo) SaveVisit(_ context.Context, _ *gorm.DB, v *domain.Visit) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = v
	r.visits[v.ID] = v
	return nil
}

func (r *fakeVisitRepo) CountVisits(_ context.Context, _ *gorm.DB) (int64, error) {
	if r.listErr != nil {
		return 0, r.listErr
	}
	return int64(len(r.visits)), nil
}

func (r *fakeVisitRepo) ListVisitsPage(_ context.Context, _ *gorm.DB, offset, limit int) ([]domain.Visit, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Visit, 0, len(r.visits))
	for _, v := range r.visits {
		out = append(out, *v)
	}
	if offset >= len(out) {
		return []domain.Visit{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeVisitRepo) VisitsStats(_ context.Context, _ *gorm.DB) (int64, *time.Time, error) {
	if len(r.visits) == 0 {
		return 0, nil, nil
	}
	var max time.Time
	for _, v := range r.visits {
		if v.UpdatedAt.After(max) {
			max = v.UpdatedAt
		}
	}
	return int64(len(r.visits)), &max, nil
}

// fakeCompleter returns a fixed result and records the last call.
type fakeCompleter struct {
	res     llm.Result
	gotKind llm.Kind
	gotSys  string
	gotUser string
}

func (f *fakeCompleter) Complete(_ context.Context, kind llm.Kind, systemPrompt, userPrompt string) llm.Result {
	f.gotKind = kind
	f.gotSys = systemPrompt
	f.gotUser = userPrompt
	return f.res
}

func TestVisitService_Create(t *testing.T) {
	r := newFakeVisitRepo()
	svc := NewVisitService(nil, r)

	v, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Status != domain.StatusCreated || len(v.AuditEvents) != 1 {
		t.Fatalf("unexpected visit: %+v", v)
	}
}

func TestVisitService_Get_MapsNotFound(t *testing.T) {
	svc := NewVisitService(nil, newFakeVisitRepo())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrVisitNotFound) {
		t.Fatalf("err = %v; want ErrVisitNotFound", err)
	}
}

func TestVisitService_Get_PropagatesDBErrors(t *testing.T) {
	r := newFakeVisitRepo()
	r.getErr = errors.New("db down")
	svc := NewVisitService(nil, r)

	_, err := svc.Get(context.Background(), "any")
	if errors.Is(err, ErrVisitNotFound) || err == nil {
		t.Fatalf("err = %v; want raw DB error", err)
	}
}

func TestVisitService_ListPage_DefaultsAndEmpty(t *testing.T) {
	svc := NewVisitService(nil, newFakeVisitRepo())

	items, total, err := svc.ListPage(context.Background(), -3, 0)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 0 || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil page, got (%v, %d)", items, total)
	}
}

func TestVisitService_ListPage_ReturnsTotal(t *testing.T) {
	r := newFakeVisitRepo(
		&domain.Visit{ID: "a"}, &domain.Visit{ID: "b"}, &domain.Visit{ID: "c"},
	)
	svc := NewVisitService(nil, r)

	items, total, err := svc.ListPage(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("got %d items, total %d; want 2 items, total 3", len(items), total)
	}
}
