// Package services – IntakeService
//
// This file implements IntakeService, which turns raw intake Q&A into the
// three clinician/patient artifacts: structured intake JSON, a four-line
// provider note, and a plain-language patient summary. The completion output
// is untrusted; unparseable responses degrade to fixed fallback text so the
// stage always completes.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/llm"
	"github.com/hheidy0463/ReproCare/internal/repo"
)

// Fallback artifacts when the completion text is not the expected JSON.
const (
	fallbackProviderNote  = "Intake completed. Review patient responses."
	fallbackIntakeSummary = "We reviewed your intake information."
)

// Completer is the completion-client contract required by the LLM-backed
// services.
type Completer interface {
	Complete(ctx context.Context, kind llm.Kind, systemPrompt, userPrompt string) llm.Result
}

// IntakeResult carries the stage outputs plus the provenance of the
// completion that produced them.
type IntakeResult struct {
	IntakeStructured map[string]any
	ProviderNote     string
	PatientSummary   string
	EventsAdded      []string
	Outcome          llm.Outcome
	Reason           llm.Reason
}

// IntakeService converts intake Q&A into structured artifacts and advances
// the visit to intake_complete.
type IntakeService struct {
	DB   *gorm.DB
	Repo VisitRepo
	LLM  Completer
}

// NewIntakeService constructs an IntakeService.
func NewIntakeService(db *gorm.DB, r VisitRepo, c Completer) *IntakeService {
	return &IntakeService{DB: db, Repo: r, LLM: c}
}

// Submit runs the intake conversion for a visit. Re-submission overwrites the
// previous intake artifacts (latest submission wins) and appends a fresh
// audit event. An empty qa slice is allowed and processed normally.
func (s *IntakeService) Submit(ctx context.Context, visitID string, qa []domain.QA) (*IntakeResult, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("visit.id", visitID),
			attribute.Int("intake.qa_pairs", len(qa)),
		),
	)
	defer span.End()

	visit, err := s.Repo.GetVisit(ctx, s.DB, visitID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, err
	}

	res := s.LLM.Complete(ctx, llm.KindIntake, intakeSystemPrompt, intakeUserPrompt(qa))
	span.SetAttributes(attribute.String("llm.outcome", string(res.Outcome)))

	var parsed struct {
		IntakeStructured map[string]any `json:"intake_structured"`
		ProviderNote     string         `json:"provider_note"`
		PatientSummary   string         `json:"patient_summary"`
	}
	out := IntakeResult{Outcome: res.Outcome, Reason: res.Reason}
	if err := json.Unmarshal([]byte(res.Text), &parsed); err == nil {
		out.IntakeStructured = parsed.IntakeStructured
		out.ProviderNote = parsed.ProviderNote
		out.PatientSummary = parsed.PatientSummary
	} else {
		log.Warn().Str("visit_id", visitID).Msg("intake completion was not valid JSON, using fallback note")
		out.IntakeStructured = map[string]any{}
		out.ProviderNote = fallbackProviderNote
		out.PatientSummary = fallbackIntakeSummary
	}
	if out.IntakeStructured == nil {
		out.IntakeStructured = map[string]any{}
	}

	if qa == nil {
		qa = []domain.QA{}
	}
	visit.IntakeRaw = qa
	visit.IntakeStructured = out.IntakeStructured
	visit.ProviderNote = out.ProviderNote
	visit.PatientSummary = out.PatientSummary
	visit.Status = domain.StatusIntakeComplete
	visit.AppendAudit(domain.EventIntakeFinished, time.Now())

	if err := s.Repo.SaveVisit(ctx, s.DB, visit); err != nil {
		return nil, err
	}
	out.EventsAdded = []string{domain.EventIntakeFinished}
	return &out, nil
}
