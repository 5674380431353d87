// Package services – SummaryService
//
// This file implements SummaryService, which produces the post-visit patient
// explanation: a structured three-part object plus its plain-text rendering.
// When the visit has a stored meeting transcript, the summary is grounded on
// the actual conversation; otherwise it falls back to the provider note and
// structured intake.
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

// fallbackPlainText is stored when the completion output cannot be parsed.
const fallbackPlainText = "We discussed your birth control options. Follow up as recommended. Contact us if you have concerns."

// fallbackSummaryObject mirrors fallbackPlainText in structured form.
func fallbackSummaryObject() map[string]any {
	return map[string]any{
		"what_we_discussed": "We discussed your birth control options.",
		"next_steps":        []any{"Follow up as recommended"},
		"watch_fors":        []any{"Contact us if you have concerns"},
	}
}

// SummaryResult carries the post-visit explanation plus the provenance of the
// completion that produced it.
type SummaryResult struct {
	PatientSummary map[string]any
	PlainText      string
	Outcome        llm.Outcome
	Reason         llm.Reason
}

// SummaryService generates the post-visit explanation and advances the visit
// to summary_ready.
type SummaryService struct {
	DB   *gorm.DB
	Repo VisitRepo
	LLM  Completer
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(db *gorm.DB, r VisitRepo, c Completer) *SummaryService {
	return &SummaryService{DB: db, Repo: r, LLM: c}
}

// Explain produces the patient-facing summary for a visit.
//
// providerNote and intakeStructured are request-supplied overrides; when
// empty/nil the visit's stored values are used. A stored meeting transcript
// takes precedence over both. The plain text always lands in
// visit.PatientSummary and the structured object in visit.SummaryStructured,
// so the column's type never flips between stages.
func (s *SummaryService) Explain(ctx context.Context, visitID, providerNote string, intakeStructured map[string]any) (*SummaryResult, error) {
	tr := otel.Tracer("services/SummaryService")
	ctx, span := tr.Start(ctx, "Explain",
		trace.WithAttributes(attribute.String("visit.id", visitID)),
	)
	defer span.End()

	visit, err := s.Repo.GetVisit(ctx, s.DB, visitID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, err
	}

	var userPrompt string
	if visit.TranscriptionText != "" {
		userPrompt = postVisitTranscriptPrompt(visit.TranscriptionText)
		span.SetAttributes(attribute.Bool("summary.from_transcript", true))
	} else {
		if providerNote == "" {
			providerNote = visit.ProviderNote
		}
		if intakeStructured == nil {
			intakeStructured = visit.IntakeStructured
		}
		userPrompt = postVisitUserPrompt(providerNote, intakeStructured)
	}

	res := s.LLM.Complete(ctx, llm.KindPostVisit, postVisitSystemPrompt, userPrompt)
	span.SetAttributes(attribute.String("llm.outcome", string(res.Outcome)))

	var parsed struct {
		PatientSummary map[string]any `json:"patient_summary"`
		PlainText      string         `json:"plain_text"`
	}
	out := SummaryResult{Outcome: res.Outcome, Reason: res.Reason}
	if err := json.Unmarshal([]byte(res.Text), &parsed); err == nil && parsed.PatientSummary != nil {
		out.PatientSummary = parsed.PatientSummary
		out.PlainText = parsed.PlainText
	} else {
		log.Warn().Str("visit_id", visitID).Msg("post-visit completion was not valid JSON, using fallback summary")
		out.PatientSummary = fallbackSummaryObject()
		out.PlainText = fallbackPlainText
	}
	if out.PlainText == "" {
		out.PlainText = fallbackPlainText
	}

	visit.PatientSummary = out.PlainText
	visit.SummaryStructured = out.PatientSummary
	visit.Status = domain.StatusSummaryReady
	visit.AppendAudit(domain.EventSummaryReady, time.Now())
	if err := s.Repo.SaveVisit(ctx, s.DB, visit); err != nil {
		return nil, err
	}
	return &out, nil
}
