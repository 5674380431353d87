// Package services – EncounterService
//
// This file implements EncounterService, which provisions the live video
// consultation room and later retrieves the meeting transcription. Room
// provisioning always succeeds from the patient's point of view: when the
// provider cannot be reached the fixed demo room is handed out instead.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/repo"
	"github.com/hheidy0463/ReproCare/internal/whereby"
)

// RoomProvider is the video-room contract required by EncounterService.
type RoomProvider interface {
	CreateRoom(ctx context.Context) whereby.Room
	GetTranscription(ctx context.Context, roomName string) (string, bool)
}

// RoomResult is the provisioned room handed back to the client.
type RoomResult struct {
	RoomID  string
	JoinURL string
	Source  whereby.Source
}

// TranscriptionResult reports whether a transcript was stored and how long it is.
type TranscriptionResult struct {
	Available  bool
	Characters int
}

// EncounterService provisions rooms and fetches transcriptions for visits.
type EncounterService struct {
	DB    *gorm.DB
	Repo  VisitRepo
	Rooms RoomProvider
}

// NewEncounterService constructs an EncounterService.
func NewEncounterService(db *gorm.DB, r VisitRepo, rooms RoomProvider) *EncounterService {
	return &EncounterService{DB: db, Repo: r, Rooms: rooms}
}

// StartVisit creates (or stubs) a room, stores its id on the visit, and
// advances the status to visit_started. Calling it again provisions a fresh
// room and overwrites the stored id.
func (s *EncounterService) StartVisit(ctx context.Context, visitID string) (*RoomResult, error) {
	tr := otel.Tracer("services/EncounterService")
	ctx, span := tr.Start(ctx, "StartVisit",
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

	room := s.Rooms.CreateRoom(ctx)
	span.SetAttributes(attribute.String("room.source", string(room.Source)))

	visit.VideoRoomID = room.RoomID
	visit.Status = domain.StatusVisitStarted
	visit.AppendAudit(domain.EventVisitStarted, time.Now())
	if err := s.Repo.SaveVisit(ctx, s.DB, visit); err != nil {
		return nil, err
	}

	return &RoomResult{RoomID: room.RoomID, JoinURL: room.JoinURL, Source: room.Source}, nil
}

// FetchTranscription looks up the finished transcript for the visit's stored
// room and persists it. The visit status is left alone; transcripts can
// arrive at any point after the meeting, independent of workflow progress.
// A visit with no room, or a room with no ready transcript, reports
// Available=false without error.
func (s *EncounterService) FetchTranscription(ctx context.Context, visitID string) (*TranscriptionResult, error) {
	tr := otel.Tracer("services/EncounterService")
	ctx, span := tr.Start(ctx, "FetchTranscription",
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

	if visit.VideoRoomID == "" {
		return &TranscriptionResult{Available: false}, nil
	}

	text, ok := s.Rooms.GetTranscription(ctx, visit.VideoRoomID)
	if !ok || text == "" {
		return &TranscriptionResult{Available: false}, nil
	}

	visit.TranscriptionText = text
	visit.AppendAudit(domain.EventTranscriptionFetched, time.Now())
	if err := s.Repo.SaveVisit(ctx, s.DB, visit); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("transcription.characters", len(text)))
	return &TranscriptionResult{Available: true, Characters: len(text)}, nil
}
