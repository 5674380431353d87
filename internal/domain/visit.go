// Package domain defines the persistence model for the visit record that
// tracks one patient encounter through intake, video consultation, AI
// summarization, and pharmacy order placement. The type is mapped with GORM
// and shared across the repository and service layers.
package domain

import "time"

// Visit status values. A visit moves forward through these in order, but
// stage handlers set the status unconditionally; the enum is a progress
// marker, not a validated state machine.
const (
	StatusCreated         = "created"
	StatusIntakeComplete  = "intake_complete"
	StatusVisitStarted    = "visit_started"
	StatusSummaryReady    = "summary_ready"
	StatusPharmacyCreated = "pharmacy_created"
)

// Audit event names, one per completed stage transition.
const (
	EventVisitCreated         = "visit_created"
	EventIntakeFinished       = "intake_finished"
	EventVisitStarted         = "visit_started"
	EventSummaryReady         = "summary_ready"
	EventPharmacyCreated      = "pharmacy_created"
	EventTranscriptionFetched = "transcription_fetched"
)

// QA is one verbatim intake question/answer pair, stored exactly as the
// patient submitted it.
type QA struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Visit is the sole persistent aggregate. All stage outputs hang off this
// row; structured payloads are serialized as JSON text columns.
//
// Fields:
//   - ID: stable UUID primary key, immutable after creation.
//   - Status: one of the Status* constants above.
//   - PatientSummary: always plain text. The structured post-visit object
//     lives in SummaryStructured so the two never share a column.
//   - AuditEvents: append-only list of "<event>:<RFC3339 timestamp>" strings.
type Visit struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Status    string    `json:"status"     gorm:"type:varchar(32);not null;default:'created';index"`

	PatientProfile    map[string]any `json:"patient_profile,omitempty"    gorm:"serializer:json"`
	IntakeRaw         []QA           `json:"intake_raw,omitempty"         gorm:"serializer:json"`
	IntakeStructured  map[string]any `json:"intake_structured,omitempty"  gorm:"serializer:json"`
	ProviderNote      string         `json:"provider_note,omitempty"      gorm:"type:text"`
	PatientSummary    string         `json:"patient_summary,omitempty"    gorm:"type:text"`
	SummaryStructured map[string]any `json:"summary_structured,omitempty" gorm:"serializer:json"`
	VideoRoomID       string         `json:"video_room_id,omitempty"      gorm:"type:varchar(128)"`
	TranscriptionText string         `json:"transcription_text,omitempty" gorm:"type:text"`
	PharmacyRequest   map[string]any `json:"pharmacy_request,omitempty"   gorm:"serializer:json"`
	AuditEvents       []string       `json:"audit_events"                 gorm:"serializer:json"`
}

// TableName returns the database table name for Visit.
func (Visit) TableName() string { return "visits" }

// AuditEvent renders a stage event in the stored "<event>:<timestamp>" form.
// Timestamps are normalized to UTC RFC3339.
func AuditEvent(name string, at time.Time) string {
	return name + ":" + at.UTC().Format(time.RFC3339)
}

// AppendAudit appends a stage event to the visit's audit trail. The trail
// only ever grows; nothing in the codebase removes or reorders entries.
func (v *Visit) AppendAudit(name string, at time.Time) {
	v.AuditEvents = append(v.AuditEvents, AuditEvent(name, at))
}
