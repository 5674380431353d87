// Package whereby provides the video-room provider client: creating meeting
// rooms for live consultations and retrieving finished meeting
// transcriptions.
//
// Like the completion client, it degrades instead of erroring: without an API
// key (or when the provider misbehaves) room creation yields a fixed demo
// room and transcription lookups report "not available". The demo flow never
// blocks on provider availability.
package whereby

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hheidy0463/ReproCare/internal/config"
)

// Source reports how a room was produced.
type Source string

const (
	SourceProvider Source = "provider"
	SourceTemplate Source = "template"
	SourceStub     Source = "stub"
)

// Demo room returned whenever the provider cannot be used.
const (
	StubRoomID  = "demo-room"
	StubJoinURL = "https://whereby.com/your-demo"
)

// Room is a created (or stubbed) meeting room.
type Room struct {
	RoomID  string
	JoinURL string
	Source  Source
}

var requests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "whereby_requests_total",
	Help: "Room provider requests by operation and result.",
}, []string{"op", "result"})

// Client talks to the Whereby REST API.
type Client struct {
	cfg  config.WherebyConfig
	http *http.Client
}

// New builds a Client from explicit configuration.
func New(cfg config.WherebyConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// CreateRoom returns a meeting room for a visit.
//
// A configured room template short-circuits to a deterministic join URL on
// the configured subdomain with no network call. Otherwise, with an API key,
// a fresh meeting is created via POST /meetings. Everything else (no key,
// request failure, unusable response) yields the demo stub room.
func (c *Client) CreateRoom(ctx context.Context) Room {
	tr := otel.Tracer("whereby/Client")
	ctx, span := tr.Start(ctx, "whereby.CreateRoom")
	defer span.End()

	if tmpl := strings.TrimSpace(c.cfg.RoomTemplateID); tmpl != "" {
		requests.WithLabelValues("create_room", "template").Inc()
		span.SetAttributes(attribute.String("whereby.source", string(SourceTemplate)))
		return Room{
			RoomID:  tmpl,
			JoinURL: "https://" + c.cfg.Subdomain + ".whereby.com/" + tmpl,
			Source:  SourceTemplate,
		}
	}

	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return c.stubRoom(span, "no_credential")
	}

	body, _ := json.Marshal(map[string]any{
		"isLocked": false,
		"roomMode": "normal",
	})
	raw, err := c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/meetings", bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Msg("room creation failed, serving demo room")
		return c.stubRoom(span, "request_failed")
	}

	var parsed struct {
		MeetingID string `json:"meetingId"`
		RoomURL   string `json:"roomUrl"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Warn().Err(err).Msg("room creation response unreadable, serving demo room")
		return c.stubRoom(span, "bad_response")
	}

	room := Room{RoomID: parsed.MeetingID, JoinURL: parsed.RoomURL, Source: SourceProvider}
	if room.RoomID == "" {
		room.RoomID = StubRoomID
	}
	if room.JoinURL == "" {
		room.JoinURL = StubJoinURL
	}
	requests.WithLabelValues("create_room", "provider").Inc()
	span.SetAttributes(attribute.String("whereby.source", string(SourceProvider)))
	return room
}

func (c *Client) stubRoom(span trace.Span, result string) Room {
	requests.WithLabelValues("create_room", result).Inc()
	span.SetAttributes(attribute.String("whereby.source", string(SourceStub)))
	return Room{RoomID: StubRoomID, JoinURL: StubJoinURL, Source: SourceStub}
}

// transcription is one record from GET /transcriptions.
type transcription struct {
	TranscriptionID string `json:"transcriptionId"`
	RoomName        string `json:"roomName"`
	State           string `json:"state"`
}

// GetTranscription finds the newest finished transcription for a room and
// downloads its text. ok is false when the provider is unconfigured, nothing
// matching is ready yet, or any request fails; the caller treats that as
// "not available yet", not an error.
//
// Room naming is inconsistent across the provider surface (meeting ids,
// "/room" paths, full join URLs), so several candidate spellings of the input
// are probed against the roomName filter until one returns records.
func (c *Client) GetTranscription(ctx context.Context, roomName string) (string, bool) {
	tr := otel.Tracer("whereby/Client")
	ctx, span := tr.Start(ctx, "whereby.GetTranscription")
	defer span.End()

	roomName = strings.TrimSpace(roomName)
	if strings.TrimSpace(c.cfg.APIKey) == "" || roomName == "" {
		requests.WithLabelValues("get_transcription", "no_credential").Inc()
		return "", false
	}

	recs, ok := c.findTranscriptions(ctx, roomName)
	if !ok || len(recs) == 0 {
		requests.WithLabelValues("get_transcription", "absent").Inc()
		return "", false
	}

	// Records come back newest first; take the first finished one.
	var ready *transcription
	for i := range recs {
		if recs[i].State == "ready" {
			ready = &recs[i]
			break
		}
	}
	if ready == nil {
		requests.WithLabelValues("get_transcription", "not_ready").Inc()
		return "", false
	}

	text, ok := c.download(ctx, ready.TranscriptionID)
	if !ok {
		requests.WithLabelValues("get_transcription", "request_failed").Inc()
		return "", false
	}
	requests.WithLabelValues("get_transcription", "provider").Inc()
	span.SetAttributes(attribute.Int("whereby.transcription_chars", len(text)))
	return text, true
}

// findTranscriptions probes candidate room name spellings until one query
// returns records.
func (c *Client) findTranscriptions(ctx context.Context, roomName string) ([]transcription, bool) {
	// Unfiltered newest-first listing, matched locally against the room's
	// trailing segment, is tried first: it survives the provider storing
	// full paths where we stored a bare meeting id.
	tail := roomName
	if i := strings.LastIndex(roomName, "/"); i >= 0 {
		tail = roomName[i+1:]
	}
	if recs, ok := c.list(ctx, ""); ok {
		var matched []transcription
		for _, r := range recs {
			if (tail != "" && strings.Contains(r.RoomName, tail)) || strings.Contains(r.RoomName, roomName) {
				matched = append(matched, r)
			}
		}
		if len(matched) > 0 {
			return matched, true
		}
	}

	for _, cand := range c.candidates(roomName) {
		if recs, ok := c.list(ctx, cand); ok && len(recs) > 0 {
			return recs, true
		}
	}
	return nil, false
}

// candidates returns the filter spellings to try, in order, without duplicates.
func (c *Client) candidates(roomName string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(roomName)
	add("/" + roomName)
	add(strings.TrimPrefix(roomName, "/"))
	add(c.cfg.Subdomain + ".whereby.com/" + strings.TrimPrefix(roomName, "/"))
	return out
}

// list queries GET /transcriptions, optionally filtered by roomName.
func (c *Client) list(ctx context.Context, roomName string) ([]transcription, bool) {
	u := c.cfg.BaseURL + "/transcriptions?limit=50"
	if roomName != "" {
		u += "&roomName=" + url.QueryEscape(roomName)
	}
	raw, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false
	}
	var parsed struct {
		Results []transcription `json:"results"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false
	}
	return parsed.Results, true
}

// download resolves the access link for a transcription and fetches its body.
func (c *Client) download(ctx context.Context, id string) (string, bool) {
	raw, err := c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/transcriptions/"+url.PathEscape(id)+"/access-link", nil)
	if err != nil {
		return "", false
	}
	var parsed struct {
		AccessLink string `json:"accessLink"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.AccessLink == "" {
		return "", false
	}

	// The access link is pre-signed; no Authorization header.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.AccessLink, nil)
	if err != nil {
		return "", false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", false
	}
	return string(body), true
}

// do performs one authorized API request and returns the body for 2xx
// responses.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode}
	}
	return raw, nil
}

type statusError struct{ code int }

func (e *statusError) Error() string {
	return "unexpected status " + http.StatusText(e.code)
}
