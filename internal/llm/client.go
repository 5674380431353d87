// Package llm provides the outbound text-completion client used to turn
// intake answers and visit transcripts into structured clinical notes.
//
// The client is deliberately forgiving: with no API key configured it serves
// canned demo responses, and any provider failure degrades to the same canned
// responses rather than surfacing an error to the caller. Every completion
// reports how it was produced (provider vs stub, and why) so callers can log
// and expose the distinction instead of silently passing stub text off as
// model output.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hheidy0463/ReproCare/internal/config"
)

// Kind identifies which completion task is being requested. Routing is
// explicit: callers that know what they are asking for say so, and the
// substring sniffing in DetectKind only backstops KindUnknown.
type Kind string

const (
	KindIntake    Kind = "intake"
	KindPostVisit Kind = "post_visit"
	KindUnknown   Kind = ""
)

// Outcome reports whether a completion came from the configured provider or
// from the built-in stub.
type Outcome string

const (
	OutcomeProvider Outcome = "provider"
	OutcomeStub     Outcome = "stub"
)

// Reason explains a stub outcome. Empty for provider outcomes.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoCredential  Reason = "no_credential"
	ReasonRequestFailed Reason = "request_failed"
	ReasonBadResponse   Reason = "bad_response"
)

// Result is a completed request: the text plus its provenance.
type Result struct {
	Text    string
	Outcome Outcome
	Reason  Reason
}

var completions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "llm_requests_total",
	Help: "Completion requests by task kind and outcome.",
}, []string{"kind", "outcome", "reason"})

// Client calls an OpenAI-compatible completion endpoint.
type Client struct {
	cfg  config.LLMConfig
	http *http.Client
}

// New builds a Client from explicit configuration. Nothing is read from the
// environment here.
func New(cfg config.LLMConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete runs one completion for the given task kind. It never returns an
// error: when the provider is unconfigured or misbehaves, the canned stub for
// the kind is returned with the Reason set accordingly.
func (c *Client) Complete(ctx context.Context, kind Kind, systemPrompt, userPrompt string) Result {
	tr := otel.Tracer("llm/Client")
	ctx, span := tr.Start(ctx, "llm.Complete")
	defer span.End()
	span.SetAttributes(attribute.String("llm.kind", string(kind)))

	if kind == KindUnknown {
		kind = DetectKind(systemPrompt, userPrompt)
	}

	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return c.fallback(ctx, kind, ReasonNoCredential, nil)
	}

	body, err := json.Marshal(c.payload(kind, systemPrompt, userPrompt))
	if err != nil {
		return c.fallback(ctx, kind, ReasonRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return c.fallback(ctx, kind, ReasonRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fallback(ctx, kind, ReasonRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return c.fallback(ctx, kind, ReasonRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("kind", string(kind)).Msg("completion provider returned non-2xx")
		return c.fallback(ctx, kind, ReasonRequestFailed, nil)
	}

	text, ok := extractText(raw)
	if !ok {
		return c.fallback(ctx, kind, ReasonBadResponse, nil)
	}

	completions.WithLabelValues(string(kind), string(OutcomeProvider), "").Inc()
	return Result{Text: text, Outcome: OutcomeProvider, Reason: ReasonNone}
}

// payload builds the request body. URLs containing "chat/completions" get the
// structured message-array shape; anything else gets the legacy single-prompt
// shape.
func (c *Client) payload(kind Kind, systemPrompt, userPrompt string) map[string]any {
	if strings.Contains(c.cfg.BaseURL, "chat/completions") {
		return map[string]any{
			"model": c.cfg.ChatModel,
			"messages": []map[string]string{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": userPrompt},
			},
			"temperature": 0.7,
		}
	}
	return map[string]any{
		"model":       c.cfg.LegacyModel,
		"prompt":      systemPrompt + "\n\n" + userPrompt,
		"temperature": 0.7,
		"max_tokens":  1000,
	}
}

func (c *Client) fallback(_ context.Context, kind Kind, reason Reason, err error) Result {
	ev := log.Warn().Str("kind", string(kind)).Str("reason", string(reason))
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("completion falling back to stub")
	completions.WithLabelValues(string(kind), string(OutcomeStub), string(reason)).Inc()
	return Result{Text: StubResponse(kind), Outcome: OutcomeStub, Reason: reason}
}

// extractText pulls the completion text out of an OpenAI-style response:
// choices[0].message.content for chat, choices[0].text for legacy. A decoded
// body with neither shape reports !ok so the caller can fall back.
func extractText(raw []byte) (string, bool) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Choices) == 0 {
		return "", false
	}
	if parsed.Choices[0].Message.Content != "" {
		return parsed.Choices[0].Message.Content, true
	}
	if parsed.Choices[0].Text != "" {
		return parsed.Choices[0].Text, true
	}
	return "", false
}
