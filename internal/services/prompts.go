package services

import (
	"encoding/json"
	"strings"

	"github.com/hheidy0463/ReproCare/internal/domain"
)

// Prompt text sent to the completion provider. The wording is part of the
// product: the intake prompt pins the target schema, and both prompts pin the
// grade-eight reading level for patient-facing text.
const (
	intakeSystemPrompt = "You convert short intake Q and A into JSON for a clinician and a patient.\n" +
		"Follow the target schema. Unknown fields are null. Do not invent data."

	postVisitSystemPrompt = "You write simple patient explanations. Reading level grade eight. Use short sentences."
)

// maxTranscriptRunes caps how much meeting transcript is quoted into the
// post-visit prompt.
const maxTranscriptRunes = 4000

// intakeUserPrompt renders the Q&A pairs into the conversion request.
func intakeUserPrompt(qa []domain.QA) string {
	var b strings.Builder
	b.WriteString("Convert the following Q and A into:\n")
	b.WriteString("1) intake_structured JSON with fields reason, age, last_period, pregnancy_risk, contra_indications, preferences, history, insurance\n")
	b.WriteString("2) provider_note with four lines: chief concern, key history, red flags, plan suggestion\n")
	b.WriteString("3) patient_summary at grade eight reading level with two short paragraphs\n\n")
	b.WriteString("Q and A:\n")
	b.WriteString(formatQA(qa))
	return b.String()
}

// formatQA renders pairs as "Q: ...\nA: ..." lines.
func formatQA(qa []domain.QA) string {
	lines := make([]string, 0, len(qa))
	for _, item := range qa {
		lines = append(lines, "Q: "+item.Q+"\nA: "+item.A)
	}
	return strings.Join(lines, "\n")
}

// postVisitUserPrompt builds the summary request from the provider note and
// structured intake.
func postVisitUserPrompt(providerNote string, intakeStructured map[string]any) string {
	intakeJSON, err := json.Marshal(intakeStructured)
	if err != nil || intakeStructured == nil {
		intakeJSON = []byte("{}")
	}
	var b strings.Builder
	b.WriteString("Create a three part summary:\n")
	b.WriteString("one, what we talked about.\n")
	b.WriteString("two, what to do next with any dates.\n")
	b.WriteString("three, what to watch for and when to get help.\n\n")
	b.WriteString("Provider note:\n")
	b.WriteString(providerNote)
	b.WriteString("\n\nIntake structured JSON:\n")
	b.Write(intakeJSON)
	return b.String()
}

// postVisitTranscriptPrompt builds the summary request from an actual meeting
// transcript, clipped to maxTranscriptRunes.
func postVisitTranscriptPrompt(transcript string) string {
	runes := []rune(transcript)
	if len(runes) > maxTranscriptRunes {
		transcript = string(runes[:maxTranscriptRunes])
	}
	var b strings.Builder
	b.WriteString("Create a three part summary based on the actual meeting transcription:\n")
	b.WriteString("one, what we talked about during the visit.\n")
	b.WriteString("two, what to do next with any dates mentioned.\n")
	b.WriteString("three, what to watch for and when to get help.\n\n")
	b.WriteString("Meeting transcription:\n")
	b.WriteString(transcript)
	return b.String()
}
