package llm

import "strings"

// Canned demo completions. These are the exact payloads the services expect
// to parse, so a credential-less deployment still walks the full workflow.
const (
	intakeStub = `{
  "intake_structured": {
    "reason": "birth control consult",
    "age": 20,
    "last_period": "2025-01-15",
    "pregnancy_risk": "low",
    "contra_indications": ["none known"],
    "preferences": {"method": "pill", "frequency": "daily"},
    "history": {"smoking": "no", "migraine_with_aura": "no"},
    "insurance": {"has_insurance": false}
  },
  "provider_note": "Chief concern: Patient seeking birth control pill for contraception.\nKey history: 20 year old, non-smoker, no migraine with aura, low pregnancy risk.\nRed flags: None identified.\nPlan suggestion: Consider combination oral contraceptive pill given preferences and no contraindications.",
  "patient_summary": "We talked about your birth control options today. You are 20 years old and prefer a daily pill. You do not smoke and have no history of migraine with aura. Your risk of pregnancy right now is low. We discussed starting a combination birth control pill that you take once a day."
}`

	postVisitStub = `{
  "patient_summary": {
    "what_we_discussed": "We talked about starting you on a birth control pill. This pill contains hormones that prevent pregnancy. You will take one pill every day at the same time. It is important to take it every day to keep you protected.",
    "next_steps": [
      "Start taking the pill tomorrow morning with your first meal",
      "Pick up your prescription at the pharmacy within 3 days",
      "Schedule a follow up in 3 months to check how you are doing"
    ],
    "watch_fors": [
      "If you miss a pill, take it as soon as you remember",
      "If you have severe chest pain or leg swelling, call us right away",
      "If you have unusual bleeding that lasts more than a week, let us know"
    ]
  },
  "plain_text": "We talked about starting you on a birth control pill. This pill contains hormones that prevent pregnancy. You will take one pill every day at the same time. It is important to take it every day to keep you protected.\n\nNext steps:\n- Start taking the pill tomorrow morning with your first meal\n- Pick up your prescription at the pharmacy within 3 days\n- Schedule a follow up in 3 months to check how you are doing\n\nWatch for:\n- If you miss a pill, take it as soon as you remember\n- If you have severe chest pain or leg swelling, call us right away\n- If you have unusual bleeding that lasts more than a week, let us know"
}`
)

// StubResponse returns the canned completion for a task kind. Unknown kinds
// get an empty JSON object, which downstream parsers treat as "no structured
// output".
func StubResponse(kind Kind) string {
	switch kind {
	case KindIntake:
		return intakeStub
	case KindPostVisit:
		return postVisitStub
	default:
		return "{}"
	}
}

// DetectKind infers the task kind from prompt text, case-insensitively:
// "intake" anywhere selects the intake task, otherwise "post visit" selects
// the post-visit task. Used only when the caller passes KindUnknown.
func DetectKind(systemPrompt, userPrompt string) Kind {
	s := strings.ToLower(systemPrompt)
	u := strings.ToLower(userPrompt)
	switch {
	case strings.Contains(s, "intake") || strings.Contains(u, "intake"):
		return KindIntake
	case strings.Contains(s, "post visit") || strings.Contains(u, "post visit"):
		return KindPostVisit
	default:
		return KindUnknown
	}
}
