package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/unitutor/internal/store"
)

func llmEvent(id int64, purpose string, ok bool) store.LLMRequestEvent {
	return store.LLMRequestEvent{
		ID:        id,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-2.5-flash",
			Purpose:      purpose,
			InputTokens:  1200,
			OutputTokens: 300,
			LatencyMs:    850,
			Success:      ok,
		},
	}
}

func TestFilterPurpose(t *testing.T) {
	events := []store.LLMRequestEvent{
		llmEvent(5, "quiz-gen", true),
		llmEvent(4, "other", true),
		llmEvent(3, "quiz-gen", false),
		llmEvent(2, "quiz-gen", true),
	}

	assert.Len(t, filterPurpose(events, "", 1), 4, "no purpose leaves the query limit in charge")

	got := filterPurpose(events, "quiz-gen", 2)
	if assert.Len(t, got, 2) {
		assert.Equal(t, int64(5), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	}
	assert.Empty(t, filterPurpose(events, "missing", 10))
}

func TestPrintLLMEvents(t *testing.T) {
	var out bytes.Buffer
	printLLMEvents(&out, nil)
	assert.Contains(t, out.String(), "No LLM calls recorded.")

	out.Reset()
	printLLMEvents(&out, []store.LLMRequestEvent{llmEvent(7, "quiz-gen", false)})
	assert.Contains(t, out.String(), "gemini-2.5-flash")
	assert.Contains(t, out.String(), "✗")
}

func TestPrintLLMEventUncaptured(t *testing.T) {
	ev := llmEvent(9, "quiz-gen", false)
	ev.ErrorMessage = "rate limited"
	ev.RequestBody = `{"messages":[]}`

	var out bytes.Buffer
	printLLMEvent(&out, &ev)

	s := out.String()
	assert.Contains(t, s, "failed: rate limited")
	assert.Contains(t, s, `{"messages":[]}`)
	assert.Contains(t, s, "(not captured)")
}

func TestPrintLLMUsagePartialCost(t *testing.T) {
	byPurpose := []store.LLMUsage{{Purpose: "quiz-gen", Calls: 2, InputTokens: 1000, OutputTokens: 500}}
	byModel := []store.LLMUsage{
		{Model: "claude-sonnet-4-5", Calls: 1, InputTokens: 1_000_000},
		{Model: "homegrown-7b", Calls: 1},
	}

	var out bytes.Buffer
	printLLMUsage(&out, byPurpose, byModel)

	s := out.String()
	assert.Contains(t, s, "$3.00")
	assert.Contains(t, s, "TOTAL (partial)")
	assert.Contains(t, s, "No pricing for: homegrown-7b")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
