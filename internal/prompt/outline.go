// Package prompt constructs the instruction text for each pipeline stage.
// Builders are pure string assembly: they never call the LLM and never
// parse its output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/podcastify/podcastify/internal/model"
)

// OutlineSystem is the role instruction for the outline stage
const OutlineSystem = `You are an expert educational content designer specializing in micro-learning and Socratic coaching. You create tight 2-3 minute podcast outlines that shift thinking through one powerful question and one deep insight.`

// OutlineRequest carries the inputs for building an outline prompt
type OutlineRequest struct {
	Topic         string
	Level         model.Level
	CustomOutline string // Optional caller-supplied outline to refine instead of inventing one

	// Feedback lists validation errors from a rejected previous attempt.
	// Non-empty feedback turns the prompt into a regeneration request.
	Feedback []string
}

// BuildOutline constructs the outline-stage prompt
func BuildOutline(req OutlineRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Generate ONE optimized outline for a 2-3 minute Socratic micro-coaching episode.

**Topic**: %s
**Level**: %s
**Custom Outline**: %s

Return your response as valid JSON matching this structure:
{
  "title": "Engaging title for the micro-episode",
  "socratic_question": "The ONE transformative question that hooks the listener",
  "key_insight": "The ONE core insight that shifts thinking, as a single declarative sentence",
  "description": "1 sentence overview",
  "sections": [
    {
      "id": "section_1",
      "title": "Section name",
      "description": "What this covers",
      "learning_outcomes": ["Specific cognitive shift the learner will make"],
      "is_socratic_checkpoint": false,
      "estimated_duration_sec": 45
    }
  ],
  "estimated_word_count": 450
}

IMPORTANT: Number sections sequentially starting from "section_1", "section_2", etc.

CRITICAL Guidelines:
- Lead with a Socratic question that creates a curiosity gap: its obvious answer must be incomplete or wrong
- The key insight is ONE declarative sentence, not a list
- Use 3-4 sections (e.g. Socratic Hook -> Core Concept -> Key Insight, optionally a Quick Example)
- Mark EXACTLY ONE section with "is_socratic_checkpoint": true - the "aha" moment
- Section durations must sum to 120-180 seconds
- Target ~450 words of finished dialogue
- Learning outcomes name one concrete cognitive shift each; "understand X better" is rejected
`, req.Topic, req.Level, orNone(req.CustomOutline))

	appendFeedback(&b, req.Feedback)
	return b.String()
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// appendFeedback attaches the previous attempt's validation errors so the
// model can repair them instead of repeating them.
func appendFeedback(b *strings.Builder, feedback []string) {
	if len(feedback) == 0 {
		return
	}
	b.WriteString("\nYour previous attempt was REJECTED for these violations. Fix every one of them:\n")
	for _, f := range feedback {
		fmt.Fprintf(b, "- %s\n", f)
	}
}
