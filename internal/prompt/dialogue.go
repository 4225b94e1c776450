package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/podcastify/podcastify/internal/model"
)

// DialogueRequest carries the inputs for building a dialogue prompt
type DialogueRequest struct {
	Outline  model.Outline
	Atoms    map[string]model.TeachingAtomSet
	Personas [2]PersonaProfile
	Feedback []string
}

// DialogueSystem builds the role instruction from the persona profiles
func DialogueSystem(personas [2]PersonaProfile) string {
	var b strings.Builder

	b.WriteString("You are writing a dyadic Socratic podcast script between two fixed personas:\n")
	for _, p := range personas {
		fmt.Fprintf(&b, `
%s — %s
Tone: %s
Vocabulary: %s
Words per turn: %d-%d
Signature phrases (use sparingly): %s
Hard rules: %s
`, p.Name, p.Role, p.Tone, p.VocabularyRegister,
			p.TurnWordRange[0], p.TurnWordRange[1],
			strings.Join(p.SignaturePhrases, " | "), p.Rules)
	}

	b.WriteString("\nCreate an engaging, transformative Socratic dialogue with humor and personality. The skepticism keeps things fun without being mean.")
	return b.String()
}

// BuildDialogue constructs the dialogue-stage prompt
func BuildDialogue(req DialogueRequest) string {
	var b strings.Builder

	outlineJSON, _ := json.MarshalIndent(req.Outline, "", "  ")
	atomsJSON, _ := json.MarshalIndent(req.Atoms, "", "  ")

	brainy, snarky := req.Personas[0].Name, req.Personas[1].Name

	fmt.Fprintf(&b, `Generate a complete 2-3 minute Socratic micro-coaching podcast script.

**Outline**:
%s

**Teaching Atoms** (your ONLY source of facts - do not introduce claims absent from them):
%s

Return as JSON:
{
  "script": [
    {
      "speaker": "%s" or "%s",
      "text": "What they say...",
      "section_id": "section_1",
      "phase": "hook",
      "notes": "question-sequence"
    }
  ],
  "metadata": {
    "estimated_word_count": 450,
    "estimated_duration_min": 3.0,
    "brainy_percentage": 60,
    "snarky_percentage": 40,
    "learning_outcomes_addressed": ["..."]
  }
}

STRUCTURE - three mandatory phases in this exact order, no phase may recur once exited:
1. "hook" (4-6 turns): %s opens with the outline's socratic_question VERBATIM, no preamble. %s reacts with skeptical confusion.
2. "core_concept" (8-10 turns): exactly one extended analogy (from the intuition atoms), and one Socratic "aha" exchange where %s voices confusion then works through it.
3. "key_insight" (4-6 turns): restate the outline's key_insight verbatim or near-verbatim, end on an affective high note.
Optionally append a fourth phase "quick_example" (2-4 turns) applying the insight to a fresh case.

HARD BUDGETS:
- 16-20 turns across the three mandatory phases (quick_example turns are extra)
- No single turn exceeds 40 words
- Total ~450 words (within 10%%)
- %s speaks ~60%% of the words, %s ~40%%
- Never three consecutive turns by the same speaker
- Every turn's "section_id" must reference an outline section; every turn's "phase" must be one of the four phase names

TURN CLASSIFICATION: every turn's "notes" field is EXACTLY ONE of:
question-sequence | misconception-surfacing | analogy-building | example-demand | recap-checkpoint

RETRIEVAL PRACTICE - [PAUSE: "..."] markers:
- At 2-3 points where %s poses a KEY question (not a rhetorical one), the NEXT %s turn must BEGIN with [PAUSE: "short recall prompt"] before delivering the answer
- Each pause prompt is under 10 words
- Example: [PAUSE: "What would YOU expect to happen?"] Well, the light...

CONCEPT TAGS - [CONCEPT: Name] markers:
- Tag each key concept at its FIRST mention only: "Well, [CONCEPT: Chlorophyll] absorbs red and blue light..."
- 8-12 tagged concepts across the whole script
- Keep names concise (2-4 words), drawn from the teaching atoms where possible
- Never tag the same concept twice
`, string(outlineJSON), string(atomsJSON),
		brainy, snarky,
		brainy, snarky, snarky,
		brainy, snarky,
		snarky, brainy)

	appendFeedback(&b, req.Feedback)
	return b.String()
}
