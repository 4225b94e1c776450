package model

// Speaker identifies one of the two fixed personas
type Speaker string

const (
	SpeakerBrainy Speaker = "Brainy" // Guiding teacher, ~60% of words
	SpeakerSnarky Speaker = "Snarky" // Skeptical learner, ~40% of words
)

// Phase is the narrative phase a turn belongs to. Phases are traversed in
// order and never recur once exited.
type Phase string

const (
	PhaseHook         Phase = "hook"          // 4-6 turns, opens with the socratic question
	PhaseCoreConcept  Phase = "core_concept"  // 8-10 turns, one analogy, one "aha" exchange
	PhaseKeyInsight   Phase = "key_insight"   // 4-6 turns, restates the key insight
	PhaseQuickExample Phase = "quick_example" // Optional, 2-4 appended turns
)

// Rank returns the phase's position in the mandatory ordering, or -1 for
// unknown phases.
func (p Phase) Rank() int {
	switch p {
	case PhaseHook:
		return 0
	case PhaseCoreConcept:
		return 1
	case PhaseKeyInsight:
		return 2
	case PhaseQuickExample:
		return 3
	default:
		return -1
	}
}

// Interaction patterns a turn can be classified as. Every turn's Notes field
// must name exactly one of these.
const (
	PatternQuestionSequence      = "question-sequence"
	PatternMisconceptionSurfacing = "misconception-surfacing"
	PatternAnalogyBuilding       = "analogy-building"
	PatternExampleDemand         = "example-demand"
	PatternRecapCheckpoint       = "recap-checkpoint"
)

// InteractionPatterns lists the allowed turn classifications
func InteractionPatterns() []string {
	return []string{
		PatternQuestionSequence,
		PatternMisconceptionSurfacing,
		PatternAnalogyBuilding,
		PatternExampleDemand,
		PatternRecapCheckpoint,
	}
}

// Turn is one utterance in the dialogue. Text may carry inline
// [CONCEPT: name] and [PAUSE: "prompt"] markers for the downstream
// concept-graph and audio collaborators.
type Turn struct {
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	SectionID string  `json:"section_id"`
	Phase     Phase   `json:"phase"`
	Notes     string  `json:"notes"` // One of the five interaction patterns
}

// ScriptMetadata is the self-reported accounting block of a script
type ScriptMetadata struct {
	EstimatedWordCount        int      `json:"estimated_word_count"`
	EstimatedDurationMin      float64  `json:"estimated_duration_min"`
	BrainyPercentage          int      `json:"brainy_percentage"`
	SnarkyPercentage          int      `json:"snarky_percentage"`
	LearningOutcomesAddressed []string `json:"learning_outcomes_addressed,omitempty"`
}

// DialogueScript is the terminal pipeline artifact: the ordered turn
// sequence consumed by audio synthesis and concept-graph rendering.
type DialogueScript struct {
	Script   []Turn         `json:"script"`
	Metadata ScriptMetadata `json:"metadata"`
}

// PhaseTurns returns the turns belonging to the given phase, in order
func (s *DialogueScript) PhaseTurns(p Phase) []Turn {
	var turns []Turn
	for _, t := range s.Script {
		if t.Phase == p {
			turns = append(turns, t)
		}
	}
	return turns
}
