package model

// Level controls how much depth the pipeline asks the LLM for
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAdaptive     Level = "adaptive" // Let the model pick based on the topic
)

// ParseLevel normalizes a level string, falling back to adaptive
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s)
	default:
		return LevelAdaptive
	}
}

// OutlineSection is one segment of the episode outline
type OutlineSection struct {
	ID                   string   `json:"id"`                     // Positional reference: "section_1", "section_2", ...
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	LearningOutcomes     []string `json:"learning_outcomes"`      // Concrete cognitive shifts, not vague restatements
	IsSocraticCheckpoint bool     `json:"is_socratic_checkpoint"` // Exactly one section carries the "aha" moment
	EstimatedDurationSec int      `json:"estimated_duration_sec"`
}

// Outline is the lesson plan produced by the outline stage.
// It is created once per topic and read-only for both downstream stages.
type Outline struct {
	Title            string           `json:"title"`
	SocraticQuestion string           `json:"socratic_question"` // The curiosity-gap hook that opens the script
	KeyInsight       string           `json:"key_insight"`       // Single declarative sentence the script closes on
	Description      string           `json:"description"`
	Sections         []OutlineSection `json:"sections"`

	EstimatedWordCount int `json:"estimated_word_count,omitempty"`
}

// TotalDurationSec sums the per-section duration estimates
func (o *Outline) TotalDurationSec() int {
	total := 0
	for _, s := range o.Sections {
		total += s.EstimatedDurationSec
	}
	return total
}

// Section looks up a section by its positional ID
func (o *Outline) Section(id string) (*OutlineSection, bool) {
	for i := range o.Sections {
		if o.Sections[i].ID == id {
			return &o.Sections[i], true
		}
	}
	return nil, false
}

// SectionIDs returns the section IDs in outline order
func (o *Outline) SectionIDs() []string {
	ids := make([]string, len(o.Sections))
	for i, s := range o.Sections {
		ids[i] = s.ID
	}
	return ids
}

// CheckpointSection returns the socratic checkpoint section, if exactly one exists
func (o *Outline) CheckpointSection() (*OutlineSection, bool) {
	var found *OutlineSection
	for i := range o.Sections {
		if o.Sections[i].IsSocraticCheckpoint {
			if found != nil {
				return nil, false
			}
			found = &o.Sections[i]
		}
	}
	return found, found != nil
}
