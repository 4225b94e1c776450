package model

import "time"

// Concept is a navigable concept extracted from the script's [CONCEPT:]
// markers. Timestamps are estimates from speaking pace; the audio
// collaborator replaces them with measured ones.
type Concept struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Snippet      string  `json:"snippet,omitempty"` // Text of the turn that introduced it
	TurnIndex    int     `json:"turn_index"`
	SectionID    string  `json:"section_id,omitempty"`
	TimestampSec float64 `json:"timestamp_sec"`
}

// PauseMoment is a retrieval-practice pause extracted from a [PAUSE:]
// marker: the player pauses and shows the prompt before the answer plays.
type PauseMoment struct {
	TurnIndex    int     `json:"turn_index"`
	Prompt       string  `json:"prompt"`
	TimestampSec float64 `json:"timestamp_sec"`
}

// Chapter is a navigation marker derived from an outline section
type Chapter struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	SectionID   string   `json:"section_id"`
	StartSec    float64  `json:"start_sec"`
	DurationSec float64  `json:"duration_sec"`
	TurnCount   int      `json:"turn_count"`
	KeyConcepts []string `json:"key_concepts,omitempty"` // Concept IDs first mentioned here
}

// Episode bundles everything one generation run produced. Upstream
// artifacts are never invalidated by downstream failures, so the episode
// carries them all.
type Episode struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Level     Level     `json:"level"`
	CreatedAt time.Time `json:"created_at"`

	Outline Outline                    `json:"outline"`
	Atoms   map[string]TeachingAtomSet `json:"teaching_atoms"` // Keyed by section ID
	Script  DialogueScript             `json:"script"`

	Concepts     []Concept     `json:"concepts"`
	PauseMoments []PauseMoment `json:"pause_moments"`
	Chapters     []Chapter     `json:"chapters"`

	// Warnings records non-fatal source-insufficiency notes per section
	Warnings []string `json:"warnings,omitempty"`
}
