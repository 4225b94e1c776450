// Package extract post-processes a validated dialogue script into the data
// the concept-graph and audio collaborators consume: concepts with first
// mention positions, retrieval-practice pause moments, and chapter markers.
package extract

import (
	"fmt"
	"strings"

	"github.com/podcastify/podcastify/internal/model"
)

// Speaking pace used for timestamp estimates. The audio collaborator
// replaces these with measured timings after synthesis.
const (
	wordsPerMinute = 150.0
	pauseGapSec    = 3.0 // Listener thinking time per retrieval pause
	turnGapSec     = 0.4 // Silence inserted between turns
)

// Timestamps estimates the start time of every turn from speaking pace,
// inter-turn gaps, and retrieval pauses.
func Timestamps(turns []model.Turn) []float64 {
	starts := make([]float64, len(turns))
	elapsed := 0.0
	for i, t := range turns {
		if len(PausePrompts(t.Text)) > 0 {
			elapsed += pauseGapSec
		}
		starts[i] = elapsed
		words := float64(WordCount(t.Text))
		elapsed += words / wordsPerMinute * 60.0
		elapsed += turnGapSec
	}
	return starts
}

// Concepts collects the first-mention concept tags across the script.
// Duplicate tags of the same name keep only the first occurrence; the
// validator flags them separately.
func Concepts(turns []model.Turn) []model.Concept {
	starts := Timestamps(turns)
	seen := make(map[string]bool)
	var concepts []model.Concept

	for i, t := range turns {
		for _, name := range ConceptNames(t.Text) {
			lower := strings.ToLower(name)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			concepts = append(concepts, model.Concept{
				ID:           fmt.Sprintf("c%d", len(concepts)+1),
				Name:         name,
				Snippet:      StripMarkers(t.Text),
				TurnIndex:    i,
				SectionID:    t.SectionID,
				TimestampSec: starts[i],
			})
		}
	}
	return concepts
}

// PauseMoments collects the retrieval-practice pauses across the script
func PauseMoments(turns []model.Turn) []model.PauseMoment {
	starts := Timestamps(turns)
	var moments []model.PauseMoment

	for i, t := range turns {
		for _, prompt := range PausePrompts(t.Text) {
			moments = append(moments, model.PauseMoment{
				TurnIndex:    i,
				Prompt:       prompt,
				TimestampSec: starts[i],
			})
		}
	}
	return moments
}

// Chapters derives navigation markers from the outline sections and the
// turns assigned to them. Sections with no turns are skipped.
func Chapters(outline *model.Outline, turns []model.Turn, concepts []model.Concept) []model.Chapter {
	starts := Timestamps(turns)
	var chapters []model.Chapter

	for _, section := range outline.Sections {
		first, last, count := -1, -1, 0
		for i, t := range turns {
			if t.SectionID != section.ID {
				continue
			}
			if first < 0 {
				first = i
			}
			last = i
			count++
		}
		if count == 0 {
			continue
		}

		end := starts[last] + float64(WordCount(turns[last].Text))/wordsPerMinute*60.0

		var keyConcepts []string
		for _, c := range concepts {
			if c.SectionID == section.ID {
				keyConcepts = append(keyConcepts, c.ID)
			}
		}

		chapters = append(chapters, model.Chapter{
			ID:          "ch_" + section.ID,
			Title:       section.Title,
			SectionID:   section.ID,
			StartSec:    starts[first],
			DurationSec: end - starts[first],
			TurnCount:   count,
			KeyConcepts: keyConcepts,
		})
	}
	return chapters
}
