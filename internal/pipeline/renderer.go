package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/podcastify/podcastify/internal/extract"
	"github.com/podcastify/podcastify/internal/model"
)

// Renderer writes an episode in one of the supported output formats
type Renderer struct {
	IncludeFooter bool
}

// RenderJSON writes the full episode as indented JSON
func (r *Renderer) RenderJSON(w io.Writer, ep *model.Episode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ep); err != nil {
		return fmt.Errorf("encode episode: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable transcript with chapters, pause
// prompts, and the extracted concept list. Inline markers are stripped from
// the spoken text; pauses are rendered as their own callouts.
func (r *Renderer) RenderMarkdown(w io.Writer, ep *model.Episode) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", ep.Outline.Title)
	fmt.Fprintf(&b, "**Topic:** %s  \n", ep.Topic)
	fmt.Fprintf(&b, "**Level:** %s  \n", ep.Level)
	fmt.Fprintf(&b, "**The question:** %s\n\n", ep.Outline.SocraticQuestion)

	pausesByTurn := make(map[int]model.PauseMoment, len(ep.PauseMoments))
	for _, p := range ep.PauseMoments {
		pausesByTurn[p.TurnIndex] = p
	}

	chapterStarts := make(map[string]model.Chapter, len(ep.Chapters))
	for _, ch := range ep.Chapters {
		chapterStarts[ch.SectionID] = ch
	}

	currentSection := ""
	for i, turn := range ep.Script.Script {
		if turn.SectionID != currentSection {
			currentSection = turn.SectionID
			if ch, ok := chapterStarts[currentSection]; ok {
				fmt.Fprintf(&b, "## %s _(%s)_\n\n", ch.Title, formatTimestamp(ch.StartSec))
			}
		}

		if p, ok := pausesByTurn[i]; ok {
			fmt.Fprintf(&b, "> ⏸ **Pause and think:** %s\n\n", p.Prompt)
		}

		fmt.Fprintf(&b, "**%s:** %s\n\n", turn.Speaker, extract.StripMarkers(turn.Text))
	}

	if len(ep.Concepts) > 0 {
		b.WriteString("---\n\n## Concepts\n\n")
		for _, c := range ep.Concepts {
			fmt.Fprintf(&b, "- **%s** _(%s)_\n", c.Name, formatTimestamp(c.TimestampSec))
		}
		b.WriteString("\n")
	}

	if len(ep.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, warn := range ep.Warnings {
			fmt.Fprintf(&b, "- %s\n", warn)
		}
		b.WriteString("\n")
	}

	if r.IncludeFooter {
		fmt.Fprintf(&b, "---\n\n_Generated by Podcastify on %s._\n", ep.CreatedAt.Format("2006-01-02"))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// RenderSummary writes a terse one-screen report of what was generated
func (r *Renderer) RenderSummary(w io.Writer, ep *model.Episode) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Episode %s\n", ep.ID)
	fmt.Fprintf(&b, "  Title:     %s\n", ep.Outline.Title)
	fmt.Fprintf(&b, "  Question:  %s\n", ep.Outline.SocraticQuestion)
	fmt.Fprintf(&b, "  Sections:  %d (%ds total)\n", len(ep.Outline.Sections), ep.Outline.TotalDurationSec())
	fmt.Fprintf(&b, "  Turns:     %d\n", len(ep.Script.Script))
	fmt.Fprintf(&b, "  Concepts:  %d, pauses: %d, chapters: %d\n",
		len(ep.Concepts), len(ep.PauseMoments), len(ep.Chapters))

	low := 0
	for id, set := range ep.Atoms {
		if set.ConfidenceScore < 0.5 {
			low++
			fmt.Fprintf(&b, "  Low confidence in %s (%.2f)\n", id, set.ConfidenceScore)
		}
	}
	if len(ep.Warnings) > 0 {
		fmt.Fprintf(&b, "  Warnings:  %d\n", len(ep.Warnings))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func formatTimestamp(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
