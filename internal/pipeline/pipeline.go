// Package pipeline orchestrates the three generation stages: outline,
// research compression, and dialogue. Each stage treats the LLM response as
// untrusted text until it passes schema and semantic validation; a rejected
// artifact is regenerated with the violation list appended to the prompt,
// up to the configured attempt budget.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/podcastify/podcastify/internal/extract"
	"github.com/podcastify/podcastify/internal/llm"
	"github.com/podcastify/podcastify/internal/logger"
	"github.com/podcastify/podcastify/internal/model"
	"github.com/podcastify/podcastify/internal/prompt"
	"github.com/podcastify/podcastify/internal/schema"
	"github.com/podcastify/podcastify/internal/score"
	"github.com/podcastify/podcastify/internal/validate"
)

// SourceFetcher retrieves research documents for the compression stage.
// Satisfied by sources.Fetcher; an interface so pipeline tests can stub it.
type SourceFetcher interface {
	FetchAll(ctx context.Context, urls []string) ([]model.SourceDocument, []string)
}

// Generator runs the full episode pipeline
type Generator struct {
	client  *llm.Client
	fetcher SourceFetcher
	scorer  *score.ConfidenceScorer
	cfg     *model.Config
	log     *logger.Logger
}

// NewGenerator creates a pipeline generator. A nil fetcher means sections
// are compressed only from caller-provided documents.
func NewGenerator(client *llm.Client, fetcher SourceFetcher, cfg *model.Config, log *logger.Logger) *Generator {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		client:  client,
		fetcher: fetcher,
		scorer:  score.NewConfidenceScorer(),
		cfg:     cfg,
		log:     log,
	}
}

// GenerateOutline runs the outline stage: topic in, validated outline out.
// Regenerates on validation failure with the violations fed back into the
// prompt; after the attempt budget the last error surfaces to the caller.
func (g *Generator) GenerateOutline(ctx context.Context, topic string, level model.Level, customOutline string) (*model.Outline, error) {
	var feedback []string
	maxAttempts := g.attempts()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		g.log.Info("generating outline", "topic", topic, "level", level, "attempt", attempt)

		req := prompt.OutlineRequest{
			Topic:         topic,
			Level:         level,
			CustomOutline: customOutline,
			Feedback:      feedback,
		}
		resp, err := g.client.Generate(ctx, llm.GenerateRequest{
			System:      prompt.OutlineSystem,
			Prompt:      prompt.BuildOutline(req),
			Temperature: 0.7,
			JSONOutput:  true,
			BypassCache: attempt > 1,
		})
		if err != nil {
			return nil, fmt.Errorf("outline generation: %w", err)
		}

		raw := []byte(schema.Sanitize(resp.Text))
		if violations := schema.ValidateOutlineJSON(raw); len(violations) > 0 {
			feedback = violations
			g.log.Warn("outline rejected by schema", "attempt", attempt, "violations", len(violations))
			continue
		}

		var outline model.Outline
		if err := json.Unmarshal(raw, &outline); err != nil {
			feedback = []string{fmt.Sprintf("response was not valid JSON: %v", err)}
			continue
		}

		if err := validate.Outline(&outline); err != nil {
			var malformed *validate.MalformedOutlineError
			if errors.As(err, &malformed) {
				feedback = malformed.Violations
				g.log.Warn("outline rejected", "attempt", attempt, "violations", len(malformed.Violations))
				continue
			}
			return nil, err
		}

		return &outline, nil
	}

	return nil, &validate.MalformedOutlineError{
		Violations: append([]string{fmt.Sprintf("still invalid after %d attempts", maxAttempts)}, feedback...),
	}
}

// CompressSection runs research compression for one section. Zero sources
// is not an error: it yields a degenerate atom set and a warning, and the
// episode proceeds with honest low confidence.
func (g *Generator) CompressSection(ctx context.Context, section model.OutlineSection, docs []model.SourceDocument, level model.Level) (*model.TeachingAtomSet, []string, error) {
	if len(docs) == 0 {
		set := model.DegenerateAtomSet(section.ID, "no usable research sources for this section")
		warn := (&validate.SourceInsufficiencyWarning{
			SectionID: section.ID,
			Reasons:   []string{"no usable sources, emitting degenerate atom set"},
		}).Error()
		g.log.Warn("section has no sources", "section", section.ID)
		return &set, []string{warn}, nil
	}

	allowed := make([]string, len(docs))
	for i, d := range docs {
		allowed[i] = d.URL
	}

	var feedback []string
	maxAttempts := g.attempts()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		g.log.Info("compressing section", "section", section.ID, "sources", len(docs), "attempt", attempt)

		resp, err := g.client.Generate(ctx, llm.GenerateRequest{
			System: prompt.AtomsSystem,
			Prompt: prompt.BuildAtoms(prompt.AtomsRequest{
				Section:  section,
				Sources:  docs,
				Level:    level,
				Feedback: feedback,
			}),
			Temperature: 0.3,
			JSONOutput:  true,
			BypassCache: attempt > 1,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("compress %s: %w", section.ID, err)
		}

		raw := []byte(schema.Sanitize(resp.Text))
		if violations := schema.ValidateAtomSetJSON(raw); len(violations) > 0 {
			feedback = violations
			continue
		}

		var set model.TeachingAtomSet
		if err := json.Unmarshal(raw, &set); err != nil {
			feedback = []string{fmt.Sprintf("response was not valid JSON: %v", err)}
			continue
		}
		set.SectionID = section.ID

		if err := validate.AtomSet(&set, allowed); err != nil {
			var malformed *validate.MalformedAtomSetError
			if errors.As(err, &malformed) {
				feedback = malformed.Violations
				g.log.Warn("atom set rejected", "section", section.ID, "attempt", attempt)
				continue
			}
			return nil, nil, err
		}

		var warnings []string
		clamped, signals := g.scorer.Clamp(&set, docs)
		if clamped < set.ConfidenceScore {
			g.log.Debug("confidence clamped",
				"section", section.ID,
				"reported", set.ConfidenceScore,
				"ceiling", clamped,
			)
			set.ConfidenceScore = clamped
		}
		for _, sig := range signals {
			if sig.Severity != score.SeverityInfo {
				warnings = append(warnings, fmt.Sprintf("%s: %s", section.ID, sig.Description))
			}
		}

		return &set, warnings, nil
	}

	return nil, nil, &validate.MalformedAtomSetError{
		SectionID:  section.ID,
		Violations: append([]string{fmt.Sprintf("still invalid after %d attempts", maxAttempts)}, feedback...),
	}
}

// CompressAll compresses every outline section concurrently. Sections are
// independent so one section's failure aborts the group; insufficiency
// stays a warning, never a failure.
func (g *Generator) CompressAll(ctx context.Context, outline *model.Outline, docs []model.SourceDocument, level model.Level) (map[string]model.TeachingAtomSet, []string, error) {
	atoms := make(map[string]model.TeachingAtomSet, len(outline.Sections))
	var warnings []string

	type sectionResult struct {
		sectionID string
		set       *model.TeachingAtomSet
		warnings  []string
	}
	results := make([]sectionResult, len(outline.Sections))

	workers := g.cfg.Pipeline.SectionWorkers
	if workers <= 0 {
		workers = 1
	}

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	for i, section := range outline.Sections {
		grp.Go(func() error {
			sectionDocs := g.selectSources(docs)
			set, warns, err := g.CompressSection(gctx, section, sectionDocs, level)
			if err != nil {
				return err
			}
			results[i] = sectionResult{sectionID: section.ID, set: set, warnings: warns}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	for _, r := range results {
		atoms[r.sectionID] = *r.set
		warnings = append(warnings, r.warnings...)
	}
	return atoms, warnings, nil
}

// selectSources caps the per-section source list, preferring the most
// relevant documents.
func (g *Generator) selectSources(docs []model.SourceDocument) []model.SourceDocument {
	limit := g.cfg.Pipeline.MaxSourcesPerSection
	if limit <= 0 || len(docs) <= limit {
		return docs
	}
	sorted := make([]model.SourceDocument, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].RelevanceScore > sorted[b].RelevanceScore
	})
	return sorted[:limit]
}

// GenerateDialogue runs the dialogue stage against a validated outline and
// its teaching atoms.
func (g *Generator) GenerateDialogue(ctx context.Context, outline *model.Outline, atoms map[string]model.TeachingAtomSet) (*model.DialogueScript, error) {
	personas := prompt.DefaultPersonas()
	var feedback []string
	maxAttempts := g.attempts()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		g.log.Info("generating dialogue", "title", outline.Title, "attempt", attempt)

		resp, err := g.client.Generate(ctx, llm.GenerateRequest{
			System: prompt.DialogueSystem(personas),
			Prompt: prompt.BuildDialogue(prompt.DialogueRequest{
				Outline:  *outline,
				Atoms:    atoms,
				Personas: personas,
				Feedback: feedback,
			}),
			Temperature: 0.8,
			JSONOutput:  true,
			BypassCache: attempt > 1,
		})
		if err != nil {
			return nil, fmt.Errorf("dialogue generation: %w", err)
		}

		raw := []byte(schema.Sanitize(resp.Text))
		if violations := schema.ValidateScriptJSON(raw); len(violations) > 0 {
			feedback = violations
			g.log.Warn("script rejected by schema", "attempt", attempt, "violations", len(violations))
			continue
		}

		var script model.DialogueScript
		if err := json.Unmarshal(raw, &script); err != nil {
			feedback = []string{fmt.Sprintf("response was not valid JSON: %v", err)}
			continue
		}

		if err := validate.Script(&script, outline); err != nil {
			var malformed *validate.MalformedScriptError
			if errors.As(err, &malformed) {
				feedback = malformed.Violations
				g.log.Warn("script rejected", "attempt", attempt, "violations", len(malformed.Violations))
				continue
			}
			return nil, err
		}

		return &script, nil
	}

	return nil, &validate.MalformedScriptError{
		Violations: append([]string{fmt.Sprintf("still invalid after %d attempts", maxAttempts)}, feedback...),
	}
}

// GenerateEpisode runs the whole pipeline for one topic: fetch sources,
// outline, compress each section, write the dialogue, then extract the
// navigation artifacts. Source failures degrade confidence; they never
// abort the episode.
func (g *Generator) GenerateEpisode(ctx context.Context, topic string, sourceURLs []string) (*model.Episode, error) {
	level := g.cfg.Pipeline.Level
	var warnings []string

	var docs []model.SourceDocument
	if len(sourceURLs) > 0 && g.fetcher != nil {
		var fetchWarnings []string
		docs, fetchWarnings = g.fetcher.FetchAll(ctx, sourceURLs)
		warnings = append(warnings, fetchWarnings...)
	}

	outline, err := g.GenerateOutline(ctx, topic, level, "")
	if err != nil {
		return nil, err
	}

	atoms, atomWarnings, err := g.CompressAll(ctx, outline, docs, level)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, atomWarnings...)

	script, err := g.GenerateDialogue(ctx, outline, atoms)
	if err != nil {
		return nil, err
	}

	concepts := extract.Concepts(script.Script)
	pauses := extract.PauseMoments(script.Script)
	chapters := extract.Chapters(outline, script.Script, concepts)

	return &model.Episode{
		ID:           "ep_" + uuid.NewString(),
		Topic:        topic,
		Level:        level,
		CreatedAt:    time.Now().UTC(),
		Outline:      *outline,
		Atoms:        atoms,
		Script:       *script,
		Concepts:     concepts,
		PauseMoments: pauses,
		Chapters:     chapters,
		Warnings:     warnings,
	}, nil
}

func (g *Generator) attempts() int {
	if g.cfg.Pipeline.MaxAttempts > 0 {
		return g.cfg.Pipeline.MaxAttempts
	}
	return 3
}
