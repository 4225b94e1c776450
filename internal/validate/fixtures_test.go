package validate

import (
	"fmt"
	"strings"

	"github.com/podcastify/podcastify/internal/extract"
	"github.com/podcastify/podcastify/internal/model"
)

const (
	fixtureQuestion = "Why is the sky blue and not purple?"
	fixtureInsight  = "Air molecules scatter blue light much more than red light."
)

// validOutline returns an outline that passes every outline check
func validOutline() *model.Outline {
	return &model.Outline{
		Title:            "Why the Sky Is Blue",
		SocraticQuestion: fixtureQuestion,
		KeyInsight:       fixtureInsight,
		Description:      "How scattering paints the daytime sky.",
		Sections: []model.OutlineSection{
			{
				ID:                   "section_1",
				Title:                "Socratic Hook",
				Description:          "Open the curiosity gap",
				LearningOutcomes:     []string{"Question the obvious answer about sky color"},
				EstimatedDurationSec: 40,
			},
			{
				ID:                   "section_2",
				Title:                "Core Concept",
				Description:          "Scattering and wavelength",
				LearningOutcomes:     []string{"Connect wavelength to scattering strength"},
				IsSocraticCheckpoint: true,
				EstimatedDurationSec: 60,
			},
			{
				ID:                   "section_3",
				Title:                "Key Insight",
				Description:          "Restate the shift",
				LearningOutcomes:     []string{"Explain sunsets with the same mechanism"},
				EstimatedDurationSec: 40,
			},
		},
		EstimatedWordCount: 450,
	}
}

// padTo appends filler words until the spoken word count reaches target.
// Filler is appended after markers so leading-pause checks stay intact.
func padTo(base string, target int) string {
	filler := []string{"okay", "so", "the", "light", "just", "keeps", "moving", "along"}
	i := 0
	for extract.WordCount(base) < target {
		base += " " + filler[i%len(filler)]
		i++
	}
	if extract.WordCount(base) != target {
		panic(fmt.Sprintf("fixture text %q overshot %d words", base, target))
	}
	return base
}

// validScript returns an 18-turn script that passes every script check
// against validOutline: 5 hook, 9 core, 4 key-insight turns, alternating
// speakers, two pauses, eight concept tags, 450 spoken words at a 60:40
// Brainy:Snarky split.
func validScript() *model.DialogueScript {
	type spec struct {
		speaker model.Speaker
		phase   model.Phase
		section string
		notes   string
		words   int
		base    string
	}

	specs := []spec{
		{model.SpeakerBrainy, model.PhaseHook, "section_1", model.PatternQuestionSequence, 30, fixtureQuestion},
		{model.SpeakerSnarky, model.PhaseHook, "section_1", model.PatternQuestionSequence, 20, "Uh, because it just is? Is this a trick question?"},
		{model.SpeakerBrainy, model.PhaseHook, "section_1", model.PatternQuestionSequence, 30, `[PAUSE: "What color would you guess?"] Most people guess wrong here.`},
		{model.SpeakerSnarky, model.PhaseHook, "section_1", model.PatternMisconceptionSurfacing, 20, "I was told the sky reflects the ocean."},
		{model.SpeakerBrainy, model.PhaseHook, "section_1", model.PatternMisconceptionSurfacing, 30, "That one is backwards, the ocean borrows its color from the sky."},
		{model.SpeakerSnarky, model.PhaseCoreConcept, "section_2", model.PatternQuestionSequence, 20, "Fine. So what actually happens to the sunlight up there?"},
		{model.SpeakerBrainy, model.PhaseCoreConcept, "section_2", model.PatternAnalogyBuilding, 30, `[PAUSE: "What happens to waves hitting small obstacles?"] Think of [CONCEPT: Rayleigh Scattering] as tiny pinballs.`},
		{model.SpeakerSnarky, model.PhaseCoreConcept, "section_2", model.PatternExampleDemand, 20, "Pinballs. Sure. Give me an actual example please."},
		{model.SpeakerBrainy, model.PhaseCoreConcept, "section_2", model.PatternAnalogyBuilding, 30, "Sunlight carries every [CONCEPT: Wavelength] at once, and [CONCEPT: Air Molecules] bounce the short ones around."},
		{model.SpeakerSnarky, model.PhaseCoreConcept, "section_2", model.PatternMisconceptionSurfacing, 20, "Wait, shorter waves bounce more? That feels made up."},
		{model.SpeakerBrainy, model.PhaseCoreConcept, "section_2", model.PatternAnalogyBuilding, 30, "Shorter waves like [CONCEPT: Blue Light] scatter far more than [CONCEPT: Red Light] does."},
		{model.SpeakerSnarky, model.PhaseCoreConcept, "section_2", model.PatternQuestionSequence, 20, "So violet is shortest, why is the sky not violet?"},
		{model.SpeakerBrainy, model.PhaseCoreConcept, "section_2", model.PatternMisconceptionSurfacing, 30, "Our [CONCEPT: Eye Sensitivity] peaks near blue, and the sun emits less violet to begin with."},
		{model.SpeakerSnarky, model.PhaseCoreConcept, "section_2", model.PatternRecapCheckpoint, 20, "Okay, so blue wins by scattering and by our eyes."},
		{model.SpeakerBrainy, model.PhaseKeyInsight, "section_3", model.PatternRecapCheckpoint, 30, "Exactly, and here it is plainly."},
		{model.SpeakerSnarky, model.PhaseKeyInsight, "section_3", model.PatternExampleDemand, 20, "Then explain a red sunset with the same trick."},
		{model.SpeakerBrainy, model.PhaseKeyInsight, "section_3", model.PatternRecapCheckpoint, 30, fixtureInsight + " At [CONCEPT: Sunset] the path is longer, so the blue is scattered away."},
		{model.SpeakerSnarky, model.PhaseKeyInsight, "section_3", model.PatternRecapCheckpoint, 20, "Huh. [CONCEPT: Scattering Geometry] explains both. Mind = blown."},
	}

	turns := make([]model.Turn, len(specs))
	for i, s := range specs {
		turns[i] = model.Turn{
			Speaker:   s.speaker,
			Text:      padTo(s.base, s.words),
			SectionID: s.section,
			Phase:     s.phase,
			Notes:     s.notes,
		}
	}

	return &model.DialogueScript{
		Script: turns,
		Metadata: model.ScriptMetadata{
			EstimatedWordCount:   450,
			EstimatedDurationMin: 3.0,
			BrainyPercentage:     60,
			SnarkyPercentage:     40,
		},
	}
}

// scriptViolations runs the validator and returns the violation list
func scriptViolations(s *model.DialogueScript, o *model.Outline) []string {
	err := Script(s, o)
	if err == nil {
		return nil
	}
	return err.(*MalformedScriptError).Violations
}

func hasViolation(violations []string, substr string) bool {
	for _, v := range violations {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}
