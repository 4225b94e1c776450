package validate

import (
	"strings"
	"testing"

	"github.com/podcastify/podcastify/internal/model"
)

func TestScript_Valid(t *testing.T) {
	if err := Script(validScript(), validOutline()); err != nil {
		t.Fatalf("Expected valid script to pass, got %v", err)
	}
}

func TestScript_Empty(t *testing.T) {
	err := Script(&model.DialogueScript{}, validOutline())
	if err == nil {
		t.Fatal("Expected empty script to fail")
	}
}

func TestScript_TurnBudget(t *testing.T) {
	s := validScript()
	o := validOutline()

	// Drop hook turns below the floor: 15 base turns
	s.Script = append(s.Script[:2], s.Script[5:]...)
	if !hasViolation(scriptViolations(s, o), "turn count 15") {
		t.Errorf("Expected turn budget violation, got %v", scriptViolations(s, o))
	}
}

func TestScript_QuickExampleWidensBudget(t *testing.T) {
	s := validScript()
	o := validOutline()

	// Two quick-example turns on top of the 18 base turns stay valid, but
	// the word budget must still hold: shrink two core turns to compensate.
	trim := func(i int, fields int) {
		f := strings.Fields(s.Script[i].Text)
		s.Script[i].Text = strings.Join(f[:fields], " ")
	}
	trim(8, 15)
	trim(13, 10)

	s.Script = append(s.Script,
		model.Turn{
			Speaker: model.SpeakerBrainy, Phase: model.PhaseQuickExample, SectionID: "section_3",
			Notes: model.PatternExampleDemand,
			Text:  padTo("Try it on a laser pointer in fog sometime.", 15),
		},
		model.Turn{
			Speaker: model.SpeakerSnarky, Phase: model.PhaseQuickExample, SectionID: "section_3",
			Notes: model.PatternRecapCheckpoint,
			Text:  padTo("Fine, the fog wins.", 10),
		},
	)

	if err := Script(s, o); err != nil {
		t.Fatalf("Expected quick-example turns to be allowed, got %v", err)
	}

	// A lone quick-example turn is below that phase's floor
	s.Script = s.Script[:len(s.Script)-1]
	if !hasViolation(scriptViolations(s, o), "quick-example phase has 1 turns") {
		t.Error("Expected quick-example floor violation")
	}
}

func TestScript_PhaseRegression(t *testing.T) {
	s := validScript()
	s.Script[10].Phase = model.PhaseHook // Back into hook from core_concept
	s.Script[10].SectionID = "section_1"

	if !hasViolation(scriptViolations(s, validOutline()), "re-enters phase") {
		t.Error("Expected phase regression violation")
	}
}

func TestScript_UnknownPhaseAndNotes(t *testing.T) {
	s := validScript()
	s.Script[3].Phase = "outro"
	s.Script[4].Notes = "freeform-riffing"

	violations := scriptViolations(s, validOutline())
	if !hasViolation(violations, `unknown phase "outro"`) {
		t.Errorf("Expected unknown phase violation, got %v", violations)
	}
	if !hasViolation(violations, "not one of the five interaction patterns") {
		t.Errorf("Expected notes violation, got %v", violations)
	}
}

func TestScript_TurnWordCap(t *testing.T) {
	s := validScript()
	s.Script[8].Text = padTo(s.Script[8].Text, 45)

	if !hasViolation(scriptViolations(s, validOutline()), "cap is 40") {
		t.Error("Expected turn word cap violation")
	}
}

func TestScript_ThreeConsecutiveTurns(t *testing.T) {
	s := validScript()
	// Make turns 8-10 all Brainy without touching phase structure
	s.Script[7].Speaker = model.SpeakerBrainy
	s.Script[9].Speaker = model.SpeakerBrainy

	if !hasViolation(scriptViolations(s, validOutline()), "third consecutive") {
		t.Error("Expected consecutive speaker violation")
	}
}

func TestScript_UnknownSection(t *testing.T) {
	s := validScript()
	s.Script[5].SectionID = "section_9"

	if !hasViolation(scriptViolations(s, validOutline()), `unknown section "section_9"`) {
		t.Error("Expected unknown section violation")
	}
}

func TestScript_PauseRules(t *testing.T) {
	t.Run("too few pauses", func(t *testing.T) {
		s := validScript()
		s.Script[2].Text = padTo("Most people guess wrong here.", 30)
		if !hasViolation(scriptViolations(s, validOutline()), "1 pause markers, expected 2-3") {
			t.Error("Expected pause count violation")
		}
	})

	t.Run("pause not after a question", func(t *testing.T) {
		s := validScript()
		s.Script[1].Text = padTo("Uh, because it just is. No idea.", 20)
		if !hasViolation(scriptViolations(s, validOutline()), "must follow a Snarky question") {
			t.Error("Expected pause placement violation")
		}
	})

	t.Run("pause not leading", func(t *testing.T) {
		s := validScript()
		s.Script[2].Text = padTo(`Most people guess wrong. [PAUSE: "What color would you guess?"]`, 30)
		if !hasViolation(scriptViolations(s, validOutline()), "must open the turn") {
			t.Error("Expected leading pause violation")
		}
	})

	t.Run("pause prompt too long", func(t *testing.T) {
		s := validScript()
		s.Script[2].Text = padTo(`[PAUSE: "What color would you actually guess the sky really is?"] Most people guess wrong.`, 30)
		if !hasViolation(scriptViolations(s, validOutline()), "exceeds 9 words") {
			t.Error("Expected pause prompt length violation")
		}
	})

	t.Run("pause on the wrong speaker", func(t *testing.T) {
		s := validScript()
		s.Script[2].Text = padTo("Most people guess wrong here.", 30)
		s.Script[3].Text = padTo(`[PAUSE: "Reflecting what exactly?"] I was told the sky reflects the ocean.`, 20)
		if !hasViolation(scriptViolations(s, validOutline()), "guiding persona") {
			t.Error("Expected pause speaker violation")
		}
	})
}

func TestScript_ConceptRules(t *testing.T) {
	t.Run("duplicate tag", func(t *testing.T) {
		s := validScript()
		s.Script[10].Text = padTo("Shorter waves like [CONCEPT: Blue Light] scatter far more than [CONCEPT: blue light] does.", 30)
		if !hasViolation(scriptViolations(s, validOutline()), "tagged only at first mention") {
			t.Error("Expected duplicate concept violation")
		}
	})

	t.Run("too few tags", func(t *testing.T) {
		s := validScript()
		s.Script[16].Text = padTo(fixtureInsight+" At sunset the path is longer, so the blue is scattered away.", 30)
		if !hasViolation(scriptViolations(s, validOutline()), "7 concept tags, expected 8-12") {
			t.Error("Expected concept count violation")
		}
	})
}

func TestScript_OpeningMustPoseTheQuestion(t *testing.T) {
	s := validScript()
	s.Script[0].Text = padTo("Welcome back to the show, today we talk about skies.", 30)

	if !hasViolation(scriptViolations(s, validOutline()), "socratic question") {
		t.Error("Expected opening question violation")
	}
}

func TestScript_OpeningMustNotHavePreamble(t *testing.T) {
	s := validScript()
	// The question is present but buried behind a warm-up line
	s.Script[0].Text = "Welcome to the show, friends. " + fixtureQuestion

	if !hasViolation(scriptViolations(s, validOutline()), "socratic question") {
		t.Error("Expected opening preamble violation")
	}
}

func TestScript_OpeningSpeakerAndPhase(t *testing.T) {
	s := validScript()
	s.Script[0].Speaker = model.SpeakerSnarky
	s.Script[1].Speaker = model.SpeakerBrainy

	if !hasViolation(scriptViolations(s, validOutline()), "open with a Brainy turn") {
		t.Error("Expected opening speaker violation")
	}
}

func TestScript_KeyInsightRestated(t *testing.T) {
	s := validScript()
	s.Script[16].Text = padTo("At [CONCEPT: Sunset] the path is longer, details left as an exercise.", 30)

	if !hasViolation(scriptViolations(s, validOutline()), "does not restate") {
		t.Error("Expected key insight violation")
	}
}

func TestScript_WordBudget(t *testing.T) {
	s := validScript()
	// Inflate every Snarky turn: total jumps well past the +10% ceiling
	for i := range s.Script {
		if s.Script[i].Speaker == model.SpeakerSnarky {
			s.Script[i].Text = padTo(s.Script[i].Text, 35)
		}
	}

	if !hasViolation(scriptViolations(s, validOutline()), "total word count") {
		t.Error("Expected word budget violation")
	}
}

func TestScript_SpeakerBalance(t *testing.T) {
	s := validScript()
	// Shrink Brainy turns: share drops below 50% while total stays in budget
	for i := range s.Script {
		switch s.Script[i].Speaker {
		case model.SpeakerBrainy:
			if i != 0 && i != 2 && i != 6 && i != 16 {
				fields := strings.Fields(s.Script[i].Text)
				s.Script[i].Text = strings.Join(fields[:18], " ")
			}
		case model.SpeakerSnarky:
			s.Script[i].Text = padTo(s.Script[i].Text, 28)
		}
	}

	if !hasViolation(scriptViolations(s, validOutline()), "word share") {
		t.Errorf("Expected speaker balance violation, got %v", scriptViolations(s, validOutline()))
	}
}
