package insight

import (
	"strings"
	"testing"

	"github.com/sayanm085/puzzle-mind/internal/mind"
)

func TestBuildReflectionTone(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     Tone
	}{
		{0.95, ToneTriumphant},
		{0.85, ToneTriumphant},
		{0.84, ToneEncouraging},
		{0.60, ToneEncouraging},
		{0.59, ToneSupportive},
		{0, ToneSupportive},
	}
	for _, tc := range cases {
		ctx := Context{Model: mind.DefaultModel("p"), Session: SessionStats{Accuracy: tc.accuracy, RoundsPlayed: 10}}
		r, _ := BuildReflection(ctx, nil, testNow)
		if r.Tone != tc.want {
			t.Errorf("accuracy %f: tone %q, want %q", tc.accuracy, r.Tone, tc.want)
		}
		if r.Headline == "" || r.Subheadline == "" {
			t.Errorf("accuracy %f: empty headline", tc.accuracy)
		}
	}
}

func TestBuildReflectionHighlightPrecedence(t *testing.T) {
	model := mind.DefaultModel("p")
	model.TotalTrials = 321

	// Streak wins over everything.
	ctx := Context{Model: model, Session: SessionStats{Accuracy: 0.9, BestStreak: 7, RoundsPlayed: 10}}
	r, _ := BuildReflection(ctx, nil, testNow)
	if r.Highlighted.Label != "best streak" || r.Highlighted.Value != 7 {
		t.Fatalf("highlight = %+v, want best streak 7", r.Highlighted)
	}

	// No streak: accuracy at or above 0.75.
	ctx.Session.BestStreak = 4
	r, _ = BuildReflection(ctx, nil, testNow)
	if r.Highlighted.Label != "accuracy" {
		t.Fatalf("highlight = %+v, want accuracy", r.Highlighted)
	}

	// Neither: lifetime trials fallback.
	ctx.Session.Accuracy = 0.5
	r, _ = BuildReflection(ctx, nil, testNow)
	if r.Highlighted.Label != "lifetime trials" || r.Highlighted.Value != 321 {
		t.Fatalf("highlight = %+v, want lifetime trials 321", r.Highlighted)
	}
}

func TestBuildReflectionSuggestionTargetsWeakestSkill(t *testing.T) {
	model := mind.DefaultModel("p")
	model.Cognitive.Memory = 20

	ctx := Context{Model: model, Session: SessionStats{Accuracy: 0.7, RoundsPlayed: 10}}
	r, _ := BuildReflection(ctx, nil, testNow)
	if r.Suggestion != skillSuggestions["memory"] {
		t.Fatalf("suggestion = %q, want the memory suggestion", r.Suggestion)
	}
}

func TestBuildReflectionSuggestionTradeoffs(t *testing.T) {
	// Balanced skills: the speed/accuracy nudges take over.
	model := mind.DefaultModel("p")
	model.Behavior.SpeedPreference = 0.2
	ctx := Context{Model: model, Session: SessionStats{Accuracy: 0.9, RoundsPlayed: 10}}
	r, _ := BuildReflection(ctx, nil, testNow)
	if !strings.Contains(r.Suggestion, "pace") {
		t.Fatalf("suggestion = %q, want the pace nudge", r.Suggestion)
	}

	model.Behavior.SpeedPreference = 0.8
	ctx = Context{Model: model, Session: SessionStats{Accuracy: 0.4, RoundsPlayed: 10}}
	r, _ = BuildReflection(ctx, nil, testNow)
	if !strings.Contains(r.Suggestion, "accuracy") {
		t.Fatalf("suggestion = %q, want the slow-down nudge", r.Suggestion)
	}
}

func TestBuildReflectionCapsInsights(t *testing.T) {
	ctx := strongContext()
	r, updated := BuildReflection(ctx, nil, testNow)

	if len(r.Insights) > maxReflectionInsights {
		t.Fatalf("reflection carries %d insights, cap is %d", len(r.Insights), maxReflectionInsights)
	}
	if len(r.Insights) == 0 {
		t.Fatal("strong session produced no insights")
	}
	for _, sel := range r.Insights {
		if _, ok := updated[sel.ID]; !ok {
			t.Errorf("selected insight %s missing from updated log", sel.ID)
		}
	}
}
