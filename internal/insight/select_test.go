package insight

import (
	"testing"
	"time"

	"github.com/sayanm085/puzzle-mind/internal/mind"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func strongContext() Context {
	m := mind.DefaultModel("p1")
	m.BestStreak = 50
	m.TotalSessions = 12
	m.EvolutionStage = 2
	return Context{
		Model: m,
		Session: SessionStats{
			Accuracy:     0.95,
			BestStreak:   12,
			RoundsPlayed: 20,
		},
	}
}

func TestSelectRanksByPriority(t *testing.T) {
	got, _ := Select(Rules(), strongContext(), nil, testNow, 3)

	if len(got) != 3 {
		t.Fatalf("selected %d insights, want 3", len(got))
	}
	// best_streak 50 satisfies both streak milestones; priority must order
	// the 50 milestone first, then the 20 milestone, then stage_up.
	want := []string{"mile_streak_50", "mile_streak_20", "stage_up"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("rank %d = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestSelectOnceEverCooldown(t *testing.T) {
	ctx := strongContext()

	first, shown := Select(Rules(), ctx, nil, testNow, 10)
	if !containsID(first, "mile_streak_50") {
		t.Fatal("milestone not selected on first pass")
	}

	// Years later, a lifetime milestone must still stay silent.
	later := testNow.AddDate(3, 0, 0)
	second, _ := Select(Rules(), ctx, shown, later, 10)
	if containsID(second, "mile_streak_50") {
		t.Fatal("once-ever milestone fired twice")
	}
	if containsID(second, "mile_streak_20") {
		t.Fatal("once-ever milestone fired twice")
	}
}

func TestSelectTimedCooldown(t *testing.T) {
	ctx := strongContext()

	_, shown := Select(Rules(), ctx, nil, testNow, 10)

	// stage_up carries a 24h cooldown: silent at +12h, eligible at +24h.
	mid, _ := Select(Rules(), ctx, shown, testNow.Add(12*time.Hour), 10)
	if containsID(mid, "stage_up") {
		t.Fatal("stage_up fired inside its cooldown")
	}
	after, _ := Select(Rules(), ctx, shown, testNow.Add(24*time.Hour), 10)
	if !containsID(after, "stage_up") {
		t.Fatal("stage_up stayed silent after its cooldown elapsed")
	}
}

func TestSelectDoesNotMutateInputLog(t *testing.T) {
	ctx := strongContext()
	shown := ShownLog{"veteran": testNow.Add(-time.Hour)}

	_, updated := Select(Rules(), ctx, shown, testNow, 10)

	if len(shown) != 1 {
		t.Fatalf("input log mutated: %v", shown)
	}
	if len(updated) <= 1 {
		t.Fatalf("updated log missing new entries: %v", updated)
	}
	if got := updated["mile_streak_50"]; !got.Equal(testNow) {
		t.Fatalf("updated log timestamp = %v, want %v", got, testNow)
	}
}

func TestSelectMaxZeroAndNegative(t *testing.T) {
	ctx := strongContext()

	got, _ := Select(Rules(), ctx, nil, testNow, 0)
	if len(got) != 0 {
		t.Fatalf("max 0 returned %d insights", len(got))
	}
	// Negative max means unbounded.
	got, _ = Select(Rules(), ctx, nil, testNow, -1)
	if len(got) < 3 {
		t.Fatalf("unbounded select returned only %d insights", len(got))
	}
}

func TestRuleMatchesUnknownMetric(t *testing.T) {
	r := Rule{ID: "ghost", Conditions: []Condition{{Metric: "aura_level", Op: OpGT, Value: 1}}}
	if r.Matches(strongContext()) {
		t.Fatal("rule with unknown metric must not match")
	}
}

func TestConditionOps(t *testing.T) {
	cases := []struct {
		cond Condition
		v    float64
		want bool
	}{
		{Condition{Op: OpGT, Value: 5}, 6, true},
		{Condition{Op: OpGT, Value: 5}, 5, false},
		{Condition{Op: OpGTE, Value: 5}, 5, true},
		{Condition{Op: OpLT, Value: 5}, 4, true},
		{Condition{Op: OpLTE, Value: 5}, 5, true},
		{Condition{Op: OpEQ, Value: 5}, 5, true},
		{Condition{Op: OpBetween, Value: 2, Value2: 4}, 3, true},
		{Condition{Op: OpBetween, Value: 2, Value2: 4}, 4, true},
		{Condition{Op: OpBetween, Value: 2, Value2: 4}, 5, false},
		{Condition{Op: Op("weird"), Value: 5}, 5, false},
	}
	for _, tc := range cases {
		if got := tc.cond.holds(tc.v); got != tc.want {
			t.Errorf("%s %f vs %f: got %v, want %v", tc.cond.Op, tc.v, tc.cond.Value, got, tc.want)
		}
	}
}

func TestContextSkillMetrics(t *testing.T) {
	ctx := strongContext()
	ctx.Model.Cognitive.Logic = 33

	if v, ok := ctx.Metric("skill_logic"); !ok || v != 33 {
		t.Fatalf("skill_logic = %f/%v, want 33/true", v, ok)
	}
	if _, ok := ctx.Metric("skill_luck"); ok {
		t.Fatal("unknown skill metric should report false")
	}
	if v, ok := ctx.Metric("reaction_trend"); !ok || v != 0 {
		t.Fatalf("stable reaction trend = %f/%v, want 0/true", v, ok)
	}
	ctx.Model.Reaction.Trend = mind.TrendImproving
	if v, _ := ctx.Metric("reaction_trend"); v != 1 {
		t.Fatalf("improving reaction trend = %f, want 1", v)
	}
}

func TestBetweenRuleFromTable(t *testing.T) {
	ctx := Context{
		Model:   mind.DefaultModel("p1"),
		Session: SessionStats{Accuracy: 0.70, RoundsPlayed: 10},
	}
	got, _ := Select(Rules(), ctx, nil, testNow, 10)
	if !containsID(got, "midrange_accuracy") {
		t.Fatal("midrange accuracy rule should fire at 0.70")
	}
}

func containsID(rules []Rule, id string) bool {
	for _, r := range rules {
		if r.ID == id {
			return true
		}
	}
	return false
}
