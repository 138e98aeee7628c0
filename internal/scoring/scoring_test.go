package scoring

import "testing"

func TestScoreRoundIncorrectZeroesBreakdown(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	// Build a combo first, then miss.
	for i := 0; i < 6; i++ {
		tr.ScoreRound(RoundInput{Correct: true, ResponseMs: 500, TimeLimitMs: 3000, RecentAccuracy: 1})
	}
	if tr.Combo() != 6 {
		t.Fatalf("combo after 6 correct = %d, want 6", tr.Combo())
	}

	b := tr.ScoreRound(RoundInput{Correct: false, ResponseMs: 100, TimeLimitMs: 3000, RecentAccuracy: 1})
	if b != (Breakdown{}) {
		t.Fatalf("incorrect round must yield zero breakdown, got %+v", b)
	}
	if tr.Combo() != 0 {
		t.Fatalf("combo after miss = %d, want 0", tr.Combo())
	}
}

func TestScoreRoundComponents(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	b := tr.ScoreRound(RoundInput{
		Correct:        true,
		ResponseMs:     1000,
		TimeLimitMs:    4000,
		Streak:         3,
		RecentAccuracy: 0.8,
		Complexity:     0.5,
	})

	if b.Base != 100 {
		t.Errorf("base = %d, want 100", b.Base)
	}
	// Streak multiplier 1 + 3*0.10 = 1.3, 30 extra points.
	if b.Streak != 30 {
		t.Errorf("streak = %d, want 30", b.Streak)
	}
	// Unused-time ratio 0.75, quadratic: 50 * 0.5625 = 28.
	if b.Speed != 28 {
		t.Errorf("speed = %d, want 28", b.Speed)
	}
	if b.Accuracy != 24 {
		t.Errorf("accuracy = %d, want 24", b.Accuracy)
	}
	// Difficulty multiplier lerps to 1.5 at complexity 0.5.
	if b.Difficulty != 50 {
		t.Errorf("difficulty = %d, want 50", b.Difficulty)
	}
	if b.Combo != 0 {
		t.Errorf("combo bonus before threshold = %d, want 0", b.Combo)
	}
	if b.Perfect != 0 {
		t.Errorf("perfect bonus at accuracy 0.8 = %d, want 0", b.Perfect)
	}
	if want := 100 + 30 + 28 + 24 + 50; b.Total != want {
		t.Errorf("total = %d, want %d", b.Total, want)
	}
}

func TestScoreRoundStreakCap(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	b := tr.ScoreRound(RoundInput{Correct: true, TimeLimitMs: 3000, ResponseMs: 3000, Streak: 50})
	// Cap at 2.0x: at most base again as streak points.
	if b.Streak != 100 {
		t.Fatalf("capped streak bonus = %d, want 100", b.Streak)
	}
}

func TestScoreRoundComboBonus(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	in := RoundInput{Correct: true, ResponseMs: 2900, TimeLimitMs: 3000}

	var bonuses []int
	for i := 0; i < 7; i++ {
		bonuses = append(bonuses, tr.ScoreRound(in).Combo)
	}
	want := []int{0, 0, 0, 0, 10, 20, 30}
	for i := range want {
		if bonuses[i] != want[i] {
			t.Fatalf("combo bonus at round %d = %d, want %d", i+1, bonuses[i], want[i])
		}
	}
}

func TestScoreRoundPerfectBonus(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	b := tr.ScoreRound(RoundInput{Correct: true, ResponseMs: 1000, TimeLimitMs: 3000, RecentAccuracy: 1})
	if b.Perfect != 25 {
		t.Errorf("perfect bonus = %d, want 25", b.Perfect)
	}
	// Too slow: over half the limit.
	b = tr.ScoreRound(RoundInput{Correct: true, ResponseMs: 2000, TimeLimitMs: 3000, RecentAccuracy: 1})
	if b.Perfect != 0 {
		t.Errorf("perfect bonus at slow answer = %d, want 0", b.Perfect)
	}
}

func TestTrackerAggregates(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	if tr.Average() != 0 {
		t.Fatalf("average with no rounds = %f, want 0", tr.Average())
	}
	tr.ScoreRound(RoundInput{Correct: true, ResponseMs: 3000, TimeLimitMs: 3000})
	tr.ScoreRound(RoundInput{Correct: false})
	if tr.Rounds() != 2 {
		t.Fatalf("rounds = %d, want 2", tr.Rounds())
	}
	if got := tr.Average(); got != 50 {
		t.Fatalf("average = %f, want 50", got)
	}
}

func TestGrade(t *testing.T) {
	cases := []struct {
		average float64
		want    string
	}{
		{200, "A"}, {180, "A"}, {179.9, "B"}, {140, "B"},
		{139, "C"}, {100, "C"}, {99, "D"}, {60, "D"}, {59, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := Grade(tc.average); got != tc.want {
			t.Errorf("Grade(%f) = %q, want %q", tc.average, got, tc.want)
		}
	}
}

func TestStars(t *testing.T) {
	cases := []struct {
		average float64
		want    int
	}{
		{200, 3}, {199, 2}, {132, 2}, {131, 1}, {66, 1}, {65, 0},
	}
	for _, tc := range cases {
		if got := Stars(tc.average, 200); got != tc.want {
			t.Errorf("Stars(%f, 200) = %d, want %d", tc.average, got, tc.want)
		}
	}
	if got := Stars(100, 0); got != 0 {
		t.Errorf("Stars with zero target = %d, want 0", got)
	}
}
