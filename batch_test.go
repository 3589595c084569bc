package cluegen

import (
	"context"
	"math/rand/v2"
	"testing"

	"crosswarped.com/cluegen/pkg/corpus"
)

func TestGenerateBatchBarrenCorpus(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 2},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	results, stats := gen.GenerateBatch(context.Background(), 3, 10)
	if len(results) != 0 {
		t.Errorf("got %d results from a corpus with no seeds", len(results))
	}
	if stats.Attempts != 10 {
		t.Errorf("Attempts = %d, want the full budget of 10", stats.Attempts)
	}
	if stats.Perfect != 0 || stats.Imperfect != 0 || stats.Fallback != 0 {
		t.Errorf("stats counted tiers for gridless attempts: %+v", stats)
	}
}

func TestGenerateBatchSmallCorpusFallsBack(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
		corpus.Answer{Clue: "Soda", Answer: "COLA", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	results, stats := gen.GenerateBatch(context.Background(), 2, 30)
	if len(results) == 0 {
		t.Fatal("GenerateBatch() returned nothing")
	}
	if len(results) > 2 {
		t.Fatalf("GenerateBatch() returned %d results, requested 2", len(results))
	}
	if stats.Perfect != 0 {
		t.Errorf("Perfect = %d, this corpus cannot fill a 5x5", stats.Perfect)
	}
	for i, br := range results {
		if br.Tier != TierFallback {
			t.Errorf("results[%d].Tier = %v, want fallback", i, br.Tier)
		}
		if br.Grid == nil {
			t.Errorf("results[%d] carries no grid", i)
		}
		if i > 0 && results[i-1].Penalty > br.Penalty {
			t.Errorf("fallbacks out of order: penalty %v before %v", results[i-1].Penalty, br.Penalty)
		}
	}
}

func TestGenerateBatchTierOrdering(t *testing.T) {
	records := []corpus.Answer{
		{Clue: "Feline", Answer: "CAT", Quality: 1},
		{Clue: "Soda", Answer: "COLA", Quality: 1},
		{Clue: "Bean curd", Answer: "TOFU", Quality: 1},
		{Clue: "Dined", Answer: "ATE", Quality: 1},
		{Clue: "Pull", Answer: "TOW", Quality: 1},
		{Clue: "Baby bed", Answer: "COT", Quality: 1},
		{Clue: "Sphere", Answer: "ORB", Quality: 1},
		{Clue: "Lease", Answer: "RENT", Quality: 1},
		{Clue: "Track", Answer: "RAIL", Quality: 1},
		{Clue: "Epoch", Answer: "ERA", Quality: 2},
		{Clue: "Mineral", Answer: "ORE", Quality: 2},
	}
	ix := mustIndex(t, 5, records...)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	results, _ := gen.GenerateBatch(context.Background(), 4, 200)
	for i := 1; i < len(results); i++ {
		if results[i-1].Tier > results[i].Tier {
			t.Errorf("tier order violated at %d: %v before %v", i, results[i-1].Tier, results[i].Tier)
		}
	}
}

func TestGenerateBatchHonorsContext(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, stats := gen.GenerateBatch(ctx, 3, 1000)
	if len(results) != 0 || stats.Attempts != 0 {
		t.Errorf("cancelled batch ran anyway: %d results, %d attempts", len(results), stats.Attempts)
	}
}

func TestClassifyTiers(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	cases := []struct {
		name string
		r    *Result
		want Tier
	}{
		{"valid all archive", &Result{Valid: true, Score: 1.0}, TierPerfect},
		{"valid mixed quality", &Result{Valid: true, Score: 1.5}, TierImperfect},
		{"failed acceptance", &Result{Valid: false, Score: 1.0}, TierFallback},
	}
	for _, tc := range cases {
		if got := gen.classify(tc.r).Tier; got != tc.want {
			t.Errorf("%s: tier = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyGridWithInvalidRun(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Taxi", Answer: "CAB", Quality: 1},
		corpus.Answer{Clue: "Dined", Answer: "ATE", Quality: 1},
		corpus.Answer{Clue: "Pull", Answer: "TOW", Quality: 1},
		corpus.Answer{Clue: "Put down", Answer: "SET", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	// Stacked rows form the four-letter column run CATS, which is not a
	// corpus answer.
	g := NewGrid(5, 5)
	g.Place("CAB", 0, 0, Across, "Taxi", 1)
	g.Place("ATE", 1, 0, Across, "Dined", 1)
	g.Place("TOW", 2, 0, Across, "Pull", 1)
	g.Place("SET", 3, 0, Across, "Put down", 1)

	r := gen.finish(g, nil)
	if r.InvalidSeqs == 0 {
		t.Fatal("InvalidSeqs = 0, the CATS column should count")
	}

	br := gen.classify(r)
	if br.Tier != TierFallback {
		t.Errorf("Tier = %v, want fallback", br.Tier)
	}
	if br.Penalty < penaltyInvalidSeq {
		t.Errorf("Penalty = %v, want at least one invalid-sequence weight", br.Penalty)
	}
}

func TestPenaltyWeighsStructuralDefectsHighest(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	clean := &Result{Score: 1.0, Words: 6}
	if got := gen.penalty(clean); got != 0 {
		t.Errorf("penalty(clean) = %v, want 0", got)
	}

	gibberish := &Result{Score: 1.0, Words: 6, InvalidSeqs: 1}
	sparse := &Result{Score: 1.0, Words: 6, EmptyCells: 10}
	if gen.penalty(gibberish) <= gen.penalty(sparse) {
		t.Errorf("one invalid sequence (%v) should outrank ten empty cells (%v)",
			gen.penalty(gibberish), gen.penalty(sparse))
	}

	degenerate := &Result{Score: 0, Words: 0}
	// Zero words means full shortfall plus the whole quality gap.
	want := penaltyShortfall*6 + penaltyNoQuality*1.0
	if got := gen.penalty(degenerate); got != want {
		t.Errorf("penalty(degenerate) = %v, want %v", got, want)
	}
}

func TestInsertByPenalty(t *testing.T) {
	mk := func(p float64) BatchResult {
		return BatchResult{Result: &Result{}, Tier: TierFallback, Penalty: p}
	}

	var results []BatchResult
	for _, p := range []float64{30, 10, 50, 20, 40} {
		results = insertByPenalty(results, mk(p), 3)
	}
	if len(results) != 3 {
		t.Fatalf("len = %d, want trimmed to 3", len(results))
	}
	want := []float64{10, 20, 30}
	for i, p := range want {
		if results[i].Penalty != p {
			t.Errorf("results[%d].Penalty = %v, want %v", i, results[i].Penalty, p)
		}
	}
}
