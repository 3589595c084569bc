package render

import (
	"strings"
	"testing"

	"crosswarped.com/cluegen"
	"crosswarped.com/cluegen/pkg/corpus"
)

func buildIndex(t *testing.T, records ...corpus.Answer) *corpus.Index {
	t.Helper()
	ix, err := corpus.NewIndex(records, 5)
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	return ix
}

func TestRows(t *testing.T) {
	g := cluegen.NewGrid(4, 3)
	g.Place("CAT", 1, 0, cluegen.Across, "Feline", 1)

	got := Rows(g)
	want := []string{"....", "CAT.", "...."}
	if len(got) != len(want) {
		t.Fatalf("Rows() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPuzzleListsClues(t *testing.T) {
	ix := buildIndex(t,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
		corpus.Answer{Clue: "Soda", Answer: "COLA", Quality: 1},
	)

	g := cluegen.NewGrid(5, 5)
	g.Place("CAT", 1, 1, cluegen.Across, "Feline", 1)
	g.Place("COLA", 1, 1, cluegen.Down, "Soda", 1)

	out := Puzzle(g, ix)

	for _, want := range []string{
		"Grid:",
		"Across:",
		"  CAT: Feline (quality: 1)",
		"Down:",
		"  COLA: Soda (quality: 1)",
		"No unintended letter sequences found.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Puzzle() output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "█") {
		t.Error("Puzzle() output has no empty-cell markers")
	}
}

func TestPuzzleFlagsUnintendedSequences(t *testing.T) {
	ix := buildIndex(t,
		corpus.Answer{Clue: "Taxi", Answer: "CAB", Quality: 1},
		corpus.Answer{Clue: "Dined", Answer: "ATE", Quality: 1},
		corpus.Answer{Clue: "Pull", Answer: "TOW", Quality: 1},
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 2},
	)

	// Stacked rows produce down runs CAT (real), ATO and BEW (gibberish).
	g := cluegen.NewGrid(4, 4)
	g.Place("CAB", 0, 0, cluegen.Across, "Taxi", 1)
	g.Place("ATE", 1, 0, cluegen.Across, "Dined", 1)
	g.Place("TOW", 2, 0, cluegen.Across, "Pull", 1)

	out := Puzzle(g, ix)

	if !strings.Contains(out, "Unintended letter sequences:") {
		t.Fatalf("Puzzle() output missing diagnostics section:\n%s", out)
	}
	if !strings.Contains(out, "✓ CAT at (0,0) down") {
		t.Errorf("CAT not marked valid:\n%s", out)
	}
	if !strings.Contains(out, "✗ ATO at (0,1) down") || !strings.Contains(out, "✗ BEW at (0,2) down") {
		t.Errorf("gibberish runs not flagged:\n%s", out)
	}
}
