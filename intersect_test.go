package cluegen

import (
	"math/rand/v2"
	"testing"

	"crosswarped.com/cluegen/pkg/corpus"
)

func TestIntersectionsProposeCrossings(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
		corpus.Answer{Clue: "Soda", Answer: "COLA", Quality: 1},
		corpus.Answer{Clue: "Bean curd", Answer: "TOFU", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	g := NewGrid(5, 5)
	g.Place("CAT", 1, 1, Across, "Feline", 1)

	found := gen.intersections(g, g.Words()[0])
	if len(found) == 0 {
		t.Fatal("intersections() found nothing")
	}
	if len(found) > maxIntersections {
		t.Fatalf("intersections() returned %d placements, cap is %d", len(found), maxIntersections)
	}

	for _, p := range found {
		if p.Dir != Down {
			t.Errorf("placement %q crosses an across word but runs %v", p.Answer.Answer, p.Dir)
		}
		if p.Answer.Answer == "CAT" {
			t.Error("intersections() proposed an already used answer")
		}
		if !g.CanPlace(p.Answer.Answer, p.Row, p.Col, p.Dir) {
			t.Errorf("placement %q at (%d,%d) %v fails CanPlace", p.Answer.Answer, p.Row, p.Col, p.Dir)
		}
	}
}

func TestIntersectionsEmptyWithoutMatches(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
		corpus.Answer{Clue: "Grain", Answer: "RYE", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	g := NewGrid(5, 5)
	g.Place("CAT", 1, 1, Across, "Feline", 1)

	// RYE shares no letter with CAT, so no pattern can match it.
	if found := gen.intersections(g, g.Words()[0]); len(found) != 0 {
		t.Errorf("intersections() = %v, want none", found)
	}
}

func TestIntersectionsRespectGeometry(t *testing.T) {
	ix := mustIndex(t, 5,
		corpus.Answer{Clue: "Feline", Answer: "CAT", Quality: 1},
		corpus.Answer{Clue: "Soda", Answer: "COLA", Quality: 1},
		corpus.Answer{Clue: "Baby bed", Answer: "COT", Quality: 1},
	)
	gen := NewGenerator(5, 5, ix, rand.New(rand.NewPCG(42, 1024)))

	g := NewGrid(5, 5)
	g.Place("CAT", 1, 1, Across, "Feline", 1)

	for _, p := range gen.intersections(g, g.Words()[0]) {
		if p.Row < 0 || p.Col < 0 {
			t.Fatalf("placement %q starts out of bounds at (%d,%d)", p.Answer.Answer, p.Row, p.Col)
		}
		if p.Row+len(p.Answer.Answer) > g.Height() {
			t.Errorf("placement %q at (%d,%d) overruns the grid", p.Answer.Answer, p.Row, p.Col)
		}
		// The crossing cell must already hold the shared letter.
		overlaps := false
		for i := 0; i < len(p.Answer.Answer); i++ {
			if c := g.Cell(p.Row+i, p.Col); c != 0 {
				overlaps = true
				if c != p.Answer.Answer[i] {
					t.Errorf("placement %q contradicts cell (%d,%d)", p.Answer.Answer, p.Row+i, p.Col)
				}
			}
		}
		if !overlaps {
			t.Errorf("placement %q at (%d,%d) never touches the source word", p.Answer.Answer, p.Row, p.Col)
		}
	}
}
