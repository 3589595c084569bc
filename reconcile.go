package cluegen

import (
	"strings"

	"crosswarped.com/cluegen/pkg/corpus"
)

// Reconcile returns the grid's final word list: incidental sequences of
// length >= 3 that are valid corpus answers are promoted with their best
// clue and quality, and any word whose text is a strict substring of a
// crossing word's text, with its origin inside the longer word's span, is
// dropped as subsumed by the longer run. The reconciled list, not the raw
// placed list, is the basis for word counts and quality scoring.
//
// Reconcile derives everything from current grid state and mutates
// nothing, so repeated calls yield the same list.
func (g *Grid) Reconcile(ix *corpus.Index) []Word {
	eligible := ix.Eligible()
	placed := g.placedSet()

	final := make([]Word, len(g.words))
	copy(final, g.words)

	for _, seq := range g.Sequences() {
		if len(seq.Text) < 3 || placed[seq] {
			continue
		}
		if !eligible[seq.Text] {
			continue
		}
		clue, ok := ix.ClueFor(seq.Text)
		if !ok {
			clue = "Unknown word: " + seq.Text
		}
		final = append(final, Word{
			Text:    seq.Text,
			Row:     seq.Row,
			Col:     seq.Col,
			Dir:     seq.Dir,
			Clue:    clue,
			Quality: ix.QualityFor(seq.Text),
		})
	}

	kept := final[:0:0]
	for _, w := range final {
		subsumed := false
		for _, longer := range final {
			if len(w.Text) < len(longer.Text) && strings.Contains(longer.Text, w.Text) && subsumes(longer, w) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, w)
		}
	}
	return kept
}

// subsumes reports whether the shorter word's origin lies within the
// longer word's span on the shared axis. Words in the same direction never
// subsume each other.
func subsumes(longer, shorter Word) bool {
	if longer.Dir == shorter.Dir {
		return false
	}
	if longer.Dir == Across {
		return longer.Row == shorter.Row &&
			shorter.Col >= longer.Col &&
			shorter.Col < longer.Col+len(longer.Text)
	}
	return longer.Col == shorter.Col &&
		shorter.Row >= longer.Row &&
		shorter.Row < longer.Row+len(longer.Text)
}

// QualityScore is the arithmetic mean quality over the reconciled word
// list; 1.0 means every word carries a top-tier clue. An empty grid scores
// zero.
func (g *Grid) QualityScore(ix *corpus.Index) float64 {
	words := g.Reconcile(ix)
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += w.Quality
	}
	return float64(total) / float64(len(words))
}
