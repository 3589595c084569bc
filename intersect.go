package cluegen

import "crosswarped.com/cluegen/pkg/corpus"

// Intersection search caps. The start-offset window and the result cap
// bound per-attempt work; an exhaustive perpendicular scan is never run.
const (
	maxIntersections   = 20
	intersectionLimit  = 10
	startOffsetWindow  = 2
	maxCandidateLength = 5
)

// placement is a candidate word at a concrete grid position.
type placement struct {
	corpus.Answer
	Row int
	Col int
	Dir Direction
}

// intersections proposes perpendicular placements crossing the given
// placed word. For each letter of the source word it walks a small window
// of start offsets along the perpendicular axis, derives the pattern the
// crossing word must satisfy (all wildcards except the shared letter), and
// asks the corpus for quality-biased matches; candidates surviving a cheap
// geometry pre-check are kept. Results are capped at maxIntersections and
// unordered beyond corpus rank, so callers shuffle before consuming.
func (gen *Generator) intersections(g *Grid, w Word) []placement {
	used := g.UsedAnswers()
	maxLen := min(g.Width(), g.Height())
	var found []placement

	for i := 0; i < len(w.Text); i++ {
		if len(found) >= maxIntersections {
			break
		}
		letter := w.Text[i]

		// fixed is the coordinate shared with the source word along the
		// crossing axis; cross is where the source letter sits.
		var fixed, cross, crossExtent int
		var dir Direction
		if w.Dir == Across {
			fixed, cross, crossExtent, dir = w.Col+i, w.Row, g.Height(), Down
		} else {
			fixed, cross, crossExtent, dir = w.Row+i, w.Col, g.Width(), Across
		}

		for start := max(0, cross-startOffsetWindow); start <= cross && start < crossExtent-2; start++ {
			if len(found) >= maxIntersections {
				break
			}
			end := min(start+maxCandidateLength-1, crossExtent-1)
			length := end - start + 1
			if length < 3 || length > maxLen {
				continue
			}
			at := cross - start
			if at < 0 || at >= length {
				continue
			}

			pattern := corpus.FixedLetter(length, at, letter)
			candidates := gen.corpus.BestQuality(length, pattern, used, intersectionLimit, corpus.QualityArchive)
			for _, cand := range candidates {
				if len(found) >= maxIntersections {
					break
				}
				row, col := start, fixed
				if dir == Across {
					row, col = fixed, start
				}
				if !g.CanPlace(cand.Answer, row, col, dir) {
					continue
				}
				found = append(found, placement{Answer: cand, Row: row, Col: col, Dir: dir})
			}
		}
	}

	return found
}
