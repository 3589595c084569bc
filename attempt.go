package cluegen

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"crosswarped.com/cluegen/pkg/corpus"
)

// Expansion bounds. A single attempt never loops forever: expansion runs a
// fixed number of passes and each pass tries a handful of shuffled
// candidates per placed word.
const (
	expansionPasses      = 20
	candidatesPerWord    = 5
	seedCandidatesPerLen = 20
	minSeedLength        = 3
)

// Failure reasons a Result can carry. Seed failures are distinguishable so
// the batch loop can tell a barren corpus from an unlucky attempt.
const (
	ReasonNoSeed          = "no seed candidates"
	ReasonSeedUnplaceable = "seed unplaceable"
)

// Generator runs randomized construction attempts against a read-only
// corpus index. Randomness is injected so runs replay under a fixed seed.
type Generator struct {
	width  int
	height int
	corpus *corpus.Index
	rand   *rand.Rand
}

// NewGenerator creates a generator for fixed grid dimensions. The index
// must have been built with maxWordLength >= max(width, height).
func NewGenerator(width, height int, ix *corpus.Index, rng *rand.Rand) *Generator {
	return &Generator{width: width, height: height, corpus: ix, rand: rng}
}

// Thresholds scale with grid size.

func (gen *Generator) maxEmptyCells() int { return gen.width * gen.height * 25 / 100 }
func (gen *Generator) minWords() int      { return max(6, (gen.width+gen.height)/2) }
func (gen *Generator) maxWords() int      { return max(6, (gen.width+gen.height)*3/4) }

// Result is the outcome of a single construction attempt. Grid is nil when
// the attempt died at the seed stage. Score is computed over the
// reconciled word list and is meaningful even on failed attempts, where it
// helps rank fallback candidates.
type Result struct {
	Grid        *Grid
	Valid       bool
	Score       float64
	Reasons     []string
	Words       int
	EmptyCells  int
	InvalidSeqs int
	EmptyRuns   int
}

// Attempt runs one randomized build to completion or failure: seed a
// centered top-quality word, expand by crossing placements until growth
// stalls or caps hit, then apply the acceptance test. Placement rejections
// along the way are expected and never surface as errors.
func (gen *Generator) Attempt() *Result {
	g := NewGrid(gen.width, gen.height)
	eligible := gen.corpus.Eligible()

	// Seed: pool quality-1 candidates across lengths near the minor
	// dimension and pick one uniformly.
	var seeds []corpus.Answer
	for length := minSeedLength; length <= min(gen.width, gen.height); length++ {
		seeds = append(seeds, gen.corpus.BestQuality(length, "", nil, seedCandidatesPerLen, corpus.QualityArchive)...)
	}
	if len(seeds) == 0 {
		return &Result{Reasons: []string{ReasonNoSeed}}
	}

	seed := seeds[gen.rand.IntN(len(seeds))]
	dir := Across
	if gen.rand.IntN(2) == 1 {
		dir = Down
	}
	var row, col int
	if dir == Across {
		row = gen.height / 2
		col = max(0, (gen.width-len(seed.Answer))/2)
	} else {
		row = max(0, (gen.height-len(seed.Answer))/2)
		col = gen.width / 2
	}

	if !g.CanPlaceChecked(seed.Answer, row, col, dir, eligible) {
		return &Result{Reasons: []string{ReasonSeedUnplaceable}}
	}
	g.Place(seed.Answer, row, col, dir, seed.Clue, seed.Quality)

	// Expansion. The word list is snapshotted at each pass so placements
	// made mid-pass never shift the iteration.
	wordsAdded := 1
	for pass := 0; pass < expansionPasses && wordsAdded < gen.maxWords(); pass++ {
		added := false
		snapshot := slices.Clone(g.Words())

		for _, existing := range snapshot {
			candidates := gen.intersections(g, existing)
			if len(candidates) == 0 {
				continue
			}
			gen.rand.Shuffle(len(candidates), func(i, j int) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			})
			for _, cand := range candidates[:min(candidatesPerWord, len(candidates))] {
				if g.CanPlaceChecked(cand.Answer.Answer, cand.Row, cand.Col, cand.Dir, eligible) {
					g.Place(cand.Answer.Answer, cand.Row, cand.Col, cand.Dir, cand.Clue, cand.Quality)
					wordsAdded++
					added = true
					break
				}
			}
			if added {
				break
			}
		}

		if !added {
			break
		}
	}

	return gen.finish(g, nil)
}

// finish applies the acceptance test and fills in diagnostics.
func (gen *Generator) finish(g *Grid, reasons []string) *Result {
	r := &Result{
		Grid:        g,
		Reasons:     reasons,
		Score:       g.QualityScore(gen.corpus),
		Words:       len(g.Reconcile(gen.corpus)),
		EmptyCells:  g.EmptyCells(),
		InvalidSeqs: g.InvalidSequences(gen.corpus.Eligible()),
		EmptyRuns:   g.LongEmptyRuns(),
	}

	if r.EmptyCells > gen.maxEmptyCells() {
		r.Reasons = append(r.Reasons, fmt.Sprintf("too many empty cells (%d/%d)", r.EmptyCells, gen.maxEmptyCells()))
	}
	if dupes := len(g.Words()) - len(g.UsedAnswers()); dupes > 0 {
		r.Reasons = append(r.Reasons, fmt.Sprintf("repeated answers (%d duplicates)", dupes))
	}
	if len(g.Words()) < gen.minWords() {
		r.Reasons = append(r.Reasons, fmt.Sprintf("too few words (%d/%d)", len(g.Words()), gen.minWords()))
	}
	if r.InvalidSeqs > 0 {
		r.Reasons = append(r.Reasons, fmt.Sprintf("invalid letter sequences (%d)", r.InvalidSeqs))
	}
	if r.EmptyRuns > 0 {
		r.Reasons = append(r.Reasons, fmt.Sprintf("long empty runs (%d)", r.EmptyRuns))
	}

	r.Valid = len(r.Reasons) == 0
	return r
}
