package cluegen

import (
	"context"
	"slices"
)

// Tier classifies a batch result.
type Tier int

const (
	// TierPerfect is a valid grid where every word carries a top-tier clue.
	TierPerfect Tier = iota
	// TierImperfect is a valid grid with at least one dictionary-tier clue.
	TierImperfect
	// TierFallback failed acceptance but is retained as a last-resort
	// candidate, ranked by penalty.
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierImperfect:
		return "imperfect"
	default:
		return "fallback"
	}
}

// Penalty weights for fallback ranking. Structural defects (invalid
// sequences, long empty runs) outweigh cosmetic ones (raw empty cells,
// word-count shortfall).
const (
	penaltyInvalidSeq = 50.0
	penaltyEmptyRun   = 40.0
	penaltyShortfall  = 10.0
	penaltyNoQuality  = 20.0
	penaltyEmptyCell  = 1.0
)

// BatchResult is a Result with its tier assignment. Penalty is meaningful
// only for TierFallback; lower is better.
type BatchResult struct {
	*Result
	Tier    Tier
	Penalty float64
}

// BatchStats reports what a batch run saw, including results that were
// pruned from the output.
type BatchStats struct {
	Attempts  int
	Perfect   int
	Imperfect int
	Fallback  int
}

// penalty scores a failed attempt; lower is better.
func (gen *Generator) penalty(r *Result) float64 {
	shortfall := gen.minWords() - r.Words
	if shortfall < 0 {
		shortfall = 0
	}
	qualityGap := 0.0
	if r.Score < 1.0 {
		qualityGap = 1.0 - r.Score
	}
	return penaltyInvalidSeq*float64(r.InvalidSeqs) +
		penaltyEmptyRun*float64(r.EmptyRuns) +
		penaltyShortfall*float64(shortfall) +
		penaltyNoQuality*qualityGap +
		penaltyEmptyCell*float64(r.EmptyCells)
}

// classify assigns a tier and, for fallbacks, a penalty.
func (gen *Generator) classify(r *Result) BatchResult {
	switch {
	case r.Valid && r.Score == 1.0:
		return BatchResult{Result: r, Tier: TierPerfect}
	case r.Valid:
		return BatchResult{Result: r, Tier: TierImperfect}
	default:
		return BatchResult{Result: r, Tier: TierFallback, Penalty: gen.penalty(r)}
	}
}

// GenerateBatch runs attempts until the iteration budget is spent, the
// context is cancelled, or enough perfect grids exist, and assembles the
// ordered result set: perfect grids first, then imperfect in discovery
// order, then fallbacks best-penalty-first, truncated to count. Running
// short of the requested count is not an error; the stats say what each
// tier produced.
func (gen *Generator) GenerateBatch(ctx context.Context, count, maxIterations int) ([]BatchResult, BatchStats) {
	var perfect, imperfect, fallback []BatchResult
	var stats BatchStats

	for attempt := 0; attempt < maxIterations; attempt++ {
		if ctx.Err() != nil {
			break
		}
		stats.Attempts++

		r := gen.Attempt()
		if r.Grid == nil {
			continue
		}

		br := gen.classify(r)
		switch br.Tier {
		case TierPerfect:
			stats.Perfect++
			perfect = append(perfect, br)
		case TierImperfect:
			stats.Imperfect++
			if len(imperfect) < count {
				imperfect = append(imperfect, br)
			}
		default:
			stats.Fallback++
			fallback = insertByPenalty(fallback, br, count)
		}

		if len(perfect) >= count {
			break
		}
	}

	out := make([]BatchResult, 0, count)
	out = append(out, perfect[:min(count, len(perfect))]...)
	if remaining := count - len(out); remaining > 0 {
		out = append(out, imperfect[:min(remaining, len(imperfect))]...)
	}
	if remaining := count - len(out); remaining > 0 {
		out = append(out, fallback[:min(remaining, len(fallback))]...)
	}
	return out, stats
}

// insertByPenalty keeps results sorted penalty-ascending, retaining at
// most limit entries so a long batch run stays bounded in memory.
func insertByPenalty(results []BatchResult, br BatchResult, limit int) []BatchResult {
	at, _ := slices.BinarySearchFunc(results, br, func(a, b BatchResult) int {
		switch {
		case a.Penalty < b.Penalty:
			return -1
		case a.Penalty > b.Penalty:
			return 1
		default:
			return 0
		}
	})
	results = slices.Insert(results, at, br)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
