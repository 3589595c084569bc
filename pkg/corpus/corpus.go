// Package corpus owns the ranked clue/answer records the grid generator
// draws from, grouped and queryable by answer length and letter pattern.
package corpus

import (
	"errors"
	"fmt"
)

// Quality tiers for answer records. Lower is better.
const (
	QualityArchive    = 1 // sourced from real puzzle archives
	QualityDictionary = 2 // sourced from a dictionary word list
)

// Scan caps bound how far a query walks into a length bucket before giving
// up, trading completeness for bounded latency. The buckets are sorted
// quality-ascending, so the prefix is always the best-quality prefix.
const (
	bestQualityScanCap = 500
	candidateScanCap   = 1000
)

// ErrEmptyCorpus is returned when no usable records survive indexing.
var ErrEmptyCorpus = errors.New("corpus: no usable records")

// Answer is a single (clue, answer, quality) record. Answers use uppercase
// ASCII letters only.
type Answer struct {
	Clue    string
	Answer  string
	Quality int
}

// Index is a read-only view over a ranked record list, built once per
// generation session. Records longer than the longest grid dimension are
// excluded everywhere.
type Index struct {
	maxWordLength int
	byLength      map[int][]Answer
	eligible      map[string]bool
	clues         map[string]string
	quality       map[string]int
}

// NewIndex builds an index over records, keeping only answers of length at
// most maxWordLength. Records must already be sorted quality-ascending;
// bucket order preserves record order, so every bucket prefix is the
// best-quality prefix. The first clue seen for an answer is kept as its
// best clue.
func NewIndex(records []Answer, maxWordLength int) (*Index, error) {
	if maxWordLength < 1 {
		return nil, fmt.Errorf("corpus: invalid max word length %d", maxWordLength)
	}

	ix := &Index{
		maxWordLength: maxWordLength,
		byLength:      make(map[int][]Answer),
		eligible:      make(map[string]bool),
		clues:         make(map[string]string),
		quality:       make(map[string]int),
	}

	for _, rec := range records {
		if rec.Answer == "" {
			return nil, fmt.Errorf("corpus: record with empty answer (clue %q)", rec.Clue)
		}
		for _, c := range rec.Answer {
			if c < 'A' || c > 'Z' {
				return nil, fmt.Errorf("corpus: answer %q contains %q, want uppercase letters", rec.Answer, c)
			}
		}
		if len(rec.Answer) > maxWordLength {
			continue
		}

		ix.byLength[len(rec.Answer)] = append(ix.byLength[len(rec.Answer)], rec)
		ix.eligible[rec.Answer] = true
		if _, ok := ix.clues[rec.Answer]; !ok {
			ix.clues[rec.Answer] = rec.Clue
			ix.quality[rec.Answer] = rec.Quality
		}
	}

	if len(ix.eligible) == 0 {
		return nil, ErrEmptyCorpus
	}
	return ix, nil
}

// Eligible returns the set of all answer texts that fit the grid. The map
// is shared; callers must not mutate it.
func (ix *Index) Eligible() map[string]bool {
	return ix.eligible
}

// ClueFor returns the best known clue for an answer text.
func (ix *Index) ClueFor(text string) (string, bool) {
	clue, ok := ix.clues[text]
	return clue, ok
}

// QualityFor returns the best known quality for an answer text, defaulting
// to the dictionary tier for unknown answers.
func (ix *Index) QualityFor(text string) int {
	if q, ok := ix.quality[text]; ok {
		return q
	}
	return QualityDictionary
}

// BucketSize returns the number of indexed answers of a given length.
func (ix *Index) BucketSize(length int) int {
	return len(ix.byLength[length])
}

// BestQuality returns up to limit answers of the given length matching
// pattern, skipping excluded texts and anything worse than targetQuality.
// It scans at most bestQualityScanCap records, stopping early once limit
// matches are found.
func (ix *Index) BestQuality(length int, pattern Pattern, exclude map[string]bool, limit, targetQuality int) []Answer {
	bucket := ix.byLength[length]
	if len(bucket) == 0 || limit <= 0 {
		return nil
	}

	var results []Answer
	maxScan := min(bestQualityScanCap, len(bucket))
	for _, rec := range bucket[:maxScan] {
		if rec.Quality > targetQuality {
			continue
		}
		if exclude[rec.Answer] {
			continue
		}
		if !pattern.Matches(rec.Answer) {
			continue
		}
		results = append(results, rec)
		if len(results) >= limit {
			break
		}
	}
	return results
}

// Candidates returns up to limit answers of the given length matching
// pattern, skipping excluded texts. Archive-tier matches are returned
// first, backfilled with dictionary-tier matches up to limit. It scans at
// most candidateScanCap records, stopping early once limit archive-tier
// matches are found.
func (ix *Index) Candidates(length int, pattern Pattern, exclude map[string]bool, limit int) []Answer {
	bucket := ix.byLength[length]
	if len(bucket) == 0 || limit <= 0 {
		return nil
	}

	var archive, dictionary []Answer
	maxScan := min(candidateScanCap, len(bucket))
	for _, rec := range bucket[:maxScan] {
		if exclude[rec.Answer] {
			continue
		}
		if !pattern.Matches(rec.Answer) {
			continue
		}
		if rec.Quality == QualityArchive {
			archive = append(archive, rec)
		} else {
			dictionary = append(dictionary, rec)
		}
		if len(archive) >= limit {
			break
		}
	}

	results := archive
	if len(results) < limit {
		results = append(results, dictionary[:min(limit-len(results), len(dictionary))]...)
	}
	return results
}
