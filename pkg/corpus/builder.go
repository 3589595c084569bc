package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Word-list answers outside this length range are never useful on the grid
// sizes we generate for.
const (
	wordListMinLength = 2
	wordListMaxLength = 5
)

// archivePuzzle mirrors the fragment of the puzzle archive format the
// builder reads: the first body element carries the cells and clues.
type archivePuzzle struct {
	Body []struct {
		Cells []struct {
			Answer string `json:"answer"`
		} `json:"cells"`
		Clues []struct {
			Text []struct {
				Plain string `json:"plain"`
			} `json:"text"`
			Cells []int `json:"cells"`
		} `json:"clues"`
	} `json:"body"`
}

// extractArchivePairs pulls clue/answer pairs out of a single archive
// puzzle, joining each clue's cell answers. Relational "See ..." clues are
// skipped because they make no sense outside their source puzzle.
func extractArchivePairs(r io.Reader) (map[string]string, error) {
	var puz archivePuzzle
	if err := json.NewDecoder(r).Decode(&puz); err != nil {
		return nil, err
	}
	if len(puz.Body) == 0 {
		return nil, nil
	}

	pairs := make(map[string]string)
	body := puz.Body[0]
	for _, clue := range body.Clues {
		if len(clue.Text) == 0 {
			continue
		}
		text := strings.TrimSpace(clue.Text[0].Plain)
		if text == "" || strings.HasPrefix(text, "See ") {
			continue
		}

		var answer strings.Builder
		for _, idx := range clue.Cells {
			if idx >= 0 && idx < len(body.Cells) {
				answer.WriteString(body.Cells[idx].Answer)
			}
		}
		if answer.Len() > 0 {
			pairs[text] = answer.String()
		}
	}
	return pairs, nil
}

// parseWordList reads a tab-separated word list of (word, definition) rows
// and turns each definition into a usable clue. Words outside the
// word-list length range are dropped.
func parseWordList(r io.Reader) ([]Answer, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []Answer
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		word := strings.ToUpper(strings.TrimSpace(row[0]))
		if len(word) < wordListMinLength || len(word) > wordListMaxLength {
			continue
		}
		if !isUpperAlpha(word) {
			continue
		}
		clue := cleanDefinition(strings.TrimSpace(row[1]))
		if clue == "" {
			continue
		}
		records = append(records, Answer{Clue: clue, Answer: word, Quality: QualityDictionary})
	}
	return records, nil
}

// cleanDefinition turns a raw dictionary definition into clue text:
// bracketed part-of-speech tags, leading all-caps headwords, leading
// parentheticals, leading articles, and trailing ", also ..." cross
// references are stripped, and the first letter is capitalized.
func cleanDefinition(def string) string {
	clue := def
	if i := strings.IndexByte(clue, '['); i >= 0 {
		clue = strings.TrimSpace(clue[:i])
	}

	words := strings.Fields(clue)
	for len(words) > 0 && isAllCaps(words[0]) {
		words = words[1:]
		if len(words) > 0 && strings.HasPrefix(words[0], ",") {
			words[0] = strings.TrimSpace(strings.TrimPrefix(words[0], ","))
			if words[0] == "" {
				words = words[1:]
			}
		}
	}
	clue = strings.TrimSpace(strings.Join(words, " "))

	for strings.HasPrefix(clue, "(") {
		end := strings.IndexByte(clue, ')')
		if end < 0 {
			break
		}
		clue = strings.TrimSpace(clue[end+1:])
	}

	switch {
	case strings.HasPrefix(clue, "a "):
		clue = clue[2:]
	case strings.HasPrefix(clue, "an "):
		clue = clue[3:]
	case strings.HasPrefix(clue, "the "):
		clue = clue[4:]
	}

	if i := strings.LastIndex(clue, ", also"); i >= 0 {
		clue = strings.TrimSpace(clue[:i])
	}

	if clue == "" {
		return ""
	}
	if len(clue) == 1 {
		return strings.ToUpper(clue)
	}
	return strings.ToUpper(clue[:1]) + clue[1:]
}

// isUpperAlpha reports whether an answer is entirely uppercase ASCII
// letters, the only alphabet the grid engine accepts.
func isUpperAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// isAllCaps reports whether a word is entirely uppercase, with at least one
// letter. Mixed punctuation around the letters is allowed.
func isAllCaps(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// BuildMaster assembles a master clue list from a directory of archive
// puzzle JSON files (archive tier) and an optional word-list TSV
// (dictionary tier, pass "" to skip). Exact duplicate pairs are dropped,
// dictionary clues never shadow an archive clue for the same answer, and
// dictionary clues longer than the longest archive clue are dropped so the
// two sources render alike. The result is quality-ascending.
func BuildMaster(archiveDir, wordListPath string) ([]Answer, error) {
	files, err := filepath.Glob(filepath.Join(archiveDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan archive dir: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no archive puzzles in %s", archiveDir)
	}

	var master []Answer
	seen := make(map[[2]string]bool)
	bestQuality := make(map[string]int)
	maxClueLength := 0

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open archive puzzle: %w", err)
		}
		pairs, err := extractArchivePairs(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		for clue, answer := range pairs {
			if !isUpperAlpha(answer) {
				continue
			}
			if len(clue) > maxClueLength {
				maxClueLength = len(clue)
			}
			key := [2]string{clue, answer}
			if seen[key] {
				continue
			}
			seen[key] = true
			master = append(master, Answer{Clue: clue, Answer: answer, Quality: QualityArchive})
			bestQuality[answer] = QualityArchive
		}
	}

	if wordListPath != "" {
		f, err := os.Open(wordListPath)
		if err != nil {
			return nil, fmt.Errorf("open word list: %w", err)
		}
		dictionary, err := parseWordList(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		for _, rec := range dictionary {
			if len(rec.Clue) > maxClueLength {
				continue
			}
			key := [2]string{rec.Clue, rec.Answer}
			if seen[key] {
				continue
			}
			if q, ok := bestQuality[rec.Answer]; ok && q < QualityDictionary {
				continue
			}
			seen[key] = true
			master = append(master, rec)
			if q, ok := bestQuality[rec.Answer]; !ok || QualityDictionary < q {
				bestQuality[rec.Answer] = QualityDictionary
			}
		}
	}

	return master, nil
}
