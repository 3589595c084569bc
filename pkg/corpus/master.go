package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// The master clue list is a JSON array of [clue, answer, quality] triples,
// quality-ascending. Older lists carry two-element [clue, answer] records;
// those load with quality defaulting to the dictionary tier.

// LoadMaster reads a master clue list from a file.
func LoadMaster(path string) ([]Answer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open master clue list: %w", err)
	}
	defer f.Close()
	return ParseMaster(f)
}

// ParseMaster decodes a master clue list.
func ParseMaster(r io.Reader) ([]Answer, error) {
	var rows [][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode master clue list: %w", err)
	}

	records := make([]Answer, 0, len(rows))
	for i, row := range rows {
		if len(row) != 2 && len(row) != 3 {
			return nil, fmt.Errorf("master record %d: want 2 or 3 fields, got %d", i, len(row))
		}
		var rec Answer
		if err := json.Unmarshal(row[0], &rec.Clue); err != nil {
			return nil, fmt.Errorf("master record %d clue: %w", i, err)
		}
		if err := json.Unmarshal(row[1], &rec.Answer); err != nil {
			return nil, fmt.Errorf("master record %d answer: %w", i, err)
		}
		rec.Quality = QualityDictionary
		if len(row) == 3 {
			if err := json.Unmarshal(row[2], &rec.Quality); err != nil {
				return nil, fmt.Errorf("master record %d quality: %w", i, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveMaster writes records to path in the master clue list format.
func SaveMaster(path string, records []Answer) error {
	rows := make([][]any, len(records))
	for i, rec := range records {
		rows[i] = []any{rec.Clue, rec.Answer, rec.Quality}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode master clue list: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write master clue list: %w", err)
	}
	return nil
}
