// Package cluegen builds small word-grid puzzles by greedily and randomly
// placing answers from a quality-ranked clue corpus, validating every
// placement against grid geometry and against the corpus itself, and
// classifying finished grids into quality tiers.
package cluegen

import "strings"

// Direction of a word placement.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Across {
		return "across"
	}
	return "down"
}

// Word is an answer placed on the grid. Words are immutable once placed;
// a failed attempt discards the whole grid rather than undoing placements.
type Word struct {
	Text    string
	Row     int
	Col     int
	Dir     Direction
	Clue    string
	Quality int
}

// Sequence is a maximal run of letters (length >= 2) along a row or
// column. A sequence matching a placed word's (text, row, col, dir) tuple
// exactly is "placed"; anything else is incidental.
type Sequence struct {
	Text string
	Row  int
	Col  int
	Dir  Direction
}

// Grid is mutable puzzle state: a cell matrix plus the placed words that
// put letters there. Cells hold 0 when empty.
type Grid struct {
	width  int
	height int
	cells  [][]byte
	words  []Word

	// Derived sequences are cached keyed by a revision counter bumped on
	// every mutation.
	rev      uint64
	seqRev   uint64
	seqCache []Sequence
}

// NewGrid creates an empty width x height grid.
func NewGrid(width, height int) *Grid {
	cells := make([][]byte, height)
	for i := range cells {
		cells[i] = make([]byte, width)
	}
	return &Grid{width: width, height: height, cells: cells, rev: 1}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Cell returns the letter at (row, col), or 0 for an empty cell.
func (g *Grid) Cell(row, col int) byte {
	return g.cells[row][col]
}

// Words returns the placed words. Callers must not mutate the slice.
func (g *Grid) Words() []Word {
	return g.words
}

// Clone deep-copies the grid. Letters are primitive and words immutable,
// so copies are cheap; one is taken whenever a result must outlive further
// mutation of the working grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]byte, g.height)
	for i := range cells {
		cells[i] = make([]byte, g.width)
		copy(cells[i], g.cells[i])
	}
	words := make([]Word, len(g.words))
	copy(words, g.words)
	return &Grid{width: g.width, height: g.height, cells: cells, words: words, rev: 1}
}

// Place writes text into the matrix starting at (row, col) and appends the
// placed word. Callers must validate first; placing an invalid word
// corrupts the grid.
func (g *Grid) Place(text string, row, col int, dir Direction, clue string, quality int) {
	for i := 0; i < len(text); i++ {
		if dir == Across {
			g.cells[row][col+i] = text[i]
		} else {
			g.cells[row+i][col] = text[i]
		}
	}
	g.words = append(g.words, Word{Text: text, Row: row, Col: col, Dir: dir, Clue: clue, Quality: quality})
	g.rev++
}

// EmptyCells counts cells holding no letter.
func (g *Grid) EmptyCells() int {
	count := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == 0 {
				count++
			}
		}
	}
	return count
}

// UsedAnswers returns the set of answer texts placed on the grid.
func (g *Grid) UsedAnswers() map[string]bool {
	used := make(map[string]bool, len(g.words))
	for _, w := range g.words {
		used[w.Text] = true
	}
	return used
}

// Sequences returns every maximal letter run of length >= 2, across runs
// first, then down runs. The result is recomputed only when the grid has
// mutated since the last call; callers must not mutate it.
func (g *Grid) Sequences() []Sequence {
	if g.seqCache != nil && g.seqRev == g.rev {
		return g.seqCache
	}

	var seqs []Sequence
	var run strings.Builder

	for row := 0; row < g.height; row++ {
		col := 0
		for col < g.width {
			if g.cells[row][col] == 0 {
				col++
				continue
			}
			start := col
			run.Reset()
			for col < g.width && g.cells[row][col] != 0 {
				run.WriteByte(g.cells[row][col])
				col++
			}
			if run.Len() > 1 {
				seqs = append(seqs, Sequence{Text: run.String(), Row: row, Col: start, Dir: Across})
			}
		}
	}

	for col := 0; col < g.width; col++ {
		row := 0
		for row < g.height {
			if g.cells[row][col] == 0 {
				row++
				continue
			}
			start := row
			run.Reset()
			for row < g.height && g.cells[row][col] != 0 {
				run.WriteByte(g.cells[row][col])
				row++
			}
			if run.Len() > 1 {
				seqs = append(seqs, Sequence{Text: run.String(), Row: start, Col: col, Dir: Down})
			}
		}
	}

	g.seqCache = seqs
	g.seqRev = g.rev
	return seqs
}

// placedSet returns the placed words keyed by their sequence tuple.
func (g *Grid) placedSet() map[Sequence]bool {
	placed := make(map[Sequence]bool, len(g.words))
	for _, w := range g.words {
		placed[Sequence{Text: w.Text, Row: w.Row, Col: w.Col, Dir: w.Dir}] = true
	}
	return placed
}

// InvalidSequences counts incidental sequences whose text is not an
// eligible answer. A grid passing acceptance has zero.
func (g *Grid) InvalidSequences(eligible map[string]bool) int {
	placed := g.placedSet()
	invalid := 0
	for _, seq := range g.Sequences() {
		if placed[seq] {
			continue
		}
		if !eligible[seq.Text] {
			invalid++
		}
	}
	return invalid
}

// LongEmptyRuns counts rows and columns containing a run of empty cells
// longer than half the longer grid dimension. Such runs read as dead
// space, so acceptance requires zero.
func (g *Grid) LongEmptyRuns() int {
	limit := max(g.width, g.height) / 2
	violations := 0

	for row := 0; row < g.height; row++ {
		run := 0
		for col := 0; col <= g.width; col++ {
			if col < g.width && g.cells[row][col] == 0 {
				run++
				continue
			}
			if run > limit {
				violations++
				break
			}
			run = 0
		}
	}

	for col := 0; col < g.width; col++ {
		run := 0
		for row := 0; row <= g.height; row++ {
			if row < g.height && g.cells[row][col] == 0 {
				run++
				continue
			}
			if run > limit {
				violations++
				break
			}
			run = 0
		}
	}

	return violations
}
