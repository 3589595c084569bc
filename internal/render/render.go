// Package render turns finished grids into console and wire-friendly
// output. It reads grid structure through exported accessors only.
package render

import (
	"fmt"
	"sort"
	"strings"

	"crosswarped.com/cluegen"
	"crosswarped.com/cluegen/pkg/corpus"
)

// Rows returns one string per grid row, with '.' for empty cells.
func Rows(g *cluegen.Grid) []string {
	rows := make([]string, g.Height())
	var b strings.Builder
	for row := 0; row < g.Height(); row++ {
		b.Reset()
		for col := 0; col < g.Width(); col++ {
			c := g.Cell(row, col)
			if c == 0 {
				c = '.'
			}
			b.WriteByte(c)
		}
		rows[row] = b.String()
	}
	return rows
}

// Puzzle renders a grid with its across/down clue lists and
// unintended-sequence diagnostics.
func Puzzle(g *cluegen.Grid, ix *corpus.Index) string {
	var b strings.Builder

	b.WriteString("Grid:\n")
	for row := 0; row < g.Height(); row++ {
		cells := make([]string, g.Width())
		for col := 0; col < g.Width(); col++ {
			if c := g.Cell(row, col); c != 0 {
				cells[col] = string(c)
			} else {
				cells[col] = "█"
			}
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}

	words := g.Reconcile(ix)
	var across, down []cluegen.Word
	for _, w := range words {
		if w.Dir == cluegen.Across {
			across = append(across, w)
		} else {
			down = append(down, w)
		}
	}
	sort.Slice(across, func(i, j int) bool {
		if across[i].Row != across[j].Row {
			return across[i].Row < across[j].Row
		}
		return across[i].Col < across[j].Col
	})
	sort.Slice(down, func(i, j int) bool {
		if down[i].Col != down[j].Col {
			return down[i].Col < down[j].Col
		}
		return down[i].Row < down[j].Row
	})

	b.WriteString("\nClues:\nAcross:\n")
	for _, w := range across {
		fmt.Fprintf(&b, "  %s: %s (quality: %d)\n", w.Text, w.Clue, w.Quality)
	}
	b.WriteString("Down:\n")
	for _, w := range down {
		fmt.Fprintf(&b, "  %s: %s (quality: %d)\n", w.Text, w.Clue, w.Quality)
	}

	writeDiagnostics(&b, g, ix.Eligible())
	return b.String()
}

// writeDiagnostics lists incidental sequences of length >= 3 with a
// validity marker.
func writeDiagnostics(b *strings.Builder, g *cluegen.Grid, eligible map[string]bool) {
	placed := make(map[cluegen.Sequence]bool)
	for _, w := range g.Words() {
		placed[cluegen.Sequence{Text: w.Text, Row: w.Row, Col: w.Col, Dir: w.Dir}] = true
	}

	var lines []string
	for _, seq := range g.Sequences() {
		if len(seq.Text) < 3 || placed[seq] {
			continue
		}
		marker := "✗"
		if eligible[seq.Text] {
			marker = "✓"
		}
		lines = append(lines, fmt.Sprintf("  %s %s at (%d,%d) %s", marker, seq.Text, seq.Row, seq.Col, seq.Dir))
	}

	if len(lines) == 0 {
		b.WriteString("\nNo unintended letter sequences found.\n")
		return
	}
	b.WriteString("\nUnintended letter sequences:\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
