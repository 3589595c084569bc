package cluegen

// CanPlace reports whether text can legally occupy (row, col) in the given
// direction without consulting the corpus. Rules, in order: the word fits
// inside the grid, every covered cell is empty or already holds the same
// letter, and the cells immediately before the start and after the end are
// empty or off-grid so the word never silently merges with a neighbor.
func (g *Grid) CanPlace(text string, row, col int, dir Direction) bool {
	if text == "" || row < 0 || col < 0 || row >= g.height || col >= g.width {
		return false
	}

	if dir == Across {
		if col+len(text) > g.width {
			return false
		}
		for i := 0; i < len(text); i++ {
			c := g.cells[row][col+i]
			if c != 0 && c != text[i] {
				return false
			}
		}
		if col > 0 && g.cells[row][col-1] != 0 {
			return false
		}
		if col+len(text) < g.width && g.cells[row][col+len(text)] != 0 {
			return false
		}
		return true
	}

	if row+len(text) > g.height {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := g.cells[row+i][col]
		if c != 0 && c != text[i] {
			return false
		}
	}
	if row > 0 && g.cells[row-1][col] != 0 {
		return false
	}
	if row+len(text) < g.height && g.cells[row+len(text)][col] != 0 {
		return false
	}
	return true
}

// CanPlaceChecked applies CanPlace and then the corpus-consistency rule:
// the placement is simulated and every incidental sequence of length >= 3
// it would create or extend must be an eligible answer. This is what keeps
// accidental gibberish runs from appearing as the grid fills in.
func (g *Grid) CanPlaceChecked(text string, row, col int, dir Direction, eligible map[string]bool) bool {
	if !g.CanPlace(text, row, col, dir) {
		return false
	}

	sim := g.Clone()
	sim.Place(text, row, col, dir, "", 0)

	placed := sim.placedSet()
	for _, seq := range sim.Sequences() {
		if len(seq.Text) < 3 {
			continue
		}
		if placed[seq] {
			continue
		}
		if !eligible[seq.Text] {
			return false
		}
	}
	return true
}
