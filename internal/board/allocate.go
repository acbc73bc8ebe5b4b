package board

// allocateMines commits mine positions on the first reveal: numMines
// distinct cells chosen uniformly from every position outside the 3x3 safe
// zone around the target, so the first revealed cell can never be a mine.
// The receiver must own a fresh cell slice.
func (b *Board) allocateMines(row, col int) {
	candidates := make([]int, 0, len(b.cells))
	for r := range b.rows {
		for c := range b.cols {
			if absDiff(r, row) > 1 || absDiff(c, col) > 1 {
				candidates = append(candidates, r*b.cols+c)
			}
		}
	}

	// pick numMines off the candidate list at random
	k := len(candidates)
	for range b.mines {
		i := b.rnd.IntN(k)
		b.cells[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}

	b.allocated = true
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
