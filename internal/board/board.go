// Package board implements the Minesweeper rules engine: an immutable board
// value plus pure transition operations. Every mutation returns a new Board
// and leaves the receiver untouched, so callers may retain old values as
// undo snapshots for free.
package board

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strings"
)

var (
	ErrOutOfBounds       = errors.New("cell coordinates out of bounds")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidOperation  = errors.New("invalid operation")
)

// safeZoneSize is the largest possible first-click safe zone (the target
// cell plus its Moore neighborhood). Mine counts must leave at least this
// many cells free so lazy placement always succeeds.
const safeZoneSize = 9

// Board is one game state. The zero value is not usable; construct with
// [New], [NewWithMineCount] or [NewFromCells].
type Board struct {
	rows, cols int
	mines      int
	allocated  bool
	cells      []Cell
	rnd        *rand.Rand
}

// New creates a board with no mines.
func New(rows, cols int, r *rand.Rand) (Board, error) {
	return NewWithMineCount(rows, cols, 0, r)
}

// NewWithMineCount creates a board whose mine positions will be chosen on
// the first reveal, never inside the safe zone around it. mineCount must
// fit the grid with the safe zone left over. r may be nil, in which case an
// unseeded source is used; tests pass a seeded one.
func NewWithMineCount(rows, cols, mineCount int, r *rand.Rand) (Board, error) {
	if rows <= 0 || cols <= 0 {
		return Board{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if mineCount < 0 || mineCount > rows*cols-safeZoneSize {
		return Board{}, fmt.Errorf(
			"%w: %d mines do not fit a %dx%d grid",
			ErrInvalidDimensions, mineCount, rows, cols,
		)
	}
	if r == nil {
		r = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i].State = Covered{}
	}
	return Board{rows: rows, cols: cols, mines: mineCount, cells: cells, rnd: r}, nil
}

// NewFromCells creates a board from an explicit cell layout, with the mine
// count derived by counting and no lazy placement. Meant for deterministic
// setups.
func NewFromCells(rows, cols int, cells []Cell) (Board, error) {
	if rows <= 0 || cols <= 0 {
		return Board{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if len(cells) != rows*cols {
		return Board{}, fmt.Errorf(
			"%w: got %d cells, want %d for a %dx%d grid",
			ErrInvalidDimensions, len(cells), rows*cols, rows, cols,
		)
	}
	own := make([]Cell, len(cells))
	copy(own, cells)
	mines := 0
	for i := range own {
		if own[i].State == nil {
			own[i].State = Covered{}
		}
		if own[i].Mine {
			mines++
		}
	}
	return Board{rows: rows, cols: cols, mines: mines, allocated: true, cells: own}, nil
}

func (b Board) NumRows() int         { return b.rows }
func (b Board) NumColumns() int      { return b.cols }
func (b Board) NumMines() int        { return b.mines }
func (b Board) MinesAllocated() bool { return b.allocated }

func (b Board) index(row, col int) (int, error) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return 0, fmt.Errorf(
			"%w: %d:%d on a %dx%d board", ErrOutOfBounds, row, col, b.rows, b.cols,
		)
	}
	return row*b.cols + col, nil
}

// CellState returns the player-visible state of one cell.
func (b Board) CellState(row, col int) (CellState, error) {
	i, err := b.index(row, col)
	if err != nil {
		return nil, err
	}
	return b.cells[i].State, nil
}

// neighborOffsets lists the Moore neighborhood in a fixed compass order
// (NW, N, NE, W, E, SW, S, SE) so neighbor traversal is deterministic.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// NeighborCoords returns the up-to-8 grid-adjacent coordinates of a cell,
// clipped at edges and corners.
func (b Board) NeighborCoords(row, col int) ([]Coord, error) {
	if _, err := b.index(row, col); err != nil {
		return nil, err
	}
	coords := make([]Coord, 0, 8)
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if 0 <= r && r < b.rows && 0 <= c && c < b.cols {
			coords = append(coords, Coord{Row: r, Col: c})
		}
	}
	return coords, nil
}

// Neighbors pairs each neighboring coordinate with its current state.
func (b Board) Neighbors(row, col int) ([]Neighbor, error) {
	coords, err := b.NeighborCoords(row, col)
	if err != nil {
		return nil, err
	}
	ns := make([]Neighbor, len(coords))
	for i, c := range coords {
		ns[i] = Neighbor{Coord: c, State: b.cells[c.Row*b.cols+c.Col].State}
	}
	return ns, nil
}

func (b Board) countNearby(i int) uint8 {
	row, col := i/b.cols, i%b.cols
	var n uint8
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if 0 <= r && r < b.rows && 0 <= c && c < b.cols && b.cells[r*b.cols+c].Mine {
			n++
		}
	}
	return n
}

func (b Board) cloneCells() []Cell {
	dst := make([]Cell, len(b.cells))
	copy(dst, b.cells)
	return dst
}

// ClearCell reveals a cell, cascading through zero-count regions. Revealing
// an already exposed cell is a no-op and returns the receiver. On the very
// first reveal of a game, mine positions are committed first, excluding the
// safe zone around the target.
func (b Board) ClearCell(row, col int) (Board, error) {
	i, err := b.index(row, col)
	if err != nil {
		return b, err
	}
	if _, exposed := b.cells[i].State.(Exposed); exposed {
		return b, nil
	}
	next := b
	next.cells = b.cloneCells()
	if !next.allocated {
		next.allocateMines(row, col)
	}
	next.expose(i)
	return next, nil
}

// ClearNeighbors performs a chord clear: if the target is exposed, not
// exploded, and exactly MinesNearby of its covered neighbors carry a mine
// flag, every covered neighbor without a mine flag is revealed with the
// usual cascade. Any other situation is a no-op returning the receiver.
// The target being exposed implies mines are already allocated, so this
// never places mines.
func (b Board) ClearNeighbors(row, col int) (Board, error) {
	i, err := b.index(row, col)
	if err != nil {
		return b, err
	}
	st, ok := b.cells[i].State.(Exposed)
	if !ok || st.Exploded {
		return b, nil
	}
	var (
		flagged int
		targets []int
	)
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
			continue
		}
		j := r*b.cols + c
		if cov, covered := b.cells[j].State.(Covered); covered {
			if cov.Marker == MarkerMine {
				flagged++
			} else {
				targets = append(targets, j)
			}
		}
	}
	if flagged != int(st.MinesNearby) || len(targets) == 0 {
		return b, nil
	}
	next := b
	next.cells = b.cloneCells()
	for _, j := range targets {
		// a previous target's cascade may have gotten here first
		if _, exposed := next.cells[j].State.(Exposed); exposed {
			continue
		}
		next.expose(j)
	}
	return next, nil
}

// MarkCell sets or clears the marker on a covered cell. Marking an exposed
// cell fails with [ErrInvalidOperation]. Re-applying the present marker is
// legal and returns the receiver.
func (b Board) MarkCell(row, col int, marker Marker) (Board, error) {
	i, err := b.index(row, col)
	if err != nil {
		return b, err
	}
	cov, covered := b.cells[i].State.(Covered)
	if !covered {
		return b, fmt.Errorf(
			"%w: cannot mark exposed cell %d:%d", ErrInvalidOperation, row, col,
		)
	}
	if cov.Marker == marker {
		return b, nil
	}
	next := b
	next.cells = b.cloneCells()
	next.cells[i].State = Covered{Marker: marker}
	return next, nil
}

func (b Board) String() string {
	var sb strings.Builder
	for row := range b.rows {
		for col := range b.cols {
			fmt.Fprint(&sb, b.cells[row*b.cols+col].State.String(), " ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
