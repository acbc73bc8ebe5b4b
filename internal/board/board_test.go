package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// mined is a shorthand for building explicit layouts in tests.
func mined(rows, cols int, mines ...Coord) []Cell {
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i].State = Covered{}
	}
	for _, m := range mines {
		cells[m.Row*cols+m.Col].Mine = true
	}
	return cells
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name             string
		rows, cols, mines int
	}{
		{"zero rows", 0, 5, 0},
		{"zero cols", 5, 0, 0},
		{"negative rows", -1, 5, 0},
		{"negative mines", 5, 5, -1},
		{"no room for safe zone", 3, 3, 1},
		{"mines fill grid", 5, 5, 25},
		{"mines exceed grid", 5, 5, 26},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewWithMineCount(test.rows, test.cols, test.mines, testRand())
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}

	b, err := NewWithMineCount(5, 5, 16, testRand())
	require.NoError(t, err)
	assert.Equal(t, 5, b.NumRows())
	assert.Equal(t, 5, b.NumColumns())
	assert.Equal(t, 16, b.NumMines())
	assert.False(t, b.MinesAllocated())
}

func TestNewFromCells(t *testing.T) {
	_, err := NewFromCells(2, 2, make([]Cell, 3))
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}, Coord{0, 1}))
	require.NoError(t, err)
	assert.Equal(t, 2, b.NumMines())
	assert.True(t, b.MinesAllocated())
}

func TestCellStateBounds(t *testing.T) {
	b, err := New(3, 4, testRand())
	require.NoError(t, err)

	for _, c := range []Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {100, 100}} {
		_, err := b.CellState(c.Row, c.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, c.String())
	}

	st, err := b.CellState(2, 3)
	require.NoError(t, err)
	assert.Equal(t, Covered{}, st)
}

func TestNeighborCoords(t *testing.T) {
	b, err := New(3, 3, testRand())
	require.NoError(t, err)

	tests := []struct {
		name     string
		row, col int
		want     []Coord
	}{
		{
			name: "corner", row: 0, col: 0,
			want: []Coord{{0, 1}, {1, 0}, {1, 1}},
		},
		{
			name: "edge", row: 0, col: 1,
			want: []Coord{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}},
		},
		{
			name: "center", row: 1, col: 1,
			want: []Coord{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := b.NeighborCoords(test.row, test.col)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}

	_, err = b.NeighborCoords(3, 3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestNeighbors(t *testing.T) {
	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}))
	require.NoError(t, err)
	b, err = b.MarkCell(0, 0, MarkerMine)
	require.NoError(t, err)

	ns, err := b.Neighbors(1, 1)
	require.NoError(t, err)
	require.Len(t, ns, 3)
	assert.Equal(t, Neighbor{Coord{0, 0}, Covered{MarkerMine}}, ns[0])
	assert.Equal(t, Neighbor{Coord{0, 1}, Covered{}}, ns[1])
	assert.Equal(t, Neighbor{Coord{1, 0}, Covered{}}, ns[2])
}

func TestFirstClearIsAlwaysSafe(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	for seed := range uint64(20) {
		r := rand.New(rand.NewPCG(seed, seed+1))
		for row := range 4 {
			for col := range 5 {
				b, err := NewWithMineCount(4, 5, 11, r)
				require.NoError(t, err)
				b, err = b.ClearCell(row, col)
				require.NoError(t, err)

				st, err := b.CellState(row, col)
				require.NoError(t, err)
				exp, ok := st.(Exposed)
				require.True(t, ok)
				assert.False(t, exp.Exploded, "seed %d cell %d:%d", seed, row, col)
			}
		}
	}
}

func TestAllocationCountAndSafeZone(t *testing.T) {
	const (
		rows, cols = 8, 8
		mineCount  = 30
	)
	b, err := NewWithMineCount(rows, cols, mineCount, testRand())
	require.NoError(t, err)
	b, err = b.ClearCell(4, 4)
	require.NoError(t, err)
	require.True(t, b.MinesAllocated())

	placed := 0
	for i := range b.cells {
		if b.cells[i].Mine {
			placed++
			r, c := i/cols, i%cols
			assert.True(t, absDiff(r, 4) > 1 || absDiff(c, 4) > 1,
				"mine %d:%d inside safe zone", r, c)
		}
	}
	assert.Equal(t, mineCount, placed)
}

func TestClearCellExposesNeighborCount(t *testing.T) {
	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}, Coord{0, 1}))
	require.NoError(t, err)

	opened, err := b.ClearCell(1, 1)
	require.NoError(t, err)
	st, err := opened.CellState(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Exposed{Exploded: false, MinesNearby: 2}, st)

	// non-zero count, so nothing else was revealed
	for _, c := range []Coord{{0, 0}, {0, 1}, {1, 0}} {
		st, err := opened.CellState(c.Row, c.Col)
		require.NoError(t, err)
		assert.Equal(t, Covered{}, st, c.String())
	}
}

func TestClearCellExplodes(t *testing.T) {
	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}, Coord{0, 1}))
	require.NoError(t, err)

	dead, err := b.ClearCell(0, 0)
	require.NoError(t, err)
	st, err := dead.CellState(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Exposed{Exploded: true, MinesNearby: 1}, st)

	// an explosion exposes only the one cell
	for _, c := range []Coord{{0, 1}, {1, 0}, {1, 1}} {
		st, err := dead.CellState(c.Row, c.Col)
		require.NoError(t, err)
		assert.Equal(t, Covered{}, st, c.String())
	}
	assert.Equal(t, StatusLose, dead.GameInfo().Status)
}

func TestClearCellNoOpOnExposed(t *testing.T) {
	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}))
	require.NoError(t, err)
	once, err := b.ClearCell(1, 1)
	require.NoError(t, err)
	twice, err := once.ClearCell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, once.String(), twice.String())
	assert.Equal(t, once.GameInfo(), twice.GameInfo())
}

func TestFloodFillFullBoard(t *testing.T) {
	b, err := New(5, 6, testRand())
	require.NoError(t, err)
	b, err = b.ClearCell(0, 0)
	require.NoError(t, err)

	for row := range 5 {
		for col := range 6 {
			st, err := b.CellState(row, col)
			require.NoError(t, err)
			assert.Equal(t, Exposed{Exploded: false, MinesNearby: 0}, st)
		}
	}
	assert.Equal(t, StatusWin, b.GameInfo().Status)
}

func TestFloodFillStopsAtNumberedRing(t *testing.T) {
	// mine in the far corner of a 4x4: clearing 0:0 floods the zero
	// region and exposes the numbered ring around the mine without
	// opening the mine itself
	b, err := NewFromCells(4, 4, mined(4, 4, Coord{3, 3}))
	require.NoError(t, err)
	b, err = b.ClearCell(0, 0)
	require.NoError(t, err)

	for row := range 4 {
		for col := range 4 {
			st, err := b.CellState(row, col)
			require.NoError(t, err)
			if row == 3 && col == 3 {
				assert.Equal(t, Covered{}, st)
				continue
			}
			exp, ok := st.(Exposed)
			require.True(t, ok, "%d:%d should be exposed", row, col)
			if absDiff(row, 3) <= 1 && absDiff(col, 3) <= 1 {
				assert.Equal(t, uint8(1), exp.MinesNearby, "%d:%d", row, col)
			} else {
				assert.Equal(t, uint8(0), exp.MinesNearby, "%d:%d", row, col)
			}
		}
	}
}

func TestFloodFillSkipsFlaggedCells(t *testing.T) {
	b, err := NewFromCells(3, 3, mined(3, 3))
	require.NoError(t, err)
	b, err = b.MarkCell(1, 1, MarkerMine)
	require.NoError(t, err)
	b, err = b.MarkCell(2, 2, MarkerMaybe)
	require.NoError(t, err)
	b, err = b.ClearCell(0, 0)
	require.NoError(t, err)

	st, err := b.CellState(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Covered{MarkerMine}, st, "mine flag must block the cascade")

	st, err = b.CellState(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Exposed{MinesNearby: 0}, st, "maybe marker must not block the cascade")
}

func TestSnapshotsAreImmutable(t *testing.T) {
	before, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}))
	require.NoError(t, err)
	snapshot := before.String()

	after, err := before.ClearCell(1, 1)
	require.NoError(t, err)
	_, err = after.MarkCell(0, 0, MarkerMine)
	require.NoError(t, err)

	assert.Equal(t, snapshot, before.String())
	st, err := before.CellState(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Covered{}, st)
}

func TestMarkCell(t *testing.T) {
	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}))
	require.NoError(t, err)

	b, err = b.MarkCell(0, 0, MarkerMine)
	require.NoError(t, err)
	st, err := b.CellState(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Covered{MarkerMine}, st)

	// re-applying the same marker is a legal no-op
	same, err := b.MarkCell(0, 0, MarkerMine)
	require.NoError(t, err)
	assert.Equal(t, b.String(), same.String())

	b, err = b.MarkCell(0, 0, MarkerNone)
	require.NoError(t, err)
	st, err = b.CellState(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Covered{}, st)

	b, err = b.ClearCell(1, 1)
	require.NoError(t, err)
	_, err = b.MarkCell(1, 1, MarkerMine)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = b.MarkCell(5, 5, MarkerMine)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestClearNeighbors(t *testing.T) {
	layout := []Coord{{0, 0}}

	setup := func(t *testing.T) Board {
		b, err := NewFromCells(3, 3, mined(3, 3, layout...))
		require.NoError(t, err)
		b, err = b.ClearCell(1, 1) // exposes 1:1 with count 1
		require.NoError(t, err)
		return b
	}

	t.Run("flag count mismatch is a no-op", func(t *testing.T) {
		b := setup(t)
		after, err := b.ClearNeighbors(1, 1)
		require.NoError(t, err)
		assert.Equal(t, b.String(), after.String())
	})

	t.Run("covered target is a no-op", func(t *testing.T) {
		b := setup(t)
		after, err := b.ClearNeighbors(2, 2)
		require.NoError(t, err)
		assert.Equal(t, b.String(), after.String())
	})

	t.Run("correct flag reveals the rest", func(t *testing.T) {
		b := setup(t)
		b, err := b.MarkCell(0, 0, MarkerMine)
		require.NoError(t, err)
		b, err = b.ClearNeighbors(1, 1)
		require.NoError(t, err)

		st, err := b.CellState(0, 0)
		require.NoError(t, err)
		assert.Equal(t, Covered{MarkerMine}, st, "flagged cell stays covered")
		for _, c := range []Coord{{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}} {
			st, err := b.CellState(c.Row, c.Col)
			require.NoError(t, err)
			_, exposed := st.(Exposed)
			assert.True(t, exposed, "%s should be exposed", c)
		}
		assert.Equal(t, StatusInProgress, b.GameInfo().Status)
	})

	t.Run("wrong flag explodes the mine", func(t *testing.T) {
		b := setup(t)
		b, err := b.MarkCell(0, 1, MarkerMine) // wrong cell
		require.NoError(t, err)
		b, err = b.ClearNeighbors(1, 1)
		require.NoError(t, err)

		st, err := b.CellState(0, 0)
		require.NoError(t, err)
		assert.Equal(t, Exposed{Exploded: true, MinesNearby: 0}, st)
		assert.Equal(t, StatusLose, b.GameInfo().Status)
	})

	t.Run("out of bounds", func(t *testing.T) {
		b := setup(t)
		_, err := b.ClearNeighbors(-1, 0)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestGameInfo(t *testing.T) {
	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}, Coord{0, 1}))
	require.NoError(t, err)
	assert.Equal(t,
		GameInfo{NumMines: 2, Status: StatusInProgress},
		b.GameInfo(),
	)

	b, err = b.MarkCell(0, 0, MarkerMine)
	require.NoError(t, err)
	assert.Equal(t, 1, b.GameInfo().NumMarkedMines)

	b, err = b.MarkCell(0, 1, MarkerMine)
	require.NoError(t, err)
	b, err = b.ClearCell(1, 0)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, b.GameInfo().Status, "1:1 still covered")

	b, err = b.ClearCell(1, 1)
	require.NoError(t, err)
	assert.Equal(t,
		GameInfo{NumMines: 2, NumMarkedMines: 2, Status: StatusWin},
		b.GameInfo(),
	)
}

func TestGameInfoExplodedCountsAsMarked(t *testing.T) {
	b, err := NewFromCells(2, 2, mined(2, 2, Coord{0, 0}))
	require.NoError(t, err)
	b, err = b.ClearCell(0, 0)
	require.NoError(t, err)

	info := b.GameInfo()
	assert.Equal(t, 1, info.NumExploded)
	assert.Equal(t, 1, info.NumMarkedMines)
	assert.Equal(t, StatusLose, info.Status)
}

func TestRenderedGrid(t *testing.T) {
	b, err := NewFromCells(2, 3, mined(2, 3, Coord{0, 0}))
	require.NoError(t, err)
	b, err = b.MarkCell(0, 0, MarkerMine)
	require.NoError(t, err)
	b, err = b.MarkCell(0, 1, MarkerMaybe)
	require.NoError(t, err)
	assert.Equal(t, "* ?   \n      \n", b.String())

	// the cascade from 1:2 exposes the maybe-marked cell but leaves the
	// flag and the untouched corner covered
	b, err = b.ClearCell(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "* 1 0 \n  1 0 \n", b.String())
}
