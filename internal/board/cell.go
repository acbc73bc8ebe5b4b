package board

import (
	"fmt"
	"strconv"
)

// Marker is a player annotation on a covered cell.
type Marker uint8

const (
	MarkerNone Marker = iota
	MarkerMine
	MarkerMaybe
)

func (m Marker) String() string {
	switch m {
	case MarkerNone:
		return "none"
	case MarkerMine:
		return "mine"
	case MarkerMaybe:
		return "maybe"
	default:
		return "invalid"
	}
}

func ParseMarker(s string) (Marker, error) {
	switch s {
	case "none":
		return MarkerNone, nil
	case "mine":
		return MarkerMine, nil
	case "maybe":
		return MarkerMaybe, nil
	default:
		return 0, fmt.Errorf("invalid marker %q", s)
	}
}

// CellState is the player-visible state of one cell: either [Covered] or
// [Exposed]. The set of variants is closed, so a type switch over both is
// exhaustive.
type CellState interface {
	fmt.Stringer
	cellState()
}

// Covered is a cell that has not been revealed yet. Markers only exist on
// covered cells; an exposed cell has no marker field to set.
type Covered struct {
	Marker Marker
}

// Exposed is a revealed cell. Exploded is true iff the cell had a mine when
// it was revealed. MinesNearby is the number of mined cells in the Moore
// neighborhood, fixed at exposure time.
type Exposed struct {
	Exploded    bool
	MinesNearby uint8
}

func (Covered) cellState() {}
func (Exposed) cellState() {}

func (c Covered) String() string {
	switch c.Marker {
	case MarkerMine:
		return "*"
	case MarkerMaybe:
		return "?"
	default:
		return " "
	}
}

func (e Exposed) String() string {
	if e.Exploded {
		return "!"
	}
	return strconv.Itoa(int(e.MinesNearby))
}

// Cell pairs the ground truth with the player-visible state. Boards hand
// out cells only through queries; the Mine flag of a covered cell is never
// observable through the public API.
type Cell struct {
	Mine  bool
	State CellState
}

// Coord addresses a cell by grid position.
type Coord struct {
	Row, Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Neighbor is a neighboring coordinate paired with its current state.
type Neighbor struct {
	Coord
	State CellState
}
