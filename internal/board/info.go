package board

type GameStatus uint8

const (
	StatusInProgress GameStatus = iota
	StatusWin
	StatusLose
)

func (s GameStatus) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWin:
		return "win"
	case StatusLose:
		return "lose"
	default:
		return "invalid"
	}
}

// GameInfo is derived from a board in one pass; nothing here is stored.
type GameInfo struct {
	NumMines       int
	NumMarkedMines int
	NumExploded    int
	Status         GameStatus
}

// GameInfo reports the mine tally and game status. An exploded cell counts
// as a marked mine. Lose wins over Win: a board with an explosion is lost
// no matter what else is on it.
func (b Board) GameInfo() GameInfo {
	info := GameInfo{NumMines: b.mines}
	won := true
	for i := range b.cells {
		switch s := b.cells[i].State.(type) {
		case Covered:
			if s.Marker == MarkerMine {
				info.NumMarkedMines++
			}
			if !b.cells[i].Mine || s.Marker != MarkerMine {
				won = false
			}
		case Exposed:
			if s.Exploded {
				info.NumExploded++
				info.NumMarkedMines++
			}
		}
	}
	switch {
	case info.NumExploded > 0:
		info.Status = StatusLose
	case won:
		info.Status = StatusWin
	default:
		info.Status = StatusInProgress
	}
	return info
}
