package main

import (
	"time"

	"github.com/vancomm/minesweep/internal/board"
	"github.com/vancomm/minesweep/internal/session"
)

type GameSessionDto struct {
	SessionId   string     `json:"session_id"`
	Rows        int        `json:"rows"`
	Cols        int        `json:"cols"`
	MineCount   int        `json:"mine_count"`
	Grid        string     `json:"grid"`
	MarkedMines int        `json:"marked_mines"`
	Exploded    int        `json:"exploded"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

func makeSessionDto(s *session.Session) GameSessionDto {
	b := s.Board()
	info := b.GameInfo()
	dto := GameSessionDto{
		SessionId:   s.Id,
		Rows:        b.NumRows(),
		Cols:        b.NumColumns(),
		MineCount:   info.NumMines,
		Grid:        b.String(),
		MarkedMines: info.NumMarkedMines,
		Exploded:    info.NumExploded,
		Status:      info.Status.String(),
		StartedAt:   s.StartedAt,
	}
	if endedAt := s.EndedAt(); !endedAt.IsZero() {
		dto.EndedAt = &endedAt
	}
	return dto
}

type NeighborDto struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	State string `json:"state"`
}

type CellDto struct {
	Row         int           `json:"row"`
	Col         int           `json:"col"`
	Covered     bool          `json:"covered"`
	Marker      string        `json:"marker,omitempty"`
	Exploded    bool          `json:"exploded,omitempty"`
	MinesNearby *uint8        `json:"mines_nearby,omitempty"`
	Neighbors   []NeighborDto `json:"neighbors"`
}

func makeCellDto(row, col int, st board.CellState, ns []board.Neighbor) CellDto {
	dto := CellDto{Row: row, Col: col}
	switch s := st.(type) {
	case board.Covered:
		dto.Covered = true
		dto.Marker = s.Marker.String()
	case board.Exposed:
		dto.Exploded = s.Exploded
		nearby := s.MinesNearby
		dto.MinesNearby = &nearby
	}
	for _, n := range ns {
		dto.Neighbors = append(dto.Neighbors, NeighborDto{
			Row: n.Row, Col: n.Col, State: n.State.String(),
		})
	}
	return dto
}
