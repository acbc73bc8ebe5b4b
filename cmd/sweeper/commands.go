package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vancomm/minesweep/internal/board"
	"github.com/vancomm/minesweep/internal/session"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // fetch state
	"o": 2, // open (clear) a cell
	"c": 2, // chord-clear around a cell
	"m": 3, // set a marker
	"u": 0, // undo
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func executeCommand(s *session.Session, c string) error {
	parts := strings.Split(strings.TrimSpace(c), " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return nil
	case "o":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		return s.Apply(func(b board.Board) (board.Board, error) {
			return b.ClearCell(row, col)
		})
	case "c":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		return s.Apply(func(b board.Board) (board.Board, error) {
			return b.ClearNeighbors(row, col)
		})
	case "m":
		row, col, err := parseRowCol(parts[1:3])
		if err != nil {
			return err
		}
		marker, err := board.ParseMarker(parts[3])
		if err != nil {
			return err
		}
		return s.Apply(func(b board.Board) (board.Board, error) {
			return b.MarkCell(row, col, marker)
		})
	case "u":
		return s.Undo()
	}
	return nil
}
