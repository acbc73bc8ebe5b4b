package main

import (
	"errors"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweep/internal/board"
	"github.com/vancomm/minesweep/internal/session"
)

var (
	dec = schema.NewDecoder()
	rnd = rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count"`
}

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

type MarkParams struct {
	Row    int    `schema:"row,required"`
	Col    int    `schema:"col,required"`
	Marker string `schema:"marker,required"`
}

func wrapError(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func writeBadRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	if _, err := sendJSON(w, wrapError(err)); err != nil {
		log.Error(err)
	}
}

// writeEngineError maps engine errors onto status codes: precondition
// violations are the client's fault, anything else is ours.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrOutOfBounds),
		errors.Is(err, board.ErrInvalidOperation),
		errors.Is(err, board.ErrInvalidDimensions):
		writeBadRequest(w, err)
	case errors.Is(err, session.ErrNoHistory):
		w.WriteHeader(http.StatusConflict)
		if _, err := sendJSON(w, wrapError(err)); err != nil {
			log.Error(err)
		}
	default:
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
	}
}

func fetchSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := sessions.Get(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	if _, err := sendJSON(w, map[string]string{"status": "ok"}); err != nil {
		log.Error(err)
	}
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		writeBadRequest(w, err)
		return
	}
	b, err := board.NewWithMineCount(params.Rows, params.Cols, params.MineCount, rnd)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s := sessions.Create(b)
	log.Debug("created session ", s.Id)
	if _, err := sendJSON(w, makeSessionDto(s)); err != nil {
		log.Error(err)
	}
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	if _, err := sendJSON(w, makeSessionDto(s)); err != nil {
		log.Error(err)
	}
}

func handleGetCell(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	var pos PosParams
	if err := dec.Decode(&pos, r.URL.Query()); err != nil {
		writeBadRequest(w, err)
		return
	}
	b := s.Board()
	st, err := b.CellState(pos.Row, pos.Col)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	ns, err := b.Neighbors(pos.Row, pos.Col)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if _, err := sendJSON(w, makeCellDto(pos.Row, pos.Col, st, ns)); err != nil {
		log.Error(err)
	}
}

func handleClear(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	var pos PosParams
	if err := dec.Decode(&pos, r.URL.Query()); err != nil {
		writeBadRequest(w, err)
		return
	}
	err := s.Apply(func(b board.Board) (board.Board, error) {
		return b.ClearCell(pos.Row, pos.Col)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if _, err := sendJSON(w, makeSessionDto(s)); err != nil {
		log.Error(err)
	}
}

func handleChord(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	var pos PosParams
	if err := dec.Decode(&pos, r.URL.Query()); err != nil {
		writeBadRequest(w, err)
		return
	}
	err := s.Apply(func(b board.Board) (board.Board, error) {
		return b.ClearNeighbors(pos.Row, pos.Col)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if _, err := sendJSON(w, makeSessionDto(s)); err != nil {
		log.Error(err)
	}
}

func handleMark(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	var params MarkParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		writeBadRequest(w, err)
		return
	}
	marker, err := board.ParseMarker(params.Marker)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	err = s.Apply(func(b board.Board) (board.Board, error) {
		return b.MarkCell(params.Row, params.Col, marker)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if _, err := sendJSON(w, makeSessionDto(s)); err != nil {
		log.Error(err)
	}
}

func handleUndo(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	if err := s.Undo(); err != nil {
		writeEngineError(w, err)
		return
	}
	if _, err := sendJSON(w, makeSessionDto(s)); err != nil {
		log.Error(err)
	}
}

func handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if _, ok := fetchSession(w, r); !ok {
		return
	}
	sessions.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// handleBatch accepts newline-separated commands in the request body:
//
//	g             // no-op, fetch state
//	o row col     // clear a cell
//	c row col     // chord-clear around a cell
//	m row col mk  // set a marker (none|mine|maybe)
//	u             // undo the last move
//
// Commands run in order. On a malformed command, interpretation stops and
// the response carries the offending line and an error message with status
// [http.StatusBadRequest]; moves already applied stay applied.
func handleBatch(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	lines := strings.TrimSpace(string(body))
	for i, c := range byPiece(lines, "\n") {
		if err := executeCommand(s, c); err != nil {
			payload := map[string]any{
				"loc":   i,
				"error": err.Error(),
			}
			w.WriteHeader(http.StatusBadRequest)
			if _, err := sendJSON(w, payload); err != nil {
				log.Error(err)
			}
			return
		}
	}
	if _, err := sendJSON(w, makeSessionDto(s)); err != nil {
		log.Error(err)
	}
}
