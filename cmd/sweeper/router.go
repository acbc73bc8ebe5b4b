package main

import "net/http"

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", handleStatus)

	mux.HandleFunc("POST /v1/game", handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", handleGetGame)
	mux.HandleFunc("GET /v1/game/{id}/cell", handleGetCell)
	mux.HandleFunc("POST /v1/game/{id}/clear", handleClear)
	mux.HandleFunc("POST /v1/game/{id}/chord", handleChord)
	mux.HandleFunc("POST /v1/game/{id}/mark", handleMark)
	mux.HandleFunc("POST /v1/game/{id}/undo", handleUndo)
	mux.HandleFunc("POST /v1/game/{id}/batch", handleBatch)
	mux.HandleFunc("DELETE /v1/game/{id}", handleDeleteGame)

	mux.HandleFunc("/v1/game/{id}/connect", handleConnectWs)

	handler := useMiddleware(mux,
		corsMiddleware,
		loggingMiddleware,
	)

	return handler
}
