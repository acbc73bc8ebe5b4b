package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

func handleConnectWs(w http.ResponseWriter, r *http.Request) {
	s, ok := fetchSession(w, r)
	if !ok {
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)
		for _, cmd := range byPiece(text, "\n") {
			if err := executeCommand(s, cmd); err != nil {
				log.Error("command: ", err)
				if err := c.WriteJSON(wrapError(err)); err != nil {
					log.Error("write: ", err)
				}
				return
			}
		}
		if err := c.WriteJSON(makeSessionDto(s)); err != nil {
			log.Error("write: ", err)
			break
		}
		log.Debug("\t< <session data>")
	}
}
