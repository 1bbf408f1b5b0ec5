package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// GET /api/sessions/{id}/ws — bidirectional play: the client sends events,
// the server pushes every state change of the session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Printf("WebSocket refusé (partie %s) : %v", game.ID, err)
		return
	}

	pseudo := sanitizePseudo(r.URL.Query().Get("pseudo"))
	if pseudo != "" {
		player := game.AddPlayer(pseudo)
		s.hub.Publish(game.ID, message("player_joined", "pseudo", player.Pseudo, "color", player.Color))
	}

	sub := s.hub.Subscribe(game.ID)
	if data, err := statePayload("state", "", game.View()); err == nil {
		sub.send(string(data))
	}

	go writePump(conn, sub)
	s.readPump(conn, sub, game, pseudo, clientIP(r))

	s.hub.Unsubscribe(sub)
	s.leave(game, pseudo)
}

// readPump applies incoming events until the connection fails.
func (s *Server) readPump(conn *websocket.Conn, sub *subscriber, game *GameSession, pseudo, ip string) {
	conn.SetReadLimit(maxEventSize)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && !isClosed(err) {
				log.Printf("WebSocket interrompu (partie %s) : %v", game.ID, err)
			}
			return
		}

		if !s.inputRL.allow(ip) {
			sub.send(message("error", "error", "Trop de requêtes, réessayez plus tard"))
			continue
		}
		ev, err := decodeEvent(data)
		if err != nil {
			sub.send(message("error", "error", "Événement invalide"))
			continue
		}
		if ev.Pseudo == "" {
			ev.Pseudo = pseudo
		}
		s.applyEvent(game, ev)
	}
}

// writePump is the only writer on conn. It stops when sub is unsubscribed or
// a write fails.
func writePump(conn *websocket.Conn, sub *subscriber) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.events:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
