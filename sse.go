package main

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

const (
	subscriberBuffer = 32
	sseHeartbeat     = 30 * time.Second
)

// subscriber receives the encoded events of one session, for an SSE stream or
// a websocket.
type subscriber struct {
	session string
	events  chan string
}

// send queues msg without blocking. It reports false if the subscriber is too
// slow.
func (sub *subscriber) send(msg string) bool {
	select {
	case sub.events <- msg:
		return true
	default:
		return false
	}
}

// Hub routes session events to the subscribers of that session.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*subscriber]struct{}
}

// NewHub creates a hub without subscribers.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*subscriber]struct{})}
}

// Subscribe starts delivering the events of session to a new subscriber.
func (h *Hub) Subscribe(session string) *subscriber {
	sub := &subscriber{
		session: session,
		events:  make(chan string, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.sessions[session]
	if subs == nil {
		subs = make(map[*subscriber]struct{})
		h.sessions[session] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Unsubscribe stops delivery and closes the subscriber's channel. It is safe
// to call more than once.
func (h *Hub) Unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.sessions[sub.session]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.sessions, sub.session)
	}
	close(sub.events)
}

// Publish hands msg to every subscriber of session. Subscribers whose buffer
// is full miss it.
func (h *Hub) Publish(session, msg string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.sessions[session] {
		sub.send(msg)
	}
}

// Subscribers returns the number of subscribers of session.
func (h *Hub) Subscribers(session string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[session])
}

// eventName is the SSE event name of an encoded session event: its type
// field, or "message" when it has none.
func eventName(msg string) string {
	if t := gjson.Get(msg, "type"); t.Type == gjson.String && t.Str != "" {
		return t.Str
	}
	return "message"
}

// writeEvent writes msg as one server-sent event numbered id. Payloads are
// compact JSON and never span lines.
func writeEvent(w io.Writer, id int, msg string) error {
	_, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", id, eventName(msg), msg)
	return err
}

// ServeSSE streams the events of session until the request ends. onConnect
// runs once the stream is subscribed, so anything it sends is delivered first.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, session string, onConnect func(*subscriber), onDisconnect func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming non supporté", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.Subscribe(session)
	defer func() {
		h.Unsubscribe(sub)
		if onDisconnect != nil {
			onDisconnect()
		}
	}()
	if onConnect != nil {
		onConnect(sub)
	}

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for id := 1; ; {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub.events:
			if !ok {
				return
			}
			if err := writeEvent(w, id, msg); err != nil {
				return
			}
			id++
		case <-heartbeat.C:
			if _, err := io.WriteString(w, ": heartbeat\n\n"); err != nil {
				return
			}
		}
		flusher.Flush()
	}
}
