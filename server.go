package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bodul/xwplayer/puzzle"
	"github.com/bodul/xwplayer/source"
)

const maxEventSize = 4 << 10 // 4 Ko

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
	// Cleanup stale entries every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, b := range rl.visitors {
				if time.Since(b.lastSeen) > 5*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	elapsed := time.Since(b.lastSeen)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		b.tokens = min(b.tokens+refill*rl.rate, rl.rate)
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Options tunes the server.
type Options struct {
	Alphabet        puzzle.Alphabet
	ClockInterval   time.Duration
	GenerateTimeout time.Duration
	CreatePerMinute int
	InputPerSecond  int
}

func (o Options) withDefaults() Options {
	d := DefaultConfig()
	if o.ClockInterval <= 0 {
		o.ClockInterval = d.ClockInterval.Duration
	}
	if o.GenerateTimeout <= 0 {
		o.GenerateTimeout = d.GenerateTimeout.Duration
	}
	if o.CreatePerMinute <= 0 {
		o.CreatePerMinute = d.Limits.CreatePerMinute
	}
	if o.InputPerSecond <= 0 {
		o.InputPerSecond = d.Limits.InputPerSecond
	}
	return o
}

// Server is the main HTTP server.
type Server struct {
	mux       *http.ServeMux
	store     *Store
	catalog   *source.Catalog
	generator source.Source
	opts      Options
	hub       *Hub
	createRL  *rateLimiter
	inputRL   *rateLimiter
	pending   sync.WaitGroup
}

// NewServer creates a configured HTTP server. generator may be nil, in which
// case sessions can only be started from the catalog or stored puzzles.
func NewServer(store *Store, catalog *source.Catalog, generator source.Source, opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{
		mux:       http.NewServeMux(),
		store:     store,
		catalog:   catalog,
		generator: generator,
		opts:      opts,
		hub:       NewHub(),
		createRL:  newRateLimiter(opts.CreatePerMinute, time.Minute),
		inputRL:   newRateLimiter(opts.InputPerSecond, time.Second),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Puzzle sources
	s.mux.HandleFunc("GET /api/levels", s.handleListLevels)
	s.mux.HandleFunc("GET /api/tiers", s.handleListTiers)
	s.mux.HandleFunc("GET /api/puzzles", s.handleListPuzzles)
	s.mux.HandleFunc("GET /api/puzzles/{id}", s.handleGetPuzzle)

	// Session API
	s.mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/start", s.handleStartSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/join", s.handleJoinSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/input", s.handleInput)
	s.mux.HandleFunc("POST /api/sessions/{id}/quit", s.handleQuit)
	s.mux.HandleFunc("GET /api/sessions/{id}/events", s.handleSessionEvents)
	s.mux.HandleFunc("GET /api/sessions/{id}/ws", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; connect-src 'self'")
	s.mux.ServeHTTP(w, r)
}

// Wait blocks until background puzzle generations have finished.
func (s *Server) Wait() {
	s.pending.Wait()
}

// --- Puzzle handlers ---

type levelSummary struct {
	Index      int               `json:"index"`
	Title      string            `json:"title"`
	Dimensions int               `json:"dimensions"`
	Words      int               `json:"words"`
	Difficulty puzzle.Difficulty `json:"difficulty"`
}

// GET /api/levels — catalog levels, without their answers.
func (s *Server) handleListLevels(w http.ResponseWriter, _ *http.Request) {
	levels := s.catalog.Levels()
	list := make([]levelSummary, len(levels))
	for i, l := range levels {
		list[i] = levelSummary{
			Index:      i,
			Title:      l.Title,
			Dimensions: l.Dimensions,
			Words:      len(l.Words),
			Difficulty: source.TierOfSize(l.Dimensions),
		}
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/tiers — difficulty tiers.
func (s *Server) handleListTiers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, source.Tiers)
}

// puzzleSummary describes a stored puzzle without its answers.
type puzzleSummary struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Dimensions int               `json:"dimensions"`
	Words      int               `json:"words"`
	Difficulty puzzle.Difficulty `json:"difficulty,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type clueSummary struct {
	Text      string           `json:"text"`
	Row       int              `json:"row"`
	Col       int              `json:"col"`
	Direction puzzle.Direction `json:"direction"`
	Length    int              `json:"length"`
}

func summarize(p *Puzzle) puzzleSummary {
	return puzzleSummary{
		ID:         p.ID,
		Title:      p.Title,
		Dimensions: p.Dimensions,
		Words:      len(p.Words),
		Difficulty: p.Difficulty,
		CreatedAt:  p.CreatedAt,
	}
}

// GET /api/puzzles — generated puzzles, most recent first.
func (s *Server) handleListPuzzles(w http.ResponseWriter, _ *http.Request) {
	puzzles := s.store.ListPuzzles()
	list := make([]puzzleSummary, len(puzzles))
	for i, p := range puzzles {
		list[i] = summarize(p)
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/puzzles/{id} — a single generated puzzle with its clues, but not
// the words they lead to.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	p := s.store.GetPuzzle(r.PathValue("id"))
	if p == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	clues := make([]clueSummary, len(p.Words))
	for i, word := range p.Words {
		clues[i] = clueSummary{
			Text:      word.Clue,
			Row:       word.Row,
			Col:       word.Col,
			Direction: word.Direction,
			Length:    utf8.RuneCountInString(word.Text),
		}
	}
	writeJSON(w, http.StatusOK, struct {
		puzzleSummary
		Clues []clueSummary `json:"clues"`
	}{summarize(p), clues})
}

// --- Session handlers ---

// startRequest picks the puzzle for a session. Exactly one field is set.
type startRequest struct {
	Level      *int   `json:"level"`
	PuzzleID   string `json:"puzzle_id"`
	Difficulty string `json:"difficulty"`
}

func (req startRequest) valid() bool {
	n := 0
	if req.Level != nil {
		n++
	}
	if req.PuzzleID != "" {
		n++
	}
	if req.Difficulty != "" {
		n++
	}
	return n == 1
}

// POST /api/sessions — create a session and start a puzzle in it.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.createRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	p, ok := s.plan(w, r)
	if !ok {
		return
	}

	game := s.store.CreateGame(s.opts.Alphabet, s.opts.ClockInterval)
	game.OnTick(func(st puzzle.Session) {
		s.hub.Publish(game.ID, tickPayload(st.Elapsed))
	})
	s.start(w, game, p, http.StatusCreated)
}

// POST /api/sessions/{id}/start — replace the puzzle of an existing session.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if !s.createRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	p, ok := s.plan(w, r)
	if !ok {
		return
	}
	s.start(w, game, p, http.StatusOK)
}

// startPlan is a resolved start request. A nil desc means the puzzle has to be
// generated.
type startPlan struct {
	desc       *puzzle.Descriptor
	difficulty puzzle.Difficulty
}

// plan decodes and resolves a start request, replying with an error if it
// cannot be served.
func (s *Server) plan(w http.ResponseWriter, r *http.Request) (startPlan, bool) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		jsonError(w, "Un seul champ parmi 'level', 'puzzle_id' ou 'difficulty' est requis", http.StatusBadRequest)
		return startPlan{}, false
	}

	switch {
	case req.Level != nil:
		desc, err := s.catalog.Level(*req.Level)
		if err != nil {
			jsonError(w, "Niveau introuvable", http.StatusNotFound)
			return startPlan{}, false
		}
		return startPlan{desc: desc, difficulty: source.TierOfSize(desc.Dimensions)}, true

	case req.PuzzleID != "":
		p := s.store.GetPuzzle(req.PuzzleID)
		if p == nil {
			jsonError(w, "Grille introuvable", http.StatusNotFound)
			return startPlan{}, false
		}
		desc := p.Descriptor
		return startPlan{desc: &desc, difficulty: p.Difficulty}, true
	}

	d, err := source.ParseDifficulty(req.Difficulty)
	if err != nil {
		jsonError(w, "Difficulté inconnue", http.StatusBadRequest)
		return startPlan{}, false
	}
	if s.generator == nil {
		jsonError(w, "Génération de grilles non configurée", http.StatusServiceUnavailable)
		return startPlan{}, false
	}
	return startPlan{difficulty: d}, true
}

// start loads the planned puzzle into game and writes the resulting state.
// Generated puzzles are produced in the background; the response then carries
// the loading state with 202 Accepted.
func (s *Server) start(w http.ResponseWriter, game *GameSession, p startPlan, code int) {
	if p.desc == nil {
		view := game.Update(func(st puzzle.Session) puzzle.Session { return st.Loading(p.difficulty) })
		s.broadcastState(game.ID, "state", "", view)
		s.generate(game, p.difficulty)
		writeJSON(w, http.StatusAccepted, view)
		return
	}

	view := game.Update(func(st puzzle.Session) puzzle.Session { return st.Start(*p.desc, p.difficulty) })
	s.broadcastState(game.ID, "state", "", view)
	writeJSON(w, code, view)
}

// generate fetches a puzzle of tier d for game in the background. The result
// is dropped if the session left the loading state in the meantime.
func (s *Server) generate(game *GameSession, d puzzle.Difficulty) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.opts.GenerateTimeout)
		defer cancel()

		loading := func(st puzzle.Session) bool {
			return st.Status == puzzle.StatusLoading && st.Difficulty == d
		}

		desc, err := s.generator.Generate(ctx, d)
		if err != nil {
			log.Printf("Échec de la génération (partie %s, niveau %s) : %v", game.ID, d, err)
			view := game.Update(func(st puzzle.Session) puzzle.Session {
				if !loading(st) {
					return st
				}
				return st.Fail()
			})
			s.hub.Publish(game.ID, message("load_failed", "difficulty", string(d)))
			s.broadcastState(game.ID, "state", "", view)
			return
		}

		p := s.store.SavePuzzle(&Puzzle{Difficulty: d, Descriptor: *desc})
		log.Printf("Grille %s générée (%q, %d mots)", p.ID, p.Title, len(p.Words))

		view := game.Update(func(st puzzle.Session) puzzle.Session {
			if !loading(st) {
				return st
			}
			return st.Start(*desc, d)
		})
		s.broadcastState(game.ID, "state", "", view)
	}()
}

// sessionSummary is one line of the session listing.
type sessionSummary struct {
	ID         string            `json:"id"`
	Status     puzzle.Status     `json:"status"`
	Title      string            `json:"title,omitempty"`
	Difficulty puzzle.Difficulty `json:"difficulty,omitempty"`
	Players    int               `json:"players"`
	Clock      string            `json:"clock"`
	CreatedAt  time.Time         `json:"created_at"`
}

// GET /api/sessions — open sessions, most recent first.
func (s *Server) handleListSessions(w http.ResponseWriter, _ *http.Request) {
	games := s.store.ListGames()
	list := make([]sessionSummary, len(games))
	for i, g := range games {
		v := g.View()
		list[i] = sessionSummary{
			ID:         g.ID,
			Status:     v.Status,
			Title:      v.Title,
			Difficulty: v.Difficulty,
			Players:    len(v.Players),
			Clock:      puzzle.FormatElapsed(v.Elapsed),
			CreatedAt:  g.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/sessions/{id} — get current session state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, game.View())
}

// POST /api/sessions/{id}/join — join a session with a pseudo.
func (s *Server) handleJoinSession(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	var req struct {
		Pseudo string `json:"pseudo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pseudo == "" {
		jsonError(w, "Champ 'pseudo' requis", http.StatusBadRequest)
		return
	}

	pseudo := sanitizePseudo(req.Pseudo)
	if pseudo == "" {
		jsonError(w, "Pseudo invalide", http.StatusBadRequest)
		return
	}

	player := game.AddPlayer(pseudo)
	s.hub.Publish(game.ID, message("player_joined", "pseudo", player.Pseudo, "color", player.Color))

	writeJSON(w, http.StatusOK, player)
}

// POST /api/sessions/{id}/input — apply a player event.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	if !s.inputRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventSize))
	if err != nil {
		jsonError(w, "Requête trop volumineuse", http.StatusRequestEntityTooLarge)
		return
	}
	ev, err := decodeEvent(data)
	if err != nil {
		jsonError(w, "Événement invalide", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.applyEvent(game, ev))
}

// applyEvent updates game with ev and notifies subscribers.
func (s *Server) applyEvent(game *GameSession, ev inputEvent) gameView {
	view := game.Update(ev.apply)
	s.broadcastState(game.ID, "state", ev.Pseudo, view)
	return view
}

// POST /api/sessions/{id}/quit — abandon the current puzzle.
func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}
	view := game.Update(puzzle.Session.Quit)
	s.broadcastState(game.ID, "state", "", view)
	writeJSON(w, http.StatusOK, view)
}

// GET /api/sessions/{id}/events — SSE stream.
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	playerPseudo := sanitizePseudo(r.URL.Query().Get("pseudo"))

	s.hub.ServeSSE(w, r, game.ID, func(sub *subscriber) {
		// Send the current state on connect.
		if data, err := statePayload("state", "", game.View()); err == nil {
			sub.send(string(data))
		}
	}, func() {
		s.leave(game, playerPseudo)
	})
}

// leave removes a disconnected player and tells the others.
func (s *Server) leave(game *GameSession, pseudo string) {
	if pseudo == "" {
		return
	}
	game.RemovePlayer(pseudo)
	s.hub.Publish(game.ID, message("player_left", "pseudo", pseudo))
}

func (s *Server) broadcastState(sessionID, kind, pseudo string, view gameView) {
	data, err := statePayload(kind, pseudo, view)
	if err != nil {
		log.Printf("Encodage de l'état impossible (partie %s) : %v", sessionID, err)
		return
	}
	s.hub.Publish(sessionID, string(data))
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizePseudo(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 20 {
		s = string([]rune(s)[:20])
	}
	return s
}

// clientIP returns the remote host without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// isClosed reports whether err only means the peer went away.
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
