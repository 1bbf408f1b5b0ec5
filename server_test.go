package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/bodul/xwplayer/puzzle"
	"github.com/bodul/xwplayer/source"
)

// testPuzzle is a 5x5 grid with four words:
//
//	C A T
//	A . E
//	R E D
func testPuzzle() puzzle.Descriptor {
	return puzzle.Descriptor{
		Title:      "Test",
		Dimensions: 5,
		Words: []puzzle.Word{
			{Text: "CAT", Clue: "Pet", Row: 0, Col: 0, Direction: puzzle.Across},
			{Text: "CAR", Clue: "Vehicle", Row: 0, Col: 0, Direction: puzzle.Down},
			{Text: "TED", Clue: "Talk", Row: 0, Col: 2, Direction: puzzle.Down},
			{Text: "RED", Clue: "Colour", Row: 2, Col: 0, Direction: puzzle.Across},
		},
	}
}

// fakeGenerator hands out testPuzzle, or err. When release is set it blocks
// until release is closed.
type fakeGenerator struct {
	err     error
	release chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, _ puzzle.Difficulty) (*puzzle.Descriptor, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	p := testPuzzle()
	return &p, nil
}

func newTestServer(generator source.Source) *Server {
	catalog := source.NewCatalog([]puzzle.Descriptor{testPuzzle()})
	return NewServer(NewStore(), catalog, generator, Options{
		Alphabet:        puzzle.Latin,
		ClockInterval:   time.Hour,
		CreatePerMinute: 100,
		InputPerSecond:  100,
	})
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) gameView {
	t.Helper()
	var v gameView
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return v
}

func createLevelSession(t *testing.T, srv *Server) gameView {
	t.Helper()
	w := do(t, srv, "POST", "/api/sessions", `{"level":0}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeView(t, w)
}

func TestListLevels(t *testing.T) {
	srv := newTestServer(nil)

	w := do(t, srv, "GET", "/api/levels", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "CAT") {
		t.Fatal("level listing must not contain answers")
	}
	levels := gjson.Parse(body).Array()
	if len(levels) != 1 {
		t.Fatalf("expected 1 level, got %d", len(levels))
	}
	if got := levels[0].Get("words").Int(); got != 4 {
		t.Fatalf("expected 4 words, got %d", got)
	}
	if got := levels[0].Get("difficulty").String(); got != string(puzzle.Easy) {
		t.Fatalf("expected easy, got %s", got)
	}
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(nil)

	w := do(t, srv, "GET", "/api/sessions", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected an empty list, got %d %s", w.Code, w.Body.String())
	}

	game := createLevelSession(t, srv)
	do(t, srv, "POST", "/api/sessions/"+game.ID+"/join", `{"pseudo":"ann"}`)

	w = do(t, srv, "GET", "/api/sessions", "")
	list := gjson.Parse(w.Body.String()).Array()
	if len(list) != 1 {
		t.Fatalf("expected 1 session, got %s", w.Body.String())
	}
	got := list[0]
	if got.Get("id").String() != game.ID || got.Get("status").String() != "playing" {
		t.Fatalf("unexpected session: %s", got.Raw)
	}
	if got.Get("players").Int() != 1 || got.Get("clock").String() != "0:00" {
		t.Fatalf("unexpected session: %s", got.Raw)
	}
	if got.Get("grid").Exists() || strings.Contains(got.Raw, "CAT") {
		t.Fatalf("listing should not carry the grid: %s", got.Raw)
	}
}

func TestListTiers(t *testing.T) {
	srv := newTestServer(nil)

	w := do(t, srv, "GET", "/api/tiers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if n := len(gjson.Parse(w.Body.String()).Array()); n != len(source.Tiers) {
		t.Fatalf("expected %d tiers, got %d", len(source.Tiers), n)
	}
}

func TestFullSessionFlow(t *testing.T) {
	srv := newTestServer(nil)

	game := createLevelSession(t, srv)
	if game.ID == "" {
		t.Fatal("session ID is empty")
	}
	if game.Status != puzzle.StatusPlaying {
		t.Fatalf("expected playing, got %s", game.Status)
	}
	if game.Selection.Cell == nil || *game.Selection.Cell != (puzzle.Pos{}) {
		t.Fatalf("expected cursor on (0,0), got %+v", game.Selection.Cell)
	}
	base := "/api/sessions/" + game.ID

	// Join.
	w := do(t, srv, "POST", base+"/join", `{"pseudo":"Alice"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var player Player
	json.NewDecoder(w.Body).Decode(&player)
	if player.Pseudo != "Alice" {
		t.Fatalf("expected pseudo Alice, got %s", player.Pseudo)
	}

	// Typing without a position writes at the cursor and advances.
	w = do(t, srv, "POST", base+"/input", `{"type":"input","value":"c","pseudo":"Alice"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("input: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	view := decodeView(t, w)
	if got := view.Grid.Cells[0][0].User; got != "C" {
		t.Fatalf("expected C at (0,0), got %q", got)
	}
	if *view.Selection.Cell != (puzzle.Pos{Row: 0, Col: 1}) {
		t.Fatalf("expected cursor on (0,1), got %+v", *view.Selection.Cell)
	}

	for _, e := range []string{
		`{"type":"input","row":0,"col":1,"value":"A"}`,
		`{"type":"input","row":0,"col":2,"value":"T"}`,
		`{"type":"input","row":1,"col":0,"value":"A"}`,
		`{"type":"input","row":2,"col":0,"value":"R"}`,
		`{"type":"input","row":1,"col":2,"value":"E"}`,
		`{"type":"input","row":2,"col":1,"value":"E"}`,
		`{"type":"input","row":2,"col":2,"value":"D"}`,
	} {
		if w := do(t, srv, "POST", base+"/input", e); w.Code != http.StatusOK {
			t.Fatalf("input %s: expected 200, got %d", e, w.Code)
		}
	}

	w = do(t, srv, "POST", base+"/input", `{"type":"validate"}`)
	view = decodeView(t, w)
	if view.Status != puzzle.StatusWon {
		t.Fatalf("expected won, got %s", view.Status)
	}
	if view.Score != puzzle.WinBonus {
		t.Fatalf("expected score %d, got %d", puzzle.WinBonus, view.Score)
	}

	w = do(t, srv, "GET", base, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get session: expected 200, got %d", w.Code)
	}
	view = decodeView(t, w)
	if view.Status != puzzle.StatusWon {
		t.Fatalf("expected won after reload, got %s", view.Status)
	}
	if _, ok := view.Players["Alice"]; !ok {
		t.Fatal("expected Alice among players")
	}
	if strings.Contains(w.Body.String(), "solution") {
		t.Fatal("session must not expose solutions")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	srv := newTestServer(&fakeGenerator{})

	tests := []struct {
		name string
		body string
		code int
	}{
		{"empty", `{}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
		{"two sources", `{"level":0,"difficulty":"easy"}`, http.StatusBadRequest},
		{"unknown level", `{"level":99}`, http.StatusNotFound},
		{"unknown puzzle", `{"puzzle_id":"nope"}`, http.StatusNotFound},
		{"unknown difficulty", `{"difficulty":"nightmare"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, srv, "POST", "/api/sessions", tt.body); w.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateSessionWithoutGenerator(t *testing.T) {
	srv := newTestServer(nil)

	w := do(t, srv, "POST", "/api/sessions", `{"difficulty":"easy"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGeneratedSession(t *testing.T) {
	srv := newTestServer(&fakeGenerator{})

	w := do(t, srv, "POST", "/api/sessions", `{"difficulty":"medium"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	game := decodeView(t, w)
	if game.Status != puzzle.StatusLoading {
		t.Fatalf("expected loading, got %s", game.Status)
	}

	srv.Wait()

	view := decodeView(t, do(t, srv, "GET", "/api/sessions/"+game.ID, ""))
	if view.Status != puzzle.StatusPlaying {
		t.Fatalf("expected playing, got %s", view.Status)
	}
	if view.Difficulty != puzzle.Medium {
		t.Fatalf("expected medium, got %s", view.Difficulty)
	}

	puzzles := srv.store.ListPuzzles()
	if len(puzzles) != 1 {
		t.Fatalf("expected 1 stored puzzle, got %d", len(puzzles))
	}

	w = do(t, srv, "GET", "/api/puzzles", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list puzzles: expected 200, got %d", w.Code)
	}
	listed := gjson.Parse(w.Body.String()).Array()
	if len(listed) != 1 || listed[0].Get("id").String() != puzzles[0].ID || listed[0].Get("words").Int() != 4 {
		t.Fatalf("unexpected listing: %s", w.Body.String())
	}
	for _, answer := range []string{"CAT", "CAR", "TED", "RED"} {
		if strings.Contains(w.Body.String(), answer) {
			t.Fatalf("puzzle listing leaks %s: %s", answer, w.Body.String())
		}
	}

	w = do(t, srv, "GET", "/api/puzzles/"+puzzles[0].ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get puzzle: expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, answer := range []string{"CAT", "CAR", "TED", "RED"} {
		if strings.Contains(body, answer) {
			t.Fatalf("puzzle leaks %s: %s", answer, body)
		}
	}
	clues := gjson.Get(body, "clues").Array()
	if len(clues) != 4 || clues[0].Get("text").String() != "Pet" || clues[0].Get("length").Int() != 3 {
		t.Fatalf("unexpected clues: %s", body)
	}

	// Replay the stored puzzle in a new session.
	w = do(t, srv, "POST", "/api/sessions", `{"puzzle_id":"`+puzzles[0].ID+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("replay: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if v := decodeView(t, w); v.Difficulty != puzzle.Medium || v.Status != puzzle.StatusPlaying {
		t.Fatalf("unexpected replay state: %s %s", v.Status, v.Difficulty)
	}

	if w := do(t, srv, "GET", "/api/puzzles/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom"), release: make(chan struct{})}
	srv := newTestServer(gen)

	game := decodeView(t, do(t, srv, "POST", "/api/sessions", `{"difficulty":"hard"}`))
	sub := srv.hub.Subscribe(game.ID)
	defer srv.hub.Unsubscribe(sub)

	close(gen.release)
	srv.Wait()

	view := decodeView(t, do(t, srv, "GET", "/api/sessions/"+game.ID, ""))
	if view.Status != puzzle.StatusIdle {
		t.Fatalf("expected idle after failure, got %s", view.Status)
	}

	for {
		select {
		case msg := <-sub.events:
			if gjson.Get(msg, "type").String() == "load_failed" {
				return
			}
		default:
			t.Fatal("load_failed was not broadcast")
		}
	}
}

func TestQuitDuringGeneration(t *testing.T) {
	gen := &fakeGenerator{release: make(chan struct{})}
	srv := newTestServer(gen)

	game := decodeView(t, do(t, srv, "POST", "/api/sessions", `{"difficulty":"easy"}`))
	if w := do(t, srv, "POST", "/api/sessions/"+game.ID+"/quit", ""); w.Code != http.StatusOK {
		t.Fatalf("quit: expected 200, got %d", w.Code)
	}

	close(gen.release)
	srv.Wait()

	view := decodeView(t, do(t, srv, "GET", "/api/sessions/"+game.ID, ""))
	if view.Status != puzzle.StatusIdle {
		t.Fatalf("a late puzzle must not restart a quit session, got %s", view.Status)
	}
}

func TestStartExistingSession(t *testing.T) {
	srv := newTestServer(nil)
	game := createLevelSession(t, srv)
	base := "/api/sessions/" + game.ID

	do(t, srv, "POST", base+"/input", `{"type":"input","value":"C"}`)

	w := do(t, srv, "POST", base+"/start", `{"level":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeView(t, w).Grid.Cells[0][0].User; got != "" {
		t.Fatalf("expected a fresh grid, got %q at (0,0)", got)
	}

	if w := do(t, srv, "POST", "/api/sessions/nope/start", `{"level":0}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestQuitStopsClock(t *testing.T) {
	srv := newTestServer(nil)
	game := createLevelSession(t, srv)

	g := srv.store.GetGame(game.ID)
	if !g.ClockRunning() {
		t.Fatal("clock should run while playing")
	}

	w := do(t, srv, "POST", "/api/sessions/"+game.ID+"/quit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("quit: expected 200, got %d", w.Code)
	}
	if v := decodeView(t, w); v.Status != puzzle.StatusIdle {
		t.Fatalf("expected idle, got %s", v.Status)
	}
	if g.ClockRunning() {
		t.Fatal("clock should stop after quit")
	}
}

func TestInputValidation(t *testing.T) {
	srv := newTestServer(nil)
	game := createLevelSession(t, srv)
	base := "/api/sessions/" + game.ID

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{"type":`, http.StatusBadRequest},
		{"unknown type", `{"type":"jump"}`, http.StatusBadRequest},
		{"click without cell", `{"type":"click"}`, http.StatusBadRequest},
		{"bad key", `{"type":"arrow","key":"pgup"}`, http.StatusBadRequest},
		// Rejected by the alphabet: a no-op, not an error.
		{"digit", `{"type":"input","row":0,"col":1,"value":"5"}`, http.StatusOK},
		{"out of bounds", `{"type":"input","row":10,"col":10,"value":"A"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, srv, "POST", base+"/input", tt.body); w.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}

	if got := srv.store.GetGame(game.ID).State().Grid.Cells[0][1].User; got != "" {
		t.Fatalf("rejected input changed the grid: %q", got)
	}

	if w := do(t, srv, "POST", "/api/sessions/nope/input", `{"type":"validate"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSessionEventsStream(t *testing.T) {
	srv := newTestServer(nil)
	game := createLevelSession(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/sessions/"+game.ID+"/events?pseudo=Bob", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	srv.store.GetGame(game.ID).AddPlayer("Bob")

	done := make(chan struct{})
	go func() {
		srv.ServeHTTP(w, req)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for srv.hub.Subscribers(game.ID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("SSE client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), `"type":"state"`) {
		t.Fatalf("expected initial state event, got %s", w.Body.String())
	}
	if _, ok := srv.store.GetGame(game.ID).View().Players["Bob"]; ok {
		t.Fatal("Bob should be removed on disconnect")
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(nil)

	w := do(t, srv, "GET", "/api/tiers", "")

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}

	for key, expected := range headers {
		if got := w.Header().Get(key); got != expected {
			t.Errorf("header %s: expected %q, got %q", key, expected, got)
		}
	}

	csp := w.Header().Get("Content-Security-Policy")
	if csp == "" {
		t.Error("Content-Security-Policy header missing")
	}
}

func TestCreateRateLimited(t *testing.T) {
	catalog := source.NewCatalog([]puzzle.Descriptor{testPuzzle()})
	srv := NewServer(NewStore(), catalog, nil, Options{Alphabet: puzzle.Latin, CreatePerMinute: 1})

	if w := do(t, srv, "POST", "/api/sessions", `{"level":0}`); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := do(t, srv, "POST", "/api/sessions", `{"level":0}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(3, time.Second)

	// First 3 should pass.
	for i := range 3 {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	// 4th should be blocked.
	if rl.allow("1.2.3.4") {
		t.Fatal("4th request should be rate limited")
	}

	// Different IP should still be allowed.
	if !rl.allow("5.6.7.8") {
		t.Fatal("different IP should be allowed")
	}
}
