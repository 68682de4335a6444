package router

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gamebase/backend/internal/auth"
	"gamebase/backend/internal/config"
	"gamebase/backend/internal/database"
	"gamebase/backend/internal/dbtest"
	"gamebase/backend/internal/handler"
	"gamebase/backend/internal/hub"
	"gamebase/backend/internal/models"
	"gamebase/backend/internal/service"
	"gamebase/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type api struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prevDB, prevCfg := database.DB, config.AppConfig
	prevRevoked, prevRevocations, prevPreviews := auth.Revoked, handler.Revocations, handler.Previews
	t.Cleanup(func() {
		database.DB, config.AppConfig = prevDB, prevCfg
		auth.Revoked, handler.Revocations, handler.Previews = prevRevoked, prevRevocations, prevPreviews
	})

	cfg := &config.Config{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		CORSOrigins: "http://localhost:3000",
	}
	config.AppConfig = cfg
	database.DB = dbtest.New(t)
	auth.Revoked, handler.Revocations, handler.Previews = nil, nil, nil

	return &api{engine: New(cfg), db: database.DB}
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	s, err := jwt.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return s
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T from %q: %v", v, w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, want, w.Body.String())
	}
}

func TestPing(t *testing.T) {
	a := newAPI(t)
	w := a.do(t, http.MethodGet, "/ping", "", nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[map[string]string](t, w)["message"]; got != "pong" {
		t.Errorf("message = %q, want pong", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response carries no request id")
	}
}

func TestSwaggerDocument(t *testing.T) {
	a := newAPI(t)
	w := a.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	expectStatus(t, w, http.StatusOK)

	doc := decode[struct {
		Info     struct{ Title string } `json:"info"`
		BasePath string                 `json:"basePath"`
		Paths    map[string]any         `json:"paths"`
	}](t, w)
	if doc.Info.Title != "Gamebase API" || doc.BasePath != "/api/v1" {
		t.Errorf("unexpected document header: %+v", doc.Info)
	}
	for _, path := range []string{"/invitations/{id}/join", "/proposals/{kind}/review", "/collection/lucky-shot"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("document is missing %s", path)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRoutesRequireAuthentication(t *testing.T) {
	a := newAPI(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodPost, "/api/v1/games"},
		{http.MethodPut, "/api/v1/games/1"},
		{http.MethodDelete, "/api/v1/games/1"},
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodGet, "/api/v1/proposals/category/pending"},
		{http.MethodGet, "/api/v1/collection"},
		{http.MethodPost, "/api/v1/collection/lucky-shot"},
		{http.MethodGet, "/api/v1/invitations"},
		{http.MethodPost, "/api/v1/invitations/1/join"},
		{http.MethodGet, "/api/v1/invitations/1/events"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			expectStatus(t, a.do(t, r.method, r.path, "", nil), http.StatusUnauthorized)
		})
	}
}

func TestModeratorOnlyRoutes(t *testing.T) {
	a := newAPI(t)
	player := tokenFor(t, dbtest.User(t, a.db, "player", models.RoleUser))
	moderator := tokenFor(t, dbtest.User(t, a.db, "mod", models.RoleModerator))

	entry := map[string]string{"name": "Worker Placement"}

	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/mechanics", player, entry), http.StatusForbidden)
	expectStatus(t, a.do(t, http.MethodGet, "/api/v1/proposals/mechanic/pending", player, nil), http.StatusForbidden)

	w := a.do(t, http.MethodPost, "/api/v1/mechanics", moderator, entry)
	expectStatus(t, w, http.StatusCreated)
	created := decode[handler.EntryResponse](t, w)

	// Reads stay public.
	expectStatus(t, a.do(t, http.MethodGet, fmt.Sprintf("/api/v1/mechanics/%d", created.ID), "", nil), http.StatusOK)
	expectStatus(t, a.do(t, http.MethodGet, "/api/v1/categories", "", nil), http.StatusOK)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	a := newAPI(t)
	input := map[string]string{"nickname": "meeple", "email": "Meeple@Example.com", "password": "password123"}

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", input)
	expectStatus(t, w, http.StatusCreated)
	registered := decode[handler.TokenResponse](t, w)
	if registered.Token == "" {
		t.Fatal("register returned no token")
	}

	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/auth/register", "", input), http.StatusConflict)
	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"nickname": "x", "email": "x@example.com", "password": "short"}), http.StatusBadRequest)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "meeple@example.com", "password": "password123"})
	expectStatus(t, w, http.StatusOK)
	token := decode[handler.TokenResponse](t, w).Token

	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "meeple@example.com", "password": "wrong-password"}), http.StatusUnauthorized)

	w = a.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	expectStatus(t, w, http.StatusOK)
	me := decode[handler.PrivateUserResponse](t, w)
	if me.Nickname != "meeple" || me.Email != "meeple@example.com" || me.Role != models.RoleUser {
		t.Errorf("unexpected profile: %+v", me)
	}
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memoryRevocations) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

func TestLogoutRevokesToken(t *testing.T) {
	a := newAPI(t)
	store := &memoryRevocations{revoked: map[string]bool{}}
	auth.Revoked, handler.Revocations = store, store

	token := tokenFor(t, dbtest.User(t, a.db, "meeple", models.RoleUser))
	expectStatus(t, a.do(t, http.MethodGet, "/api/v1/users/me", token, nil), http.StatusOK)
	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil), http.StatusOK)
	expectStatus(t, a.do(t, http.MethodGet, "/api/v1/users/me", token, nil), http.StatusUnauthorized)
}

func TestGameCatalogAndCollection(t *testing.T) {
	a := newAPI(t)
	token := tokenFor(t, dbtest.User(t, a.db, "meeple", models.RoleUser))

	game := map[string]any{
		"title":       "Agricola",
		"author":      "Uwe Rosenberg",
		"min_players": 1,
		"max_players": 4,
		"game_time":   "90 min",
		"bgg_link":    "https://boardgamegeek.com/boardgame/31260/agricola",
	}
	w := a.do(t, http.MethodPost, "/api/v1/games", token, game)
	expectStatus(t, w, http.StatusCreated)
	created := decode[handler.GameResponse](t, w)

	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/games", token, game), http.StatusConflict)

	game["title"] = "Broken"
	game["min_players"], game["max_players"] = 5, 2
	w = a.do(t, http.MethodPost, "/api/v1/games", token, game)
	expectStatus(t, w, http.StatusBadRequest)
	if _, ok := decode[handler.ErrorResponse](t, w).Fields["max_players"]; !ok {
		t.Errorf("expected a max_players field error, got %s", w.Body.String())
	}

	w = a.do(t, http.MethodGet, "/api/v1/games/search?title=GRIC", "", nil)
	expectStatus(t, w, http.StatusOK)
	page := decode[handler.PaginatedGameResponse](t, w)
	if page.Meta.TotalItems != 1 || len(page.Data) != 1 || page.Data[0].ID != created.ID {
		t.Errorf("search result = %+v", page)
	}

	gamePath := fmt.Sprintf("/api/v1/games/%d", created.ID)

	// Anonymous readers get no collection flag.
	w = a.do(t, http.MethodGet, gamePath, "", nil)
	expectStatus(t, w, http.StatusOK)
	if decode[handler.GameResponse](t, w).InCollection != nil {
		t.Error("anonymous response should not carry in_collection")
	}

	expectStatus(t, a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/collection/%d", created.ID), token, nil), http.StatusOK)

	w = a.do(t, http.MethodGet, gamePath, token, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[handler.GameResponse](t, w).InCollection; got == nil || !*got {
		t.Errorf("in_collection = %v, want true", got)
	}

	w = a.do(t, http.MethodGet, "/api/v1/collection", token, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[[]handler.GameResponse](t, w); len(got) != 1 {
		t.Errorf("collection has %d games, want 1", len(got))
	}

	expectStatus(t, a.do(t, http.MethodGet, "/api/v1/games/abc", "", nil), http.StatusBadRequest)
	expectStatus(t, a.do(t, http.MethodGet, "/api/v1/games/999", "", nil), http.StatusNotFound)

	expectStatus(t, a.do(t, http.MethodDelete, gamePath, token, nil), http.StatusOK)
	expectStatus(t, a.do(t, http.MethodGet, gamePath, "", nil), http.StatusNotFound)
}

func TestProposalReview(t *testing.T) {
	a := newAPI(t)
	moderator := tokenFor(t, dbtest.User(t, a.db, "mod", models.RoleModerator))

	w := a.do(t, http.MethodPost, "/api/v1/proposals/mechanic", "", map[string]string{"name": "Drafting"})
	expectStatus(t, w, http.StatusCreated)
	proposal := decode[handler.ProposalResponse](t, w)
	if proposal.Status != models.StatusPending {
		t.Fatalf("new proposal status = %d, want pending", proposal.Status)
	}

	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/proposals/mechanic", "", map[string]string{"name": "Drafting"}), http.StatusBadRequest)
	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/proposals/tag", "", map[string]string{"name": "Cards"}), http.StatusBadRequest)

	w = a.do(t, http.MethodGet, "/api/v1/proposals/mechanic/pending", moderator, nil)
	expectStatus(t, w, http.StatusOK)
	if pending := decode[[]handler.ProposalResponse](t, w); len(pending) != 1 || pending[0].Name != "Drafting" {
		t.Fatalf("pending = %+v", pending)
	}

	review := map[string]any{"decisions": map[string]int{fmt.Sprint(proposal.ID): int(models.StatusAccepted)}}
	w = a.do(t, http.MethodPost, "/api/v1/proposals/mechanic/review", moderator, review)
	expectStatus(t, w, http.StatusOK)
	if result := decode[service.BatchResult](t, w); len(result.Promoted) != 1 || result.Promoted[0] != proposal.ID {
		t.Errorf("review result = %+v", result)
	}

	w = a.do(t, http.MethodGet, "/api/v1/mechanics", "", nil)
	expectStatus(t, w, http.StatusOK)
	if entries := decode[[]handler.EntryResponse](t, w); len(entries) != 1 || entries[0].Name != "Drafting" {
		t.Errorf("mechanics = %+v", entries)
	}

	// The proposal is gone, so a second accept cannot apply.
	w = a.do(t, http.MethodPost, "/api/v1/proposals/mechanic/review", moderator, review)
	expectStatus(t, w, http.StatusConflict)
	if result := decode[service.BatchResult](t, w); len(result.Conflicts) != 1 || result.Conflicts[0].ID != proposal.ID {
		t.Errorf("conflicts = %+v", result.Conflicts)
	}
}

func createInvitation(t *testing.T, a *api, token string, gameID uint, seats int) handler.InvitationResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/invitations", token, map[string]any{
		"game_id":    gameID,
		"no_players": seats,
		"game_time":  time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"game_place": "Main St. 5",
	})
	expectStatus(t, w, http.StatusCreated)
	return decode[handler.InvitationResponse](t, w)
}

func TestInvitationRoster(t *testing.T) {
	a := newAPI(t)
	host := dbtest.User(t, a.db, "host", models.RoleUser)
	alice := dbtest.User(t, a.db, "alice", models.RoleUser)
	bob := dbtest.User(t, a.db, "bob", models.RoleUser)
	game := dbtest.Game(t, a.db, "Azul", 2, 4)
	dbtest.Own(t, a.db, host, game)

	hostToken, aliceToken, bobToken := tokenFor(t, host), tokenFor(t, alice), tokenFor(t, bob)

	inv := createInvitation(t, a, hostToken, game.ID, 1)
	if inv.AvailablePlaces != 1 || inv.State != models.StateOpen {
		t.Fatalf("new invitation = %+v", inv)
	}
	base := fmt.Sprintf("/api/v1/invitations/%d", inv.ID)

	w := a.do(t, http.MethodPost, base+"/join", aliceToken, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[handler.InvitationResponse](t, w); got.AvailablePlaces != 0 || len(got.Players) != 1 {
		t.Errorf("after join = %+v", got)
	}

	expectStatus(t, a.do(t, http.MethodPost, base+"/join", bobToken, nil), http.StatusConflict)
	expectStatus(t, a.do(t, http.MethodDelete, fmt.Sprintf("%s/players/%d", base, alice.ID), bobToken, nil), http.StatusForbidden)

	w = a.do(t, http.MethodDelete, fmt.Sprintf("%s/players/%d", base, alice.ID), hostToken, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[handler.InvitationResponse](t, w); got.AvailablePlaces != 1 {
		t.Errorf("available places after removal = %d, want 1", got.AvailablePlaces)
	}

	expectStatus(t, a.do(t, http.MethodPost, base+"/join", bobToken, nil), http.StatusOK)

	w = a.do(t, http.MethodGet, "/api/v1/invitations", bobToken, nil)
	expectStatus(t, w, http.StatusOK)
	if overview := decode[handler.OverviewResponse](t, w); len(overview.Joined) != 1 || overview.Joined[0].ID != inv.ID {
		t.Errorf("bob's overview = %+v", overview)
	}

	expectStatus(t, a.do(t, http.MethodDelete, base, bobToken, nil), http.StatusForbidden)
	expectStatus(t, a.do(t, http.MethodDelete, base, hostToken, nil), http.StatusOK)
	expectStatus(t, a.do(t, http.MethodGet, base, hostToken, nil), http.StatusNotFound)
}

func TestLuckyShot(t *testing.T) {
	a := newAPI(t)
	user := dbtest.User(t, a.db, "meeple", models.RoleUser)
	duel := dbtest.Game(t, a.db, "Patchwork", 2, 2)
	party := dbtest.Game(t, a.db, "Codenames", 4, 8)
	dbtest.Own(t, a.db, user, duel, party)
	token := tokenFor(t, user)

	w := a.do(t, http.MethodPost, "/api/v1/collection/lucky-shot", token, map[string]int{"players": 2})
	expectStatus(t, w, http.StatusOK)
	if got := decode[handler.LuckyShotResponse](t, w).Game; got == nil || got.ID != duel.ID {
		t.Errorf("lucky shot for 2 = %+v, want Patchwork", got)
	}

	w = a.do(t, http.MethodPost, "/api/v1/collection/lucky-shot", token, map[string]int{"players": 3})
	expectStatus(t, w, http.StatusOK)
	if got := decode[handler.LuckyShotResponse](t, w).Game; got != nil {
		t.Errorf("lucky shot for 3 = %+v, want none", got)
	}

	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/collection/lucky-shot", token, map[string]int{"players": 0}), http.StatusBadRequest)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type rosterEvent struct {
	Type    string               `json:"type"`
	Payload service.RosterChange `json:"payload"`
}

// openEventStream subscribes to an invitation's events over a real server
// and runs trigger once the subscription is live. Headers are only flushed
// with the first event, so the response is available after trigger.
func openEventStream(t *testing.T, a *api, invitationID uint, token string, trigger func()) *http.Response {
	t.Helper()

	srv := httptest.NewServer(a.engine)
	t.Cleanup(srv.Close)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/v1/invitations/%d/events", srv.URL, invitationID), nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	type result struct {
		resp *http.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := srv.Client().Do(req)
		done <- result{resp, err}
	}()

	waitFor(t, func() bool { return hub.GlobalHub.Subscribers(invitationID) == 1 })
	trigger()

	res := <-done
	if res.err != nil {
		t.Fatalf("stream request: %v", res.err)
	}
	t.Cleanup(func() { res.resp.Body.Close() })

	if ct := res.resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q", ct)
	}
	return res.resp
}

func nextEvent(t *testing.T, scanner *bufio.Scanner) rosterEvent {
	t.Helper()
	var data string
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "data:") {
			data = strings.TrimPrefix(line, "data:")
			break
		}
	}
	if data == "" {
		t.Fatalf("no event received: %v", scanner.Err())
	}

	var event rosterEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		t.Fatalf("decode event %q: %v", data, err)
	}
	return event
}

func TestInvitationEventStream(t *testing.T) {
	a := newAPI(t)
	host := dbtest.User(t, a.db, "host", models.RoleUser)
	guest := dbtest.User(t, a.db, "guest", models.RoleUser)
	game := dbtest.Game(t, a.db, "Azul", 2, 4)
	dbtest.Own(t, a.db, host, game)
	inv := createInvitation(t, a, tokenFor(t, host), game.ID, 2)

	expectStatus(t, a.do(t, http.MethodGet, "/api/v1/invitations/999/events", tokenFor(t, host), nil), http.StatusNotFound)

	resp := openEventStream(t, a, inv.ID, tokenFor(t, host), func() {
		expectStatus(t, a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/invitations/%d/join", inv.ID), tokenFor(t, guest), nil), http.StatusOK)
	})

	event := nextEvent(t, bufio.NewScanner(resp.Body))
	if event.Type != hub.EventPlayerJoined || event.Payload.UserID != guest.ID || event.Payload.AvailablePlaces != 1 {
		t.Errorf("event = %+v", event)
	}
}

func TestInvitationEventStreamEndsOnDelete(t *testing.T) {
	a := newAPI(t)
	host := dbtest.User(t, a.db, "host", models.RoleUser)
	guest := dbtest.User(t, a.db, "guest", models.RoleUser)
	game := dbtest.Game(t, a.db, "Azul", 2, 4)
	dbtest.Own(t, a.db, host, game)
	hostToken := tokenFor(t, host)
	inv := createInvitation(t, a, hostToken, game.ID, 2)

	resp := openEventStream(t, a, inv.ID, tokenFor(t, guest), func() {
		expectStatus(t, a.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/invitations/%d", inv.ID), hostToken, nil), http.StatusOK)
	})

	scanner := bufio.NewScanner(resp.Body)
	if event := nextEvent(t, scanner); event.Type != hub.EventInvitationDeleted || event.Payload.State != models.StateDeleted {
		t.Errorf("event = %+v", event)
	}

	// The server closes the stream; reading runs to EOF well before the
	// request deadline.
	for scanner.Scan() {
	}
	if err := scanner.Err(); err != nil {
		t.Errorf("stream did not end cleanly: %v", err)
	}
	waitFor(t, func() bool { return hub.GlobalHub.Subscribers(inv.ID) == 0 })
}
