package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/anki-api/auth"
	"github.com/andrewpaige1/anki-api/decks"
	"github.com/andrewpaige1/anki-api/middleware"
	"github.com/andrewpaige1/anki-api/models"
	"github.com/andrewpaige1/anki-api/testutil"
)

type testServer struct {
	t        *testing.T
	handler  http.Handler
	settings auth.Settings
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	settings := auth.Settings{
		Secret:   []byte("handlers-secret"),
		Issuer:   "anki-api",
		Audience: "anki-api",
		TTL:      time.Hour,
	}
	authMiddleware, err := middleware.EnsureValidToken(settings)
	require.NoError(t, err)

	h := &DeckHandler{Decks: decks.NewService(db, authEnabled)}
	return &testServer{t: t, handler: NewRouter(h, db, authMiddleware), settings: settings}
}

func (s *testServer) do(method, path, caller string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		token, err := auth.CreateToken(s.settings, caller)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, true)
	rec := srv.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMeProvisionsCaller(t *testing.T) {
	srv := newTestServer(t, true)

	rec := srv.do(http.MethodGet, "/api/me", "erin", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decode[decks.CallerInfo](t, rec)
	assert.Equal(t, "erin", me.Username)
	assert.NotZero(t, me.ID)
	assert.False(t, me.Anonymous)

	rec = srv.do(http.MethodGet, "/api/me", "erin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, me.ID, decode[decks.CallerInfo](t, rec).ID)
}

func TestDeckVisibilityOverHTTP(t *testing.T) {
	srv := newTestServer(t, true)

	// alice's first write provisions her user row
	rec := srv.do(http.MethodPut, "/api/users/alice/decks", "alice", map[string]any{
		"deck":  map[string]any{"id": nil, "name": "Spanish", "color": "red", "public": false, "description": "mine"},
		"cards": []map[string]any{{"id": nil, "question": "hola", "answer": "hello"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[decks.ReconcileResult](t, rec)
	assert.True(t, result.Created)

	// bob needs a user row too
	rec = srv.do(http.MethodGet, "/api/me", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/Spanish", "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	hidden := rec.Body.String()

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/Missing", "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, hidden, rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/Spanish", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mine", decode[decks.DeckInfo](t, rec).Description)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]decks.DeckInfo](t, rec))

	rec = srv.do(http.MethodPut, "/api/users/alice/decks", "alice", map[string]any{
		"deck":  map[string]any{"id": result.Deck.ID, "name": "Spanish", "color": "red", "public": true, "description": "mine"},
		"cards": []map[string]any{},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/Spanish", "bob", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/Spanish/cards", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	withCards := decode[decks.DeckWithCards](t, rec)
	require.Len(t, withCards.Cards, 1)
	assert.Equal(t, "hola", withCards.Cards[0].Question)

	rec = srv.do(http.MethodGet, "/api/users/nobody/decks", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReconcileErrorsOverHTTP(t *testing.T) {
	srv := newTestServer(t, true)
	deck := map[string]any{"deck": map[string]any{"name": "French"}, "cards": []any{}}

	rec := srv.do(http.MethodPut, "/api/users/alice/decks", "", deck)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodPut, "/api/users/alice/decks", "alice", deck)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodPut, "/api/users/alice/decks", "bob", deck)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(http.MethodPut, "/api/users/alice/decks", "alice", map[string]any{
		"deck":  map[string]any{"name": "French"},
		"cards": []map[string]any{{"question": "chat"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPut, "/api/users/alice/decks", "alice", map[string]any{
		"deck": map[string]any{"name": 7},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/users/alice/decks", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	raw := httptest.NewRecorder()
	srv.handler.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusUnauthorized, raw.Code)
}

func TestCreateAndRemoveDeckOverHTTP(t *testing.T) {
	srv := newTestServer(t, true)

	rec := srv.do(http.MethodPost, "/api/users/alice/decks", "alice",
		map[string]any{"name": "German Verbs", "color": "black", "public": true, "description": "sein"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "German Verbs", decode[decks.DeckInfo](t, rec).Name)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/German%20Verbs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodDelete, "/api/users/alice/decks/German%20Verbs", "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(http.MethodDelete, "/api/users/alice/decks/German%20Verbs", "alice", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/German%20Verbs", "alice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudyFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t, true)

	rec := srv.do(http.MethodPut, "/api/users/alice/decks", "alice", map[string]any{
		"deck": map[string]any{"name": "French", "public": true},
		"cards": []map[string]any{
			{"question": "chat", "answer": "cat"},
			{"question": "chien", "answer": "dog"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[decks.ReconcileResult](t, rec)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/French/next-card", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	next := decode[models.Card](t, rec)
	assert.Equal(t, result.Cards[0].ID, next.ID)

	path := "/api/cards/" + strconv.FormatUint(uint64(next.ID), 10) + "/feedback"
	rec = srv.do(http.MethodPost, path, "bob", map[string]any{"feedback": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/French/next-card", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, result.Cards[1].ID, decode[models.Card](t, rec).ID)

	rec = srv.do(http.MethodPost, path, "bob", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/api/cards/abc/feedback", "bob", map[string]any{"feedback": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, path, "", map[string]any{"feedback": true})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/French/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[decks.DeckStats](t, rec)
	assert.EqualValues(t, 2, stats.Cards)
	assert.Zero(t, stats.Reviews)
}

func TestAuthDisabledOverHTTP(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(http.MethodGet, "/api/me", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[decks.CallerInfo](t, rec)
	assert.True(t, me.Anonymous)
	assert.False(t, me.AuthEnabled)

	rec = srv.do(http.MethodGet, "/api/me", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodPut, "/api/users/alice/decks", "", map[string]any{
		"deck": map[string]any{"name": "Secret", "public": false},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/users/alice/decks/Secret", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"name":"Secret"`))
}
