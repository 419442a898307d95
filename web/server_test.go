/* server_test.go
 * Contains the shared helpers of this package's tests and unit tests for models.go and respond.go
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apiPkg "arena-bot/api/api"
	"arena-bot/api/shared"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testServer struct {
	server  *Server
	handler http.Handler
	store   *apiPkg.MockStore
}

func newTestServer(t *testing.T, joinRate int) *testServer {
	t.Helper()
	mockStore := apiPkg.NewMockStore()
	a := apiPkg.New(mockStore)
	a.Clock = clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC))
	a.Rand = rand.New(rand.NewPCG(1, 2))

	s := NewServer(Config{API: a, JWTSecret: []byte(testSecret), JoinRatePerMinute: joinRate})
	return &testServer{server: s, handler: s.Router(zerolog.Nop(), nil), store: mockStore}
}

func (ts *testServer) token(t *testing.T, userID string, role shared.Role) string {
	t.Helper()
	tok, err := ts.server.auth.Issue(shared.User{UserID: userID, Username: userID, Role: role}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method string, path string, tok string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// region Config tests

func TestNewServer(t *testing.T) {
	s := NewServer(Config{Addr: ":3000", JWTSecret: []byte("x"), JoinRatePerMinute: 5})

	assert.NotNil(t, s.auth)
	assert.NotNil(t, s.limiter)
	assert.Equal(t, 5, s.limiter.perMin)
	assert.Nil(t, s.api)
}

// endregion

// region respond tests

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{shared.ErrUnauthenticated, http.StatusUnauthorized},
		{shared.ErrAdminRequired, http.StatusForbidden},
		{shared.ErrInvalidID, http.StatusBadRequest},
		{shared.ErrEmptyReport, http.StatusBadRequest},
		{shared.ErrTournamentNotFound, http.StatusNotFound},
		{shared.ErrInvalidRound, http.StatusNotFound},
		{shared.ErrMatchAlreadyDecided, http.StatusConflict},
		{shared.ErrConcurrentModification, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", shared.ErrAlreadyLocked), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, statusFor(tc.err))
		})
	}
}

func TestWriteError_HidesUnknownErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	writeError(w, req, errors.New("connection string mongodb://secret"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "internal server error", decode[errorResponse](t, w).Error)
}

func TestWriteError_KnownErrorsKeepMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	writeError(w, req, shared.ErrNotAllDecided)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, shared.ErrNotAllDecided.Error(), decode[errorResponse](t, w).Error)
}

// endregion

// Note: Start() blocks on ListenAndServe and is covered by running the binary
