package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/csinsights/internal/faceit"
	"github.com/pable/csinsights/internal/logging"
)

type fakeResolver struct {
	name  string
	err   error
	mu    sync.Mutex
	calls []string
}

func (f *fakeResolver) ResolveMap(_ context.Context, matchID string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, matchID)
	f.mu.Unlock()
	return f.name, f.err
}

func newUpstream(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, apiKey, upstreamURL string, resolver MapResolver) http.Handler {
	t.Helper()
	client := faceit.NewClient(apiKey, faceit.WithBaseURL(upstreamURL))
	return New(client, resolver, logging.Discard(), Options{Gzip: true}).Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, "", "http://unused", nil)
	w := do(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t, "", "http://unused", nil)
	w := do(h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, "", "http://unused", nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestFaceitRoutes_NoKey(t *testing.T) {
	h := newTestServer(t, "", "http://unused", nil)
	for _, path := range []string{
		"/api/faceit/players/by-nickname/someone",
		"/api/faceit/players/p-1/matches",
	} {
		w := do(h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"error":"FACEIT_API_KEY not configured"}`, w.Body.String(), path)
	}
}

func TestPlayerByNickname(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("nickname") {
		case "found":
			w.Write([]byte(`{"playerId":"p-9","nickname":"found","games":{"cs2":{}}}`))
		case "noid":
			w.Write([]byte(`{"nickname":"noid"}`))
		default:
			http.Error(w, `{"errors":[]}`, http.StatusNotFound)
		}
	})
	h := newTestServer(t, "key", up.URL, nil)

	w := do(h, http.MethodGet, "/api/faceit/players/by-nickname/found", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"player_id":"p-9","raw":{"playerId":"p-9","nickname":"found","games":{"cs2":{}}}}`, w.Body.String())

	w = do(h, http.MethodGet, "/api/faceit/players/by-nickname/noid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Player not found"}`, w.Body.String())

	w = do(h, http.MethodGet, "/api/faceit/players/by-nickname/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FACEIT players lookup failed", body.Error)
	assert.Contains(t, body.Detail, "HTTP 404")
}

func TestPlayerMatches(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/p-1/history", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "csgo", q.Get("game"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "0", q.Get("offset"))
		w.Write([]byte(`{"items":[{"match_id":"1-a","game":"cs2","finished_at":1700000000},{"matchId":"1-b"}]}`))
	})
	h := newTestServer(t, "key", up.URL, nil)

	w := do(h, http.MethodGet, "/api/faceit/players/p-1/matches?game=csgo&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"match_id":"1-a","map":"cs2","finished_at":1700000000},{"match_id":"1-b"}]`, w.Body.String())
}

func TestPlayerMatches_UpstreamFailure(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})
	h := newTestServer(t, "key", up.URL, nil)

	w := do(h, http.MethodGet, "/api/faceit/players/p-1/matches", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FACEIT history failed", body.Error)
	assert.NotEmpty(t, body.Detail)
}

func TestAnalyze_MatchesGolden(t *testing.T) {
	h := newTestServer(t, "", "http://unused", nil)
	w := do(h, http.MethodPost, "/api/faceit/matches/match-123/analyze", `{"map":"dust2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	want, err := os.ReadFile(filepath.Join("..", "analysis", "testdata", "match-123_dust2.golden.json"))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), w.Body.String())
}

func TestAnalyze_MapPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		apiKey      string
		body        string
		resolver    *fakeResolver
		wantMap     any
		wantResolve bool
	}{
		{"body wins", "key", `{"map":"Inferno"}`, &fakeResolver{name: "nuke"}, "Inferno", false},
		{"resolver used with key", "key", "", &fakeResolver{name: "nuke"}, "nuke", true},
		{"resolver skipped without key", "", "", &fakeResolver{name: "nuke"}, nil, false},
		{"resolver error falls back to null", "key", `{}`, &fakeResolver{err: errors.New("boom")}, nil, true},
		{"malformed body counts as empty", "key", `{"map":`, &fakeResolver{name: "ancient"}, "ancient", true},
		{"non-string map ignored", "key", `{"map":7}`, &fakeResolver{name: "train"}, "train", true},
		{"empty string map ignored", "", `{"map":""}`, &fakeResolver{name: "train"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.apiKey, "http://unused", tt.resolver)
			w := do(h, http.MethodPost, "/api/faceit/matches/m1/analyze", tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var got map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantMap, got["map"])
			assert.Equal(t, "srv_m1", got["entryId"])
			if tt.wantResolve {
				assert.Equal(t, []string{"m1"}, tt.resolver.calls)
			} else {
				assert.Empty(t, tt.resolver.calls)
			}
		})
	}
}

func TestAnalyze_WhitespaceIDRejected(t *testing.T) {
	h := newTestServer(t, "", "http://unused", nil)
	w := do(h, http.MethodPost, "/api/faceit/matches/%20/analyze", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Analyze failed", body.Error)
	assert.Contains(t, body.Detail, "invalid input")
}

func TestAnalyze_Gzip(t *testing.T) {
	h := newTestServer(t, "", "http://unused", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/faceit/matches/m1/analyze", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}
