package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/scores"
)

func newTestServer(t *testing.T) (*Server, *scores.Store) {
	t.Helper()
	quiet := log.New(io.Discard)
	board := scores.New(scores.NewMemoryKV(), scores.WithLogger(quiet))
	return New(board, quiet), board
}

func record(board *scores.Store, mode string, metric core.Metric, values ...int64) {
	for _, v := range values {
		board.Record(scores.NewEntry(core.RunResult{Mode: mode, Metric: metric, Value: v}, "ada"))
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestScoresSortedAndLimited(t *testing.T) {
	s, board := newTestServer(t)
	record(board, "match3", core.MetricScore, 10, 50, 30, 40)

	rec := get(t, s, "/api/scores/match3?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var res scoresRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "match3", res.Mode)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, []int64{50, 40, 30}, []int64{res.Entries[0].Value, res.Entries[1].Value, res.Entries[2].Value})
	assert.Equal(t, "ada", res.Entries[0].Player)
}

func TestScoresTimeModeAscending(t *testing.T) {
	s, board := newTestServer(t)
	record(board, "colormatch_easy", core.MetricTime, 9000, 4000, 6000)

	var res scoresRes
	rec := get(t, s, "/api/scores/colormatch_easy")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Entries, 3)
	assert.Equal(t, int64(4000), res.Entries[0].Value)
	assert.Equal(t, core.MetricTime, res.Entries[0].Kind)
}

func TestScoresEmptyMode(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/scores/nothing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mode":"nothing","entries":[]}`, rec.Body.String())
}

func TestScoresRejectsBadLimit(t *testing.T) {
	s, _ := newTestServer(t)
	for _, q := range []string{"abc", "0", "-2"} {
		rec := get(t, s, "/api/scores/match3?limit="+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", q)
		assert.JSONEq(t, `{"error":"invalid_limit"}`, rec.Body.String())
	}
}

func TestScoresLimitIsCapped(t *testing.T) {
	s, board := newTestServer(t)
	vals := make([]int64, MaxLimit+5)
	for i := range vals {
		vals[i] = int64(i)
	}
	record(board, "match3", core.MetricScore, vals...)

	var res scoresRes
	rec := get(t, s, "/api/scores/match3?limit=1000")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Entries, MaxLimit)
}

func TestBest(t *testing.T) {
	s, board := newTestServer(t)

	rec := get(t, s, "/api/scores/match3/best")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"no_scores"}`, rec.Body.String())

	record(board, "match3", core.MetricScore, 20, 70)
	rec = get(t, s, "/api/scores/match3/best")
	require.Equal(t, http.StatusOK, rec.Code)

	var best scores.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &best))
	assert.Equal(t, int64(70), best.Value)
	assert.Equal(t, "match3", best.Mode)
}

func TestModesListsStoredCollections(t *testing.T) {
	s, board := newTestServer(t)
	record(board, "match3", core.MetricScore, 10, 20)
	record(board, "colormatch_easy", core.MetricTime, 3000)

	var modes []modeInfo
	rec := get(t, s, "/api/modes")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modes))

	byMode := make(map[string]int)
	for _, m := range modes {
		byMode[m.Mode] = m.Entries
	}
	assert.Equal(t, 2, byMode["match3"])
	assert.Equal(t, 1, byMode["colormatch_easy"])
}

func TestModesReportLastPlayed(t *testing.T) {
	s, board := newTestServer(t)
	before := time.Now().Add(-time.Second)
	record(board, "match3", core.MetricScore, 10)

	var modes []modeInfo
	rec := get(t, s, "/api/modes")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modes))
	require.Len(t, modes, 1)
	require.NotNil(t, modes[0].LastPlayed)
	assert.True(t, modes[0].LastPlayed.After(before))

	require.NoError(t, board.Clear("match3"))
	rec = get(t, s, "/api/modes")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}
