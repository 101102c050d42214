package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-match-engine/internal/engine"
	"github.com/jonathan/job-match-engine/internal/ingestion"
	"github.com/jonathan/job-match-engine/internal/types"
)

type stubEngine struct {
	matches    []types.MatchResult
	stats      types.IngestStats
	recordErrs []*ingestion.RecordError
	swept      int
	err        error

	gotFilters engine.Filters
	gotBatch   []types.ExternalJobInput
}

func (s *stubEngine) RankJobsForCandidate(_ context.Context, _ uuid.UUID, filters engine.Filters) ([]types.MatchResult, error) {
	s.gotFilters = filters
	return s.matches, s.err
}

func (s *stubEngine) RankCandidatesForJob(context.Context, uuid.UUID) ([]types.MatchResult, error) {
	return s.matches, s.err
}

func (s *stubEngine) Ingest(_ context.Context, batch []types.ExternalJobInput) (types.IngestStats, []*ingestion.RecordError, error) {
	s.gotBatch = batch
	return s.stats, s.recordErrs, s.err
}

func (s *stubEngine) ExpireStaleJobs(context.Context) (int, error) {
	return s.swept, s.err
}

func newTestServer(eng MatchEngine) *Server {
	return New(Config{Port: 0}, eng, nil)
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(newTestServer(&stubEngine{}), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleCandidateMatches_OK(t *testing.T) {
	eng := &stubEngine{matches: []types.MatchResult{
		{CandidateID: uuid.New(), JobID: uuid.New(), FinalScore: 0.9},
	}}
	s := newTestServer(eng)

	rec := doRequest(s, http.MethodPost, "/candidates/"+uuid.NewString()+"/matches",
		engine.Filters{WorkMode: types.WorkModeRemote, Limit: 10})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp matchesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, types.WorkModeRemote, eng.gotFilters.WorkMode)
	assert.Equal(t, 10, eng.gotFilters.Limit)
}

func TestHandleCandidateMatches_EmptyBodyMeansNoFilters(t *testing.T) {
	s := newTestServer(&stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/candidates/"+uuid.NewString()+"/matches", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCandidateMatches_BadID(t *testing.T) {
	rec := doRequest(newTestServer(&stubEngine{}), http.MethodPost, "/candidates/not-a-uuid/matches", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCandidateMatches_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: candidate", engine.ErrNotFound), http.StatusNotFound},
		{"validation", fmt.Errorf("%w: bad filter", engine.ErrValidation), http.StatusBadRequest},
		{"storage down", fmt.Errorf("%w: db", engine.ErrStorageUnavailable), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubEngine{err: tt.err})
			rec := doRequest(s, http.MethodPost, "/candidates/"+uuid.NewString()+"/matches", nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleJobCandidates_OK(t *testing.T) {
	eng := &stubEngine{matches: []types.MatchResult{{JobID: uuid.New(), FinalScore: 0.8}}}
	rec := doRequest(newTestServer(eng), http.MethodGet, "/jobs/"+uuid.NewString()+"/candidates", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp matchesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestHandleJobCandidates_BadID(t *testing.T) {
	rec := doRequest(newTestServer(&stubEngine{}), http.MethodGet, "/jobs/xyz/candidates", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIngest_OK(t *testing.T) {
	eng := &stubEngine{stats: types.IngestStats{Inserted: 2, Duplicates: 1}}
	s := newTestServer(eng)

	body := map[string]any{"jobs": []types.ExternalJobInput{
		{Title: "Engineer", Company: "Acme", Skills: []string{"go"}, Source: "lever", ExternalID: "e1"},
		{Title: "Engineer", Company: "Acme", Skills: []string{"go"}, Source: "lever", ExternalID: "e2"},
		{Title: "Engineer", Company: "Acme", Skills: []string{"go"}, Source: "lever", ExternalID: "e1"},
	}}
	rec := doRequest(s, http.MethodPost, "/ingest", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ingestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Inserted)
	assert.Equal(t, 1, resp.Duplicates)
	assert.Len(t, eng.gotBatch, 3)
}

func TestHandleIngest_ReportsRecordErrors(t *testing.T) {
	eng := &stubEngine{
		stats: types.IngestStats{Errors: 1},
		recordErrs: []*ingestion.RecordError{
			{Index: 0, ExternalID: "e1", Source: "lever", Cause: fmt.Errorf("missing title")},
		},
	}
	rec := doRequest(newTestServer(eng), http.MethodPost, "/ingest",
		map[string]any{"jobs": []types.ExternalJobInput{{ExternalID: "e1"}}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ingestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.RecordErrors, 1)
	assert.Contains(t, resp.RecordErrors[0], "missing title")
}

func TestHandleIngest_EmptyBatch(t *testing.T) {
	rec := doRequest(newTestServer(&stubEngine{}), http.MethodPost, "/ingest", map[string]any{"jobs": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIngest_MalformedBody(t *testing.T) {
	s := newTestServer(&stubEngine{})
	req := httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewBufferString("{not json"))
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExpire(t *testing.T) {
	rec := doRequest(newTestServer(&stubEngine{swept: 4}), http.MethodPost, "/maintenance/expire", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"swept":4}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(&stubEngine{})
	req := httptest.NewRequest(http.MethodOptions, "/candidates/abc/matches", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
