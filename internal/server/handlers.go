package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-match-engine/internal/engine"
	"github.com/jonathan/job-match-engine/internal/types"
)

// matchesResponse is the body for both ranking endpoints.
type matchesResponse struct {
	Matches []types.MatchResult `json:"matches"`
	Count   int                 `json:"count"`
}

// ingestResponse reports batch outcome plus per-record rejections.
type ingestResponse struct {
	types.IngestStats
	RecordErrors []string `json:"record_errors,omitempty"`
}

// handleCandidateMatches ranks jobs for one candidate.
// POST /candidates/{id}/matches, body: optional filters.
func (s *Server) handleCandidateMatches(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	var filters engine.Filters
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	matches, err := s.engine.RankJobsForCandidate(r.Context(), candidateID, filters)
	if err != nil {
		s.log.Warn("rank jobs failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, matchesResponse{Matches: matches, Count: len(matches)})
}

// handleJobCandidates ranks candidates for one posting.
// GET /jobs/{id}/candidates.
func (s *Server) handleJobCandidates(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	matches, err := s.engine.RankCandidatesForJob(r.Context(), jobID)
	if err != nil {
		s.log.Warn("rank candidates failed", zap.String("job_id", jobID.String()), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, matchesResponse{Matches: matches, Count: len(matches)})
}

// handleIngest accepts a scraped batch.
// POST /ingest, body: {"jobs": [...]}.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Jobs []types.ExternalJobInput `json:"jobs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Jobs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "empty batch")
		return
	}

	stats, recordErrs, err := s.engine.Ingest(r.Context(), body.Jobs)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := ingestResponse{IngestStats: stats}
	for _, recordErr := range recordErrs {
		resp.RecordErrors = append(resp.RecordErrors, recordErr.Error())
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleExpire runs the expiry sweep on demand.
// POST /maintenance/expire.
func (s *Server) handleExpire(w http.ResponseWriter, r *http.Request) {
	swept, err := s.engine.ExpireStaleJobs(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]int{"swept": swept})
}
