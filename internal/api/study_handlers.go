package api

import (
	"net/http"
	"strconv"

	"github.com/avieira/cardbox/internal/errors"
)

// handleDueCards serves the study queue: cards due now, oldest due first,
// optionally scoped to a group subtree.
func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	var groupID *int64
	if v := r.URL.Query().Get("group_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid group_id: "+v))
			return
		}
		groupID = &id
	}

	includeChildren, err := queryBool(r, "include_children", true)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", s.DueBatchLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.StudyService.DueCards(r.Context(), groupID, includeChildren, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// handlePracticeCards serves every card in a group scope regardless of due
// date, for practice sessions that ignore the schedule.
func (s *Server) handlePracticeCards(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	includeChildren, err := queryBool(r, "include_children", true)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.StudyService.AllCards(r.Context(), id, includeChildren, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}
