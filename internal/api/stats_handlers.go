package api

import "net/http"

func (s *Server) handleCardStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.CardStats(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGroupStats(w http.ResponseWriter, r *http.Request) {
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

	stats, err := s.StatsService.GroupStats(r.Context(), id, includeChildren)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
