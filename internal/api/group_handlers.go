package api

import (
	"net/http"

	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/worker"
)

type createGroupRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
}

type updateGroupRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	ParentID *int64  `json:"parent_id" validate:"omitempty,gt=0"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	group, err := s.GroupService.CreateGroup(r.Context(), req.Name, req.ParentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.GroupService.ListGroups(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	group, err := s.GroupService.GetGroup(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req updateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	group, err := s.GroupService.UpdateGroup(r.Context(), id, req.Name, req.ParentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.GroupService.DeleteGroup(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// handleResetProgress queues the bulk reset and returns immediately; the
// job is idempotent so clients may simply resubmit on failure.
func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

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

	// Resolve the group up front so a bad id fails the request, not the job.
	if _, err := s.GroupService.GetGroup(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	s.ResetPool.Submit(&worker.ResetProgressJob{
		Groups:          s.GroupService,
		GroupID:         id,
		IncludeChildren: includeChildren,
	})
	log.Info("queued progress reset: group_id=%d", id)
	respondJSON(w, http.StatusAccepted, map[string]any{"status": "queued"})
}
