package api

import (
	"net/http"

	"github.com/avieira/cardbox/internal/models"
)

type createCardRequest struct {
	GroupID  int64  `json:"group_id" validate:"required,gt=0"`
	Front    string `json:"front" validate:"required"`
	Back     string `json:"back"`
	MediaRef string `json:"media_ref"`
}

type updateCardRequest struct {
	Front    *string `json:"front"`
	Back     *string `json:"back"`
	MediaRef *string `json:"media_ref"`
}

type submitReviewRequest struct {
	Response string `json:"response" validate:"required,oneof=again hard easy"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), req.GroupID, req.Front, req.Back, req.MediaRef)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req updateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), id, req.Front, req.Back, req.MediaRef)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.ReviewService.SubmitReview(r.Context(), id, models.Response(req.Response))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}
