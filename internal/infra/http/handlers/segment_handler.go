package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type SegmentHandler struct {
	Segments entity.SegmentRepositoryInterface
}

func NewSegmentHandler(segments entity.SegmentRepositoryInterface) *SegmentHandler {
	return &SegmentHandler{Segments: segments}
}

type createSegmentRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (h *SegmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	segment, err := entity.NewSegment(req.Name, req.Color)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.Segments.Create(r.Context(), segment); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, segment)
}

func (h *SegmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	segments, err := h.Segments.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, segments)
}

func (h *SegmentHandler) HandleGetContacts(w http.ResponseWriter, r *http.Request) {
	segmentID := chi.URLParam(r, "segmentId")

	if _, err := h.Segments.FindByID(r.Context(), segmentID); err != nil {
		if errors.Is(err, entity.ErrSegmentNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "segment not found"})
			return
		}
		respondError(w, err)
		return
	}

	ids, err := h.Segments.ListContactIDs(r.Context(), segmentID)
	if err != nil {
		respondError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"contact_ids": ids})
}

type bulkAddRequest struct {
	ContactIDs []string `json:"contact_ids"`
	SegmentIDs []string `json:"segment_ids"`
}

// HandleBulkAdd is the import path: additive membership, never a replace.
func (h *SegmentHandler) HandleBulkAdd(w http.ResponseWriter, r *http.Request) {
	var req bulkAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	if err := h.Segments.BulkAddToSegments(r.Context(), req.ContactIDs, req.SegmentIDs); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SegmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Segments.Delete(r.Context(), chi.URLParam(r, "segmentId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
