package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oakline-studio/crm-backend/internal/entity"
	"github.com/oakline-studio/crm-backend/internal/infra/http/middleware"
	"github.com/oakline-studio/crm-backend/internal/metrics"
	"github.com/oakline-studio/crm-backend/internal/usecase"
)

const (
	formScope      = "contact_form"
	formRateLimit  = 10
	formRateWindow = time.Minute
)

type ContactHandler struct {
	Contacts   entity.ContactRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	Segments   entity.SegmentRepositoryInterface
	CaptureUC  *usecase.CaptureContactUseCase
	DeleteUC   *usecase.DeleteContactUseCase
	Limiter    usecase.RateLimiter
}

func NewContactHandler(
	contacts entity.ContactRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
	segments entity.SegmentRepositoryInterface,
	captureUC *usecase.CaptureContactUseCase,
	deleteUC *usecase.DeleteContactUseCase,
	limiter usecase.RateLimiter,
) *ContactHandler {
	return &ContactHandler{
		Contacts:   contacts,
		Activities: activities,
		Segments:   segments,
		CaptureUC:  captureUC,
		DeleteUC:   deleteUC,
		Limiter:    limiter,
	}
}

// HandleCaptureForm is the public contact-form endpoint, throttled per client
// IP before any work happens.
func (h *ContactHandler) HandleCaptureForm(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if res := h.Limiter.Check(clientIP, formScope, formRateLimit, formRateWindow); !res.Allowed {
		metrics.FormSubmissionsThrottled.Inc()
		w.Header().Set("Retry-After", res.RetryAfter.Round(time.Second).String())
		respondJSON(w, http.StatusTooManyRequests, errorResponse{
			Error: "too many requests, please try again later",
		})
		return
	}

	var input usecase.CaptureContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	input.Source = "contact_form"

	output, err := h.CaptureUC.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Contacts.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Contacts.FindByID(r.Context(), chi.URLParam(r, "contactId"))
	if err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "contact not found"})
			return
		}
		respondError(w, err)
		return
	}

	activities, err := h.Activities.ListByContact(r.Context(), contact.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"contact":    contact,
		"activities": activities,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ContactHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	status := entity.ContactStatus(req.Status)
	if !status.Valid() {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid status"})
		return
	}

	if err := h.Contacts.UpdateStatus(r.Context(), chi.URLParam(r, "contactId"), status); err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "contact not found"})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

type suppressionRequest struct {
	DoNotContact bool `json:"do_not_contact"`
	Unsubscribed bool `json:"unsubscribed"`
}

// HandleSetSuppression is the only path that can clear a suppression flag;
// the system itself never does.
func (h *ContactHandler) HandleSetSuppression(w http.ResponseWriter, r *http.Request) {
	var req suppressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	err := h.Contacts.SetSuppression(r.Context(), chi.URLParam(r, "contactId"),
		req.DoNotContact, req.Unsubscribed)
	if err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "contact not found"})
			return
		}
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordActivityRequest struct {
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (h *ContactHandler) HandleRecordActivity(w http.ResponseWriter, r *http.Request) {
	var req recordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	activity, err := entity.NewContactActivity(chi.URLParam(r, "contactId"),
		entity.ActivityType(req.Type), req.Metadata)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.Activities.Append(r.Context(), activity); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, activity)
}

type setSegmentsRequest struct {
	SegmentIDs []string `json:"segment_ids"`
}

// HandleSetSegments replaces the contact's full segment membership set.
func (h *ContactHandler) HandleSetSegments(w http.ResponseWriter, r *http.Request) {
	var req setSegmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	if err := h.Segments.SetContactSegments(r.Context(), chi.URLParam(r, "contactId"), req.SegmentIDs); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.DeleteUC.Execute(r.Context(), chi.URLParam(r, "contactId"),
		middleware.ActorFrom(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
