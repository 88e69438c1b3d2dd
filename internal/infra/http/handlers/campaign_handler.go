package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakline-studio/crm-backend/internal/entity"
	"github.com/oakline-studio/crm-backend/internal/infra/http/middleware"
	"github.com/oakline-studio/crm-backend/internal/usecase"
)

type CampaignHandler struct {
	Campaigns entity.CampaignRepositoryInterface
	CreateUC  *usecase.CreateCampaignUseCase
	EnrollUC  *usecase.EnrollContactsUseCase
	SendUC    *usecase.SendBatchUseCase
}

func NewCampaignHandler(
	campaigns entity.CampaignRepositoryInterface,
	createUC *usecase.CreateCampaignUseCase,
	enrollUC *usecase.EnrollContactsUseCase,
	sendUC *usecase.SendBatchUseCase,
) *CampaignHandler {
	return &CampaignHandler{
		Campaigns: campaigns,
		CreateUC:  createUC,
		EnrollUC:  enrollUC,
		SendUC:    sendUC,
	}
}

func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	input.Actor = middleware.ActorFrom(r.Context())

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output.Campaign)
}

func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Campaigns.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Campaigns.FindByID(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "campaign not found"})
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) HandleListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.Campaigns.ListEmails(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emails)
}

type addContactsRequest struct {
	ContactIDs []string `json:"contact_ids"`
}

func (h *CampaignHandler) HandleAddContacts(w http.ResponseWriter, r *http.Request) {
	var req addContactsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	err := h.EnrollUC.AddContacts(r.Context(), chi.URLParam(r, "campaignId"),
		req.ContactIDs, middleware.ActorFrom(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addSegmentRequest struct {
	SegmentID string `json:"segment_id"`
}

func (h *CampaignHandler) HandleAddSegment(w http.ResponseWriter, r *http.Request) {
	var req addSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	err := h.EnrollUC.AddSegment(r.Context(), chi.URLParam(r, "campaignId"),
		req.SegmentID, middleware.ActorFrom(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSend triggers one dispatch pass. The operator clicks send again until
// sent=0 and errors is empty.
func (h *CampaignHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	output, err := h.SendUC.Execute(r.Context(), usecase.SendBatchInput{
		CampaignID: chi.URLParam(r, "campaignId"),
		Actor:      middleware.ActorFrom(r.Context()),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}
