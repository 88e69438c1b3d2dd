package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type TemplateHandler struct {
	Templates entity.TemplateRepositoryInterface
}

func NewTemplateHandler(templates entity.TemplateRepositoryInterface) *TemplateHandler {
	return &TemplateHandler{Templates: templates}
}

type templateRequest struct {
	Name      string   `json:"name"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Variables []string `json:"variables,omitempty"`
}

func (h *TemplateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	template, err := entity.NewTemplate(req.Name, req.Subject, req.Body, req.Variables)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.Templates.Create(r.Context(), template); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, template)
}

func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Templates.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	template, err := h.Templates.FindByID(r.Context(), chi.URLParam(r, "templateId"))
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "template not found"})
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, template)
}

// HandleUpdate edits a template in place; campaigns reference templates by id,
// so already-sent units are unaffected and future units pick up the edit.
func (h *TemplateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	template, err := h.Templates.FindByID(r.Context(), chi.URLParam(r, "templateId"))
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "template not found"})
			return
		}
		respondError(w, err)
		return
	}

	template.Name = req.Name
	template.Subject = req.Subject
	template.Body = req.Body
	if req.Variables != nil {
		template.Variables = req.Variables
	}

	if err := template.Validate(); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.Templates.Update(r.Context(), template); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, template)
}

func (h *TemplateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Templates.Delete(r.Context(), chi.URLParam(r, "templateId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
