package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oakline-studio/crm-backend/internal/usecase"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondError maps the usecase error taxonomy onto HTTP statuses: domain
// errors are the caller's fault, technical errors are ours.
func respondError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case usecase.CodeCampaignNotFound, usecase.CodeTemplateNotFound,
			usecase.CodeContactNotFound, usecase.CodeSegmentNotFound:
			status = http.StatusNotFound
		case usecase.CodeRateLimited:
			status = http.StatusTooManyRequests
		}
		respondJSON(w, status, errorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	var technicalErr *usecase.TechnicalError
	if errors.As(err, &technicalErr) {
		status := http.StatusInternalServerError
		if technicalErr.Code == usecase.CodeTransportUnavailable {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, errorResponse{Error: technicalErr.Message, Code: technicalErr.Code})
		return
	}

	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
