package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

const (
	codeValidation = "VALIDATION_ERROR"
	codeNotFound   = "NOT_FOUND"
	codeConflict   = "CONFLICT"
	codeInternal   = "INTERNAL_ERROR"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidPayout):
		return http.StatusBadRequest, codeValidation, err.Error()
	case errors.Is(err, domain.ErrOfferNotFound),
		errors.Is(err, domain.ErrInfluencerNotFound),
		errors.Is(err, domain.ErrCustomPayoutNotFound):
		return http.StatusNotFound, codeNotFound, err.Error()
	case errors.Is(err, domain.ErrRedundantCustomPayout):
		return http.StatusConflict, codeConflict, "custom payout matches the base offer payout, no custom payout is needed"
	case errors.Is(err, domain.ErrCustomPayoutConflict), errors.Is(err, domain.ErrInfluencerEmailTaken):
		return http.StatusConflict, codeConflict, err.Error()
	default:
		return http.StatusInternalServerError, codeInternal, "internal server error"
	}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := mapDomainError(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeError(w, status, code, msg)
}
