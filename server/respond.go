package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
)

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// writeError maps taxonomy errors to their status codes and hides the
// detail of anything unexpected behind a 500.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Message: apperrors.Message(err)})
}

func readJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.BadRequest("Invalid JSON body")
	}
	return nil
}
