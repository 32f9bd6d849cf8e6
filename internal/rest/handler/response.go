package handler

import (
	"net/http"

	restTypes "github.com/tubeguard/tubeguard/internal/rest/types"
	"github.com/uptrace/bunrouter"
)

// writeError sends a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return bunrouter.JSON(w, restTypes.ErrorResponse{Error: message})
}
