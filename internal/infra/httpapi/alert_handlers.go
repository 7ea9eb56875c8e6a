// internal/infra/httpapi/alert_handlers.go
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type alertRequest struct {
	Text string `json:"text"`
}

// SendAlert pushes an operator-written message to every configured channel.
// Blank text is rejected before any delivery attempt; a partial delivery
// failure answers 207 with the per-channel outcomes.
func (h *Handler) SendAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "message text is required")
		return
	}

	result := h.dispatcher.Dispatch(r.Context(), req.Text, h.channels)

	status := http.StatusOK
	if !result.AllSucceeded {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, result)
}
