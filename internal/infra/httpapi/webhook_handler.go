// internal/infra/httpapi/webhook_handler.go
package httpapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
)

// SignatureVerifier decides whether a webhook request body is authentic.
type SignatureVerifier interface {
	Verify(body []byte, signature string) bool
}

// LineSignatureVerifier checks the X-Line-Signature header against the
// channel secret. An empty secret disables verification, which is the local
// development mode.
type LineSignatureVerifier struct {
	secret string
}

func NewLineSignatureVerifier(secret string) *LineSignatureVerifier {
	return &LineSignatureVerifier{secret: secret}
}

func (v *LineSignatureVerifier) Verify(body []byte, signature string) bool {
	if v.secret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type webhookEvent struct {
	Source struct {
		GroupID string `json:"groupId"`
		RoomID  string `json:"roomId"`
		UserID  string `json:"userId"`
	} `json:"source"`
}

type webhookBody struct {
	Events []webhookEvent `json:"events"`
}

// LineWebhook receives LINE platform events. It logs the event source IDs
// (the operational way to discover a group ID for alert configuration) and
// always answers 200, since LINE's endpoint verification expects success even on
// bodies we cannot use.
func (h *Handler) LineWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "error": "handled"})
		return
	}

	if !h.verifier.Verify(body, r.Header.Get("X-Line-Signature")) {
		h.logger.Warn("LINE webhook signature verification failed, ignoring events")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	var parsed webhookBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		h.logger.WithError(err).Warn("Cannot parse LINE webhook body")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	for _, ev := range parsed.Events {
		switch {
		case ev.Source.GroupID != "":
			h.logger.WithField("group_id", ev.Source.GroupID).Info("LINE webhook event from group")
		case ev.Source.RoomID != "":
			h.logger.WithField("room_id", ev.Source.RoomID).Info("LINE webhook event from room")
		case ev.Source.UserID != "":
			h.logger.WithField("user_id", ev.Source.UserID).Info("LINE webhook event from user")
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
