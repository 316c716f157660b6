// Package httpapi exposes the assistant over a JSON HTTP API. Routing uses
// the standard mux with method-and-path patterns; every handler decodes a
// request struct, calls one assistant method, and writes a JSON response.
package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/smkwon/lifeone/internal/auth"
	"github.com/smkwon/lifeone/internal/chat"
	"github.com/smkwon/lifeone/internal/extract"
	"github.com/smkwon/lifeone/internal/middleware"
	"github.com/smkwon/lifeone/internal/models"
	"github.com/smkwon/lifeone/internal/reconcile"
	"github.com/smkwon/lifeone/internal/records"
	"github.com/smkwon/lifeone/internal/service"
)

// Handler serves the JSON API.
type Handler struct {
	assistant *service.Assistant
	gate      *auth.Gate
	jwt       *auth.JWTManager
}

// New creates the API handler.
func New(assistant *service.Assistant, gate *auth.Gate, jwt *auth.JWTManager) *Handler {
	return &Handler{assistant: assistant, gate: gate, jwt: jwt}
}

// Routes assembles the full route table. Everything under /api except health
// and login requires a bearer token.
func (h *Handler) Routes() http.Handler {
	protected := http.NewServeMux()

	protected.HandleFunc("POST /api/chat/messages", h.postMessage)
	protected.HandleFunc("GET /api/chat/conflict", h.getConflict)
	protected.HandleFunc("POST /api/chat/conflict", h.postConflict)
	protected.HandleFunc("GET /api/chat/sessions", h.listSessions)
	protected.HandleFunc("GET /api/chat/sessions/{id}", h.getSession)
	protected.HandleFunc("PUT /api/chat/sessions/{id}", h.renameSession)
	protected.HandleFunc("DELETE /api/chat/sessions/{id}", h.deleteSession)
	protected.HandleFunc("PUT /api/chat/active", h.selectSession)

	protected.HandleFunc("GET /api/contacts", h.listContacts)
	protected.HandleFunc("POST /api/contacts", h.createContact)
	protected.HandleFunc("PUT /api/contacts/{id}", h.updateContact)
	protected.HandleFunc("DELETE /api/contacts/{id}", h.deleteContact)

	protected.HandleFunc("GET /api/schedule", h.listSchedule)
	protected.HandleFunc("POST /api/schedule", h.createScheduleItem)
	protected.HandleFunc("PUT /api/schedule/{id}", h.updateScheduleItem)
	protected.HandleFunc("DELETE /api/schedule/{id}", h.deleteScheduleItem)

	protected.HandleFunc("GET /api/categories", h.listCategories)
	protected.HandleFunc("POST /api/categories", h.createCategory)
	protected.HandleFunc("PUT /api/categories/{id}", h.updateCategory)
	protected.HandleFunc("DELETE /api/categories/{id}", h.deleteCategory)

	protected.HandleFunc("GET /api/expenses", h.listExpenses)
	protected.HandleFunc("GET /api/expenses/summary", h.expenseSummary)
	protected.HandleFunc("POST /api/expenses", h.createExpense)
	protected.HandleFunc("PUT /api/expenses/{id}", h.updateExpense)
	protected.HandleFunc("DELETE /api/expenses/{id}", h.deleteExpense)

	protected.HandleFunc("GET /api/diary", h.listDiary)
	protected.HandleFunc("POST /api/diary", h.createDiaryEntry)
	protected.HandleFunc("PUT /api/diary/{id}", h.updateDiaryEntry)
	protected.HandleFunc("DELETE /api/diary/{id}", h.deleteDiaryEntry)

	protected.HandleFunc("GET /api/history", h.listHistory)

	protected.HandleFunc("GET /api/trash", h.listTrash)
	protected.HandleFunc("POST /api/trash/{id}/restore", h.restoreTrashItem)
	protected.HandleFunc("DELETE /api/trash/{id}", h.purgeTrashItem)
	protected.HandleFunc("DELETE /api/trash", h.emptyTrash)

	protected.HandleFunc("GET /api/notifications", h.listNotifications)
	protected.HandleFunc("POST /api/notifications/{id}/ack", h.ackNotification)
	protected.HandleFunc("DELETE /api/notifications", h.clearNotifications)
	protected.HandleFunc("GET /api/notifications/settings", h.getNotificationSettings)
	protected.HandleFunc("PUT /api/notifications/settings", h.putNotificationSettings)

	protected.HandleFunc("GET /api/export", h.export)
	protected.HandleFunc("POST /api/import", h.importBackup)
	protected.HandleFunc("POST /api/import/kakao", h.importKakao)
	protected.HandleFunc("POST /api/import/vcard", h.importVCard)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.Handle("/api/", middleware.RequireAuth(h.jwt)(protected))
	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.gate.Check(req.Password); err != nil {
		writeError(w, err)
		return
	}
	token, err := h.jwt.Generate()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
		Image     *struct {
			Name string `json:"name"`
			MIME string `json:"mimeType"`
			Data string `json:"data"` // base64
		} `json:"image,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		req.SessionID = models.NewSessionID
	}

	var image *extract.Image
	if req.Image != nil {
		data, err := base64.StdEncoding.DecodeString(req.Image.Data)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image data is not valid base64"})
			return
		}
		image = &extract.Image{Name: req.Image.Name, MIME: req.Image.MIME, Data: data}
	}

	result, err := h.assistant.HandleMessage(r.Context(), req.SessionID, req.Text, image)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getConflict(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"conflicts": h.assistant.PendingConflicts()})
}

func (h *Handler) postConflict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice reconcile.Choice `json:"choice"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.assistant.ResolveConflict(r.Context(), req.Choice); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":        h.assistant.Sessions(),
		"activeSessionId": h.assistant.ActiveSessionID(),
	})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.assistant.Session(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) renameSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.assistant.RenameSession(r.Context(), r.PathValue("id"), req.Title); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) selectSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.assistant.SelectSession(r.Context(), req.SessionID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "selected"})
}

// decode unmarshals the request body into v, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, records.ErrTrashNotFound),
		errors.Is(err, chat.ErrSessionNotFound),
		errors.Is(err, reconcile.ErrNoPendingDecision):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTurnInFlight),
		errors.Is(err, reconcile.ErrDecisionPending):
		status = http.StatusConflict
	case errors.Is(err, models.ErrMalformedSnapshot),
		errors.Is(err, records.ErrSentinelCategory):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
