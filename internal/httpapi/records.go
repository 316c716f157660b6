package httpapi

import (
	"io"
	"net/http"

	"github.com/smkwon/lifeone/internal/models"
)

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"contacts": h.assistant.Contacts()})
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var c models.Contact
	if !decode(w, r, &c) {
		return
	}
	created := h.assistant.AddContact(r.Context(), c)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	var c models.Contact
	if !decode(w, r, &c) {
		return
	}
	c.ID = r.PathValue("id")
	if err := h.assistant.UpdateContact(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.DeleteContact(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "trashed"})
}

func (h *Handler) listSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"schedule": h.assistant.Schedule()})
}

func (h *Handler) createScheduleItem(w http.ResponseWriter, r *http.Request) {
	var item models.ScheduleItem
	if !decode(w, r, &item) {
		return
	}
	created := h.assistant.AddScheduleItem(r.Context(), item)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateScheduleItem(w http.ResponseWriter, r *http.Request) {
	var item models.ScheduleItem
	if !decode(w, r, &item) {
		return
	}
	item.ID = r.PathValue("id")
	if err := h.assistant.UpdateScheduleItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteScheduleItem(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.DeleteScheduleItem(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "trashed"})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": h.assistant.Categories()})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var c models.ScheduleCategory
	if !decode(w, r, &c) {
		return
	}
	created := h.assistant.AddCategory(r.Context(), c)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.ScheduleCategory
	if !decode(w, r, &c) {
		return
	}
	c.ID = r.PathValue("id")
	if err := h.assistant.UpdateCategory(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"expenses": h.assistant.Expenses()})
}

func (h *Handler) expenseSummary(w http.ResponseWriter, r *http.Request) {
	if month := r.URL.Query().Get("month"); month != "" {
		writeJSON(w, http.StatusOK, map[string]any{"summary": h.assistant.ExpenseSummaryForMonth(month)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": h.assistant.ExpenseSummary()})
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var e models.Expense
	if !decode(w, r, &e) {
		return
	}
	created := h.assistant.AddExpense(r.Context(), e)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	var e models.Expense
	if !decode(w, r, &e) {
		return
	}
	e.ID = r.PathValue("id")
	if err := h.assistant.UpdateExpense(r.Context(), e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "trashed"})
}

func (h *Handler) listDiary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"diary": h.assistant.Diary()})
}

func (h *Handler) createDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var d models.DiaryEntry
	if !decode(w, r, &d) {
		return
	}
	created := h.assistant.AddDiaryEntry(r.Context(), d)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var d models.DiaryEntry
	if !decode(w, r, &d) {
		return
	}
	d.ID = r.PathValue("id")
	if err := h.assistant.UpdateDiaryEntry(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) deleteDiaryEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.DeleteDiaryEntry(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "trashed"})
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"history": h.assistant.History()})
}

func (h *Handler) listTrash(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"trash": h.assistant.Trash()})
}

func (h *Handler) restoreTrashItem(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.RestoreTrashItem(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (h *Handler) purgeTrashItem(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.PurgeTrashItem(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}

func (h *Handler) emptyTrash(w http.ResponseWriter, r *http.Request) {
	h.assistant.EmptyTrash(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "emptied"})
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"notifications": h.assistant.Notifications()})
}

func (h *Handler) ackNotification(w http.ResponseWriter, r *http.Request) {
	n, err := h.assistant.AcknowledgeNotification(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handler) clearNotifications(w http.ResponseWriter, r *http.Request) {
	h.assistant.ClearNotifications(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) getNotificationSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assistant.NotificationSettings())
}

func (h *Handler) putNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var s models.NotificationSettings
	if !decode(w, r, &s) {
		return
	}
	h.assistant.UpdateNotificationSettings(r.Context(), s)
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	doc, filename, err := h.assistant.ExportDocument()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := h.assistant.ImportDocument(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) importKakao(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"fileName"`
		Content  string `json:"content"`
	}
	if !decode(w, r, &req) {
		return
	}
	result, err := h.assistant.ImportKakao(r.Context(), req.FileName, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) importVCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"fileName"`
		Content  string `json:"content"`
	}
	if !decode(w, r, &req) {
		return
	}
	result, err := h.assistant.ImportVCard(r.Context(), req.FileName, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
