package notify

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"flexwage/apperr"
	"flexwage/models"
	"flexwage/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var n models.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid notification data")
		return
	}

	created, err := h.svc.Create(r.Context(), n)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save notification")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"notificationid": created.NotificationID,
	})
}

func (h *Handler) GetUserNotifications(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	notifications, err := h.svc.ListForUser(r.Context(), ps.ByName("userid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	if len(notifications) == 0 {
		notifications = []models.Notification{}
	}
	utils.RespondWithJSON(w, http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.MarkRead(r.Context(), ps.ByName("id")); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
