package handlers

import (
	"net/http"

	"propmart/database/repository"
	"propmart/models"
	"propmart/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes a buyer's notification history.
type NotificationHandler struct {
	Notifications repository.NotificationRepository
}

func NewNotificationHandler(notifications repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

// ListMyNotificationsHandler returns the authenticated buyer's notifications.
func (h *NotificationHandler) ListMyNotificationsHandler(c *gin.Context) {
	buyerID := c.GetString("buyerID")
	if buyerID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "missing buyer identity", "")
		return
	}

	items, err := h.Notifications.ListByBuyer(c.Request.Context(), buyerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load notifications", err.Error())
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	c.JSON(http.StatusOK, items)
}
