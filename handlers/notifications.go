package handlers

import (
	"net/http"

	"powerup/services/notification"
	"powerup/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Service notification.NotificationService
}

// List returns the caller's inbox; ?unread=true narrows it to unread entries.
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context(), userID(c), c.Query("unread") == "true")
	if err != nil {
		utils.RespondError(c, "Failed to list notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.Service.UnreadCount(c.Request.Context(), userID(c))
	if err != nil {
		utils.RespondError(c, "Failed to count notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		utils.RespondError(c, "Failed to mark notification read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		utils.RespondError(c, "Failed to delete notification", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func (h *NotificationHandler) RegisterPushToken(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if err := h.Service.RegisterPushToken(c.Request.Context(), userID(c), body.Token); err != nil {
		utils.RespondError(c, "Failed to register push token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token registered"})
}
