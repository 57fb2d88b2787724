package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"warbler/internal/models"
	"warbler/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateMessageRequest struct {
	Text string `json:"text" binding:"required,max=140"`
}

// loadMessage fetches the message named in the path or renders a 404.
func (h *Handler) loadMessage(c *gin.Context, viewer *models.User) (*models.Message, bool) {
	id, ok := parseID(c, "message_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", h.pageData(c, viewer, nil))
		return nil, false
	}
	message, err := h.messageService.Get(c.Request.Context(), id)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", h.pageData(c, viewer, nil))
		return nil, false
	}
	return message, true
}

func (h *Handler) ShowMessageForm(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	c.HTML(http.StatusOK, "messages_create.html", h.pageData(c, viewer, nil))
}

func (h *Handler) HandleMessageForm(c *gin.Context) {
	viewer, _ := h.currentUser(c)

	message, err := h.messageService.Create(c.Request.Context(), viewer, c.PostForm("text"))
	if err != nil {
		errorMessage := "Failed to post message"
		switch {
		case errors.Is(err, services.ErrEmptyText):
			errorMessage = "Message text is required."
		case errors.Is(err, services.ErrTextTooLong):
			errorMessage = "Messages are limited to 140 characters."
		}
		c.HTML(http.StatusOK, "messages_create.html", h.pageData(c, viewer, gin.H{
			"Error": errorMessage,
		}))
		return
	}

	h.auditService.LogAction(&viewer.ID, "POST_MESSAGE",
		strconv.FormatUint(uint64(message.ID), 10), nil, c.ClientIP(), c.Request.UserAgent())

	c.Redirect(http.StatusFound, "/users/"+strconv.FormatUint(uint64(viewer.ID), 10))
}

func (h *Handler) ShowMessage(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	message, ok := h.loadMessage(c, viewer)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	likeCount, err := h.likeService.LikeCount(ctx, message)
	if err != nil {
		h.logger.Error("failed to count likes", "message_id", message.ID, "error", err)
	}

	c.HTML(http.StatusOK, "messages_show.html", h.pageData(c, viewer, gin.H{
		"Message":   message,
		"LikeCount": likeCount,
		"LikedIDs":  h.likedIDs(ctx, viewer),
		"CameFrom":  c.Request.URL.Path,
	}))
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	message, ok := h.loadMessage(c, viewer)
	if !ok {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), message, viewer); err != nil {
		h.flash(c, "danger", "Access unauthorized.")
		c.Redirect(http.StatusFound, "/messages/"+strconv.FormatUint(uint64(message.ID), 10))
		return
	}

	h.flash(c, "success", "Message successfully deleted.")
	c.Redirect(http.StatusFound, "/users/"+strconv.FormatUint(uint64(viewer.ID), 10))
}

func (h *Handler) LikeMessage(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	message, ok := h.loadMessage(c, viewer)
	if !ok {
		return
	}

	// Liking your own message is refused here; the store itself doesn't care.
	if message.UserID == viewer.ID {
		h.flash(c, "danger", "You cannot like your own message.")
		c.Redirect(http.StatusFound, safeReturnPath(c.PostForm("came_from")))
		return
	}

	if err := h.likeService.Like(c.Request.Context(), viewer, message); err != nil {
		h.logger.Error("like failed", "message_id", message.ID, "error", err)
	}

	c.Redirect(http.StatusFound, safeReturnPath(c.PostForm("came_from")))
}

func (h *Handler) UnlikeMessage(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	message, ok := h.loadMessage(c, viewer)
	if !ok {
		return
	}

	if err := h.likeService.Unlike(c.Request.Context(), viewer, message); err != nil {
		h.logger.Error("unlike failed", "message_id", message.ID, "error", err)
	}

	c.Redirect(http.StatusFound, safeReturnPath(c.PostForm("came_from")))
}

// CreateMessageAPI is the JSON flavor of posting a message.
func (h *Handler) CreateMessageAPI(c *gin.Context) {
	viewer, _ := h.currentUser(c)

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.Create(c.Request.Context(), viewer, req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.auditService.LogAction(&viewer.ID, "POST_MESSAGE",
		strconv.FormatUint(uint64(message.ID), 10), nil, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, message)
}
