package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"warbler/internal/models"
	"warbler/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// loadUser fetches the user named in the path or renders a 404.
func (h *Handler) loadUser(c *gin.Context, viewer *models.User) (*models.User, bool) {
	id, ok := parseID(c, "user_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", h.pageData(c, viewer, nil))
		return nil, false
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", h.pageData(c, viewer, nil))
		return nil, false
	}
	return user, true
}

func (h *Handler) ListUsers(c *gin.Context) {
	viewer, _ := h.currentUser(c)

	users, err := h.userService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("user search failed", "error", err)
		users = nil
	}

	c.HTML(http.StatusOK, "users_index.html", h.pageData(c, viewer, gin.H{
		"Users": users,
	}))
}

func (h *Handler) ShowUser(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	user, ok := h.loadUser(c, viewer)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	messages, err := h.messageService.ByUser(ctx, user)
	if err != nil {
		h.logger.Error("failed to load messages", "user_id", user.ID, "error", err)
	}

	c.HTML(http.StatusOK, "users_show.html", h.pageData(c, viewer, gin.H{
		"Profile":   user,
		"Messages":  messages,
		"LikedIDs":  h.likedIDs(ctx, viewer),
		"Following": h.isFollowing(ctx, viewer, user),
		"CameFrom":  c.Request.URL.Path,
	}))
}

func (h *Handler) ShowFollowing(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	user, ok := h.loadUser(c, viewer)
	if !ok {
		return
	}

	following, err := h.socialService.Following(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("failed to load following", "user_id", user.ID, "error", err)
	}

	c.HTML(http.StatusOK, "users_following.html", h.pageData(c, viewer, gin.H{
		"Profile": user,
		"Users":   following,
	}))
}

func (h *Handler) ShowFollowers(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	user, ok := h.loadUser(c, viewer)
	if !ok {
		return
	}

	followers, err := h.socialService.Followers(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("failed to load followers", "user_id", user.ID, "error", err)
	}

	c.HTML(http.StatusOK, "users_followers.html", h.pageData(c, viewer, gin.H{
		"Profile": user,
		"Users":   followers,
	}))
}

func (h *Handler) ShowLikedMessages(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	user, ok := h.loadUser(c, viewer)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	liked, err := h.likeService.LikedBy(ctx, user)
	if err != nil {
		h.logger.Error("failed to load liked messages", "user_id", user.ID, "error", err)
	}

	c.HTML(http.StatusOK, "users_liked.html", h.pageData(c, viewer, gin.H{
		"Profile":  user,
		"Messages": liked,
		"LikedIDs": h.likedIDs(ctx, viewer),
		"CameFrom": c.Request.URL.Path,
	}))
}

func (h *Handler) StartFollowing(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	followee, ok := h.loadUser(c, viewer)
	if !ok {
		return
	}

	if err := h.socialService.Follow(c.Request.Context(), viewer, followee.ID); err != nil {
		h.logger.Error("follow failed", "error", err)
		h.unauthorized(c)
		return
	}

	h.auditService.LogAction(&viewer.ID, "FOLLOW", followee.Username, nil, c.ClientIP(), c.Request.UserAgent())

	c.Redirect(http.StatusFound, "/users/"+strconv.FormatUint(uint64(viewer.ID), 10)+"/following")
}

func (h *Handler) StopFollowing(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	id, ok := parseID(c, "user_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", h.pageData(c, viewer, nil))
		return
	}

	if err := h.socialService.Unfollow(c.Request.Context(), viewer, id); err != nil {
		h.logger.Error("unfollow failed", "error", err)
	}

	c.Redirect(http.StatusFound, "/users/"+strconv.FormatUint(uint64(viewer.ID), 10)+"/following")
}

func (h *Handler) ShowProfileForm(c *gin.Context) {
	viewer, _ := h.currentUser(c)
	c.HTML(http.StatusOK, "users_edit.html", h.pageData(c, viewer, gin.H{
		"Profile": viewer,
	}))
}

func (h *Handler) HandleProfileForm(c *gin.Context) {
	viewer, _ := h.currentUser(c)

	changes := services.ProfileUpdate{
		Username:       c.PostForm("username"),
		Email:          c.PostForm("email"),
		ImageURL:       c.PostForm("image_url"),
		HeaderImageURL: c.PostForm("header_image_url"),
		Bio:            c.PostForm("bio"),
		Location:       c.PostForm("location"),
		Password:       c.PostForm("password"),
	}

	updated, err := h.userService.Update(c.Request.Context(), viewer, changes)
	if err != nil {
		message := "Failed to update profile"
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			message = "Invalid password!"
		case errors.Is(err, services.ErrDuplicateUser):
			message = "Username or email already taken"
		}
		c.HTML(http.StatusOK, "users_edit.html", h.pageData(c, viewer, gin.H{
			"Profile": viewer,
			"Error":   message,
		}))
		return
	}

	c.Redirect(http.StatusFound, "/users/"+strconv.FormatUint(uint64(updated.ID), 10))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	viewer, _ := h.currentUser(c)

	if err := h.logout(c); err != nil {
		h.logger.Error("failed to clear session", "error", err)
	}

	if err := h.userService.Delete(c.Request.Context(), viewer); err != nil {
		h.logger.Error("user delete failed", "user_id", viewer.ID, "error", err)
		h.unauthorized(c)
		return
	}

	h.auditService.LogAction(nil, "DELETE_USER", viewer.Username, nil, c.ClientIP(), c.Request.UserAgent())

	h.flash(c, "success", "Your account has been deleted.")
	c.Redirect(http.StatusFound, "/signup")
}

// ShowUserQR serves a shareable QR code for a profile, cached in redis so
// repeat requests skip the PNG encode.
func (h *Handler) ShowUserQR(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	if _, err := h.userService.GetByID(c.Request.Context(), id); err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	cacheKey := "qr:user:" + strconv.FormatUint(uint64(id), 10)
	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "image/png", cached)
			return
		}
	}

	data, err := h.qrService.ProfileQR(h.cfg.BaseURL, id, 256)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	if h.rdb != nil {
		h.rdb.Set(c.Request.Context(), cacheKey, data, 10*time.Minute)
	}

	c.Data(http.StatusOK, "image/png", data)
}

// DeleteAccount is the API flavor of account deletion.
func (h *Handler) DeleteAccount(c *gin.Context) {
	viewer, _ := h.currentUser(c)

	if err := h.logout(c); err != nil {
		h.logger.Error("failed to clear session", "error", err)
	}

	if err := h.userService.Delete(c.Request.Context(), viewer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	h.auditService.LogAction(nil, "DELETE_USER", viewer.Username, nil, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func (h *Handler) likedIDs(ctx context.Context, viewer *models.User) map[uint]bool {
	if viewer == nil {
		return nil
	}
	ids, err := h.likeService.LikedMessageIDs(ctx, viewer)
	if err != nil {
		h.logger.Error("failed to load liked ids", "error", err)
		return nil
	}
	return ids
}

func (h *Handler) isFollowing(ctx context.Context, viewer, user *models.User) bool {
	if viewer == nil || viewer.ID == user.ID {
		return false
	}
	following, err := h.socialService.IsFollowing(ctx, viewer, user)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.Error("failed to check follow state", "error", err)
	}
	return following
}
