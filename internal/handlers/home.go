package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// homeTimelineLimit caps the home feed at the 100 newest messages.
const homeTimelineLimit = 100

// ShowHomepage renders the timeline of the viewer and everyone they follow.
// Anonymous visitors get the signup splash instead.
func (h *Handler) ShowHomepage(c *gin.Context) {
	viewer, ok := h.currentUser(c)
	if !ok {
		c.HTML(http.StatusOK, "home_anon.html", h.pageData(c, nil, nil))
		return
	}

	ctx := c.Request.Context()

	following, err := h.socialService.Following(ctx, viewer)
	if err != nil {
		h.logger.Error("failed to load following", "error", err)
	}

	userIDs := make([]uint, 0, len(following)+1)
	for _, u := range following {
		userIDs = append(userIDs, u.ID)
	}
	userIDs = append(userIDs, viewer.ID)

	messages, err := h.messageService.RecentFor(ctx, userIDs, homeTimelineLimit)
	if err != nil {
		h.logger.Error("failed to load timeline", "error", err)
	}

	c.HTML(http.StatusOK, "home.html", h.pageData(c, viewer, gin.H{
		"Messages": messages,
		"LikedIDs": h.likedIDs(ctx, viewer),
		"CameFrom": "/",
	}))
}
