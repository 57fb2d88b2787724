package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"warbler/internal/config"
	"warbler/internal/models"
	"warbler/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	sessionUserKey = "user_id"
	sessionCSRFKey = "csrf_token"
)

type Handler struct {
	cfg            config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	userService    *services.UserService
	socialService  *services.SocialService
	messageService *services.MessageService
	likeService    *services.LikeService
	auditService   *services.AuditService
	qrService      *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	rdb *redis.Client,
	userService *services.UserService,
	socialService *services.SocialService,
	messageService *services.MessageService,
	likeService *services.LikeService,
	auditService *services.AuditService,
	qrService *services.QRService,
) *Handler {
	return &Handler{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		userService:    userService,
		socialService:  socialService,
		messageService: messageService,
		likeService:    likeService,
		auditService:   auditService,
		qrService:      qrService,
	}
}

// currentUser resolves the logged-in user from the session, falling back to
// an X-API-Key header for API clients.
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	session := sessions.Default(c)
	if idVal := session.Get(sessionUserKey); idVal != nil {
		if id, ok := idVal.(uint); ok {
			user, err := h.userService.GetByID(c.Request.Context(), id)
			if err == nil {
				return user, true
			}
			// Stale session pointing at a deleted user.
			session.Delete(sessionUserKey)
			session.Save()
		}
		return nil, false
	}

	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		user, err := h.userService.GetByAPIKey(c.Request.Context(), apiKey)
		if err == nil {
			return user, true
		}
	}

	return nil, false
}

func (h *Handler) login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	return session.Save()
}

func (h *Handler) logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// flash queues a one-shot banner for the next rendered page.
func (h *Handler) flash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(category + "|" + message)
	session.Save()
}

type Flash struct {
	Category string
	Message  string
}

func (h *Handler) takeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	session.Save()

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		category, message, found := strings.Cut(s, "|")
		if !found {
			category, message = "info", s
		}
		flashes = append(flashes, Flash{Category: category, Message: message})
	}
	return flashes
}

// pageData assembles the fields every template expects.
func (h *Handler) pageData(c *gin.Context, user *models.User, extra gin.H) gin.H {
	data := gin.H{
		"User":      user,
		"CSRFToken": h.csrfToken(c),
		"Flashes":   h.takeFlashes(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// unauthorized flashes and bounces the visitor to the anonymous homepage, the
// same treatment the pages give any unauthenticated access.
func (h *Handler) unauthorized(c *gin.Context) {
	h.flash(c, "danger", "Access unauthorized.")
	c.Redirect(http.StatusFound, "/")
}

// safeReturnPath keeps redirect-back targets on this site.
func safeReturnPath(path string) string {
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return path
	}
	return "/"
}
