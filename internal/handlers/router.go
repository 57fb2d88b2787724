package handlers

import (
	"warbler/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string, staticPath string) *gin.Engine {
	r := gin.Default()

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}
	if staticPath != "" {
		r.Static("/static", staticPath)
	}

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("warbler_session", store))
	r.Use(h.CSRFProtect())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public Routes
	r.GET("/", h.ShowHomepage)
	r.GET("/signup", h.ShowSignup)
	r.POST("/signup", h.HandleSignupForm)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.HandleLoginForm)
	r.POST("/logout", h.LogoutUser)
	r.GET("/users/:user_id/qr", h.ShowUserQR)
	r.POST("/api/register", h.RegisterUser)
	r.POST("/api/login", h.LoginUser)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(h.AuthRequired())
	{
		authorized.GET("/users", h.ListUsers)
		authorized.GET("/users/:user_id", h.ShowUser)
		authorized.GET("/users/:user_id/following", h.ShowFollowing)
		authorized.GET("/users/:user_id/followers", h.ShowFollowers)
		authorized.GET("/users/:user_id/likes", h.ShowLikedMessages)
		authorized.POST("/users/follow/:user_id", h.StartFollowing)
		authorized.POST("/users/stop-following/:user_id", h.StopFollowing)
		authorized.GET("/users/profile", h.ShowProfileForm)
		authorized.POST("/users/profile", h.HandleProfileForm)
		authorized.POST("/users/delete", h.DeleteUser)

		authorized.GET("/messages/new", h.ShowMessageForm)
		authorized.POST("/messages/new", h.HandleMessageForm)
		authorized.GET("/messages/:message_id", h.ShowMessage)
		authorized.POST("/messages/:message_id/delete", h.DeleteMessage)
		authorized.POST("/messages/:message_id/like", h.LikeMessage)
		authorized.POST("/messages/:message_id/unlike", h.UnlikeMessage)

		authorized.POST("/api/v1/messages", h.CreateMessageAPI)
		authorized.DELETE("/api/v1/auth/account", h.DeleteAccount)
	}

	return r
}
