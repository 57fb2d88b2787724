package handlers

import (
	"errors"
	"net/http"

	"warbler/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	ImageURL string `json:"image_url"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) ShowSignup(c *gin.Context) {
	// Signing up always starts logged out. Only the user id is dropped; a
	// full session clear would also wipe the CSRF token the middleware just
	// issued and the form would render without one.
	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	session.Save()
	c.HTML(http.StatusOK, "signup.html", h.pageData(c, nil, nil))
}

func (h *Handler) HandleSignupForm(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	imageURL := c.PostForm("image_url")

	if username == "" || email == "" || len(password) < 6 {
		c.HTML(http.StatusBadRequest, "signup.html", h.pageData(c, nil, gin.H{
			"Error": "Username, email, and a password of at least 6 characters are required.",
		}))
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), username, email, password, imageURL)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			c.HTML(http.StatusConflict, "signup.html", h.pageData(c, nil, gin.H{
				"Error": "Username already taken",
			}))
			return
		}
		h.logger.Error("signup failed", "error", err)
		c.HTML(http.StatusInternalServerError, "signup.html", h.pageData(c, nil, gin.H{
			"Error": "Failed to create user",
		}))
		return
	}

	h.auditService.LogAction(&user.ID, "REGISTER", user.Username, nil, c.ClientIP(), c.Request.UserAgent())

	if err := h.login(c, user); err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", h.pageData(c, nil, gin.H{
			"Error": "Failed to save session",
		}))
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.pageData(c, nil, nil))
}

func (h *Handler) HandleLoginForm(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.userService.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		h.flash(c, "danger", "Invalid credentials.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.login(c, user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", h.pageData(c, nil, gin.H{
			"Error": "Failed to save session",
		}))
		return
	}

	h.auditService.LogAction(&user.ID, "LOGIN", user.Username, nil, c.ClientIP(), c.Request.UserAgent())

	h.flash(c, "success", "Hello, "+user.Username+"!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) LogoutUser(c *gin.Context) {
	if err := h.logout(c); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", h.pageData(c, nil, gin.H{
			"Error": "Failed to clear session",
		}))
		return
	}
	h.flash(c, "success", "You have been successfully logged out!")
	c.Redirect(http.StatusFound, "/login")
}

// RegisterUser is the JSON flavor of signup used by API clients.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), req.Username, req.Email, req.Password, req.ImageURL)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.auditService.LogAction(&user.ID, "REGISTER", user.Username, nil, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "api_key": user.APIKey})
}

func (h *Handler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if err := h.login(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	h.auditService.LogAction(&user.ID, "LOGIN", user.Username, nil, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "api_key": user.APIKey})
}
