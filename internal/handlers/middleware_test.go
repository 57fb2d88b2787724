package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCSRFProtect(t *testing.T) {
	h, db := setupTestHandler()
	h.cfg.DisableCSRF = false
	r := setupTestRouter(h)

	createUser(db, "alice")

	fetchToken := func(t *testing.T) (string, string) {
		t.Helper()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/login", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		cookie := w.Header().Get("Set-Cookie")
		match := regexp.MustCompile(`name="csrf_token" value="([^"]+)"`).FindStringSubmatch(w.Body.String())
		assert.Len(t, match, 2)
		return match[1], cookie
	}

	t.Run("Missing Token Rejected", func(t *testing.T) {
		_, cookie := fetchToken(t)

		form := url.Values{}
		form.Add("username", "alice")
		form.Add("password", "password123")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Cookie", cookie)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("Valid Token Accepted", func(t *testing.T) {
		token, cookie := fetchToken(t)

		form := url.Values{}
		form.Add("username", "alice")
		form.Add("password", "password123")
		form.Add("csrf_token", token)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Cookie", cookie)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	// The signup page drops any logged-in user from the session before
	// rendering; the token issued by the middleware must survive that.
	t.Run("Signup Form Keeps Token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/signup", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		cookie := w.Header().Get("Set-Cookie")
		match := regexp.MustCompile(`name="csrf_token" value="([^"]+)"`).FindStringSubmatch(w.Body.String())
		assert.Len(t, match, 2, "signup form rendered without a csrf token")
		token := match[1]

		form := url.Values{}
		form.Add("username", "csrfsignup")
		form.Add("email", "csrfsignup@example.com")
		form.Add("password", "password123")
		form.Add("csrf_token", token)

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("POST", "/signup", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Cookie", cookie)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		var count int64
		db.Model(&models.User{}).Where("username = ?", "csrfsignup").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("API Paths Exempt", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/login", strings.NewReader(`{"username":"alice","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSafeReturnPath(t *testing.T) {
	assert.Equal(t, "/users/1", safeReturnPath("/users/1"))
	assert.Equal(t, "/", safeReturnPath("//evil.example"))
	assert.Equal(t, "/", safeReturnPath("https://evil.example"))
	assert.Equal(t, "/", safeReturnPath(""))
}
