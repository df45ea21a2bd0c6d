package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const sessionUserKey = "sessionUser"

// sessionMiddleware authenticates API requests. It accepts the session token
// either as a Bearer header or from the session cookie, so browser and API
// clients share one contract.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		if cookie, err := c.Cookie(authCookieName); err == nil {
			token = cookie
		}
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing session token",
		})
		return
	}

	username, err := h.services.Session.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(sessionUserKey, username)
	c.Next()
}

// sessionUser returns the authenticated username stored by sessionMiddleware.
func (h *Handler) sessionUser(c *gin.Context) string {
	return c.GetString(sessionUserKey)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Paths the route guard never inspects: the API prefix, assets and favicon.
var guardSkipPrefixes = []string{"/api", "/auth", "/swagger", "/static", "/ws", "/health"}

// Protected app pages; unauthenticated traffic is redirected to /login.
var appPathPrefixes = []string{"/dashboard", "/editor", "/posts", "/profile"}

const (
	loginPath     = "/login"
	signupPath    = "/signup"
	dashboardPath = "/dashboard"
)

// routeGuard evaluates the page redirect rules in order, first match wins:
//  1. authenticated on /login or /signup    -> /dashboard
//  2. unauthenticated on a protected page   -> /login
//  3. unauthenticated on /                  -> /login
//  4. authenticated on /                    -> /dashboard
//  5. pass through
//
// A request counts as authenticated only when the session cookie holds a
// token that verifies, not merely when the cookie is present.
func (h *Handler) routeGuard(c *gin.Context) {
	path := c.Request.URL.Path
	if guardSkipped(path) {
		c.Next()
		return
	}

	authed := h.cookieAuthenticated(c)

	switch {
	case authed && (path == loginPath || path == signupPath):
		h.redirect(c, dashboardPath)
	case !authed && isAppPath(path):
		h.redirect(c, loginPath)
	case !authed && path == "/":
		h.redirect(c, loginPath)
	case authed && path == "/":
		h.redirect(c, dashboardPath)
	default:
		c.Next()
	}
}

func (h *Handler) redirect(c *gin.Context, target string) {
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// cookieAuthenticated reports whether the session cookie verifies.
func (h *Handler) cookieAuthenticated(c *gin.Context) bool {
	cookie, err := c.Cookie(authCookieName)
	if err != nil || cookie == "" {
		return false
	}
	if _, err := h.services.Session.ParseToken(cookie); err != nil {
		if h.log != nil {
			h.log.Infow("route_guard_bad_cookie", "err", err)
		}
		return false
	}
	return true
}

func guardSkipped(path string) bool {
	if path == "/favicon.ico" {
		return true
	}
	for _, prefix := range guardSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isAppPath(path string) bool {
	for _, prefix := range appPathPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
