package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page routes exist so the route guard has navigation targets to evaluate.
// Rendering is a client concern; each route answers with a small descriptor.
func (h *Handler) registerPageRoutes(r *gin.Engine) {
	pages := map[string]string{
		"/":          "root",
		"/login":     "login",
		"/signup":    "signup",
		"/dashboard": "dashboard",
		"/editor":    "editor",
		"/posts":     "posts",
		"/profile":   "profile",
	}
	for path, name := range pages {
		r.GET(path, pageHandler(name))
	}
}

func pageHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": name})
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
