package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"travelfy/internal/models"
	"travelfy/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errSavePost   = "failed to save post"
	errListPosts  = "failed to load posts"
	errDeletePost = "failed to delete post"
	errTogglePin  = "failed to toggle pin"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for saving a post. An empty id means create; a non-empty id
// must name an existing post owned by the caller.
type savePostRequest struct {
	ID         string   `json:"id,omitempty"`
	Title      string   `json:"title" binding:"required"`
	Excerpt    string   `json:"excerpt,omitempty"`
	Content    string   `json:"content" binding:"required"`
	Date       string   `json:"date" binding:"required"` // RFC3339
	Categories []string `json:"categories,omitempty"`
	Status     string   `json:"status" binding:"required,oneof=draft published"`
	ImageURL   string   `json:"imageUrl,omitempty"`
}

// SavePostRequest is an exported model for Swagger docs of the save payload.
type SavePostRequest struct {
	// Post id; omit to create a new post
	ID string `json:"id,omitempty" example:"b7a9e6d0-1f6e-4c07-8f3a-2e9c1a5b4d21"`
	// Title of the entry
	Title string `json:"title" example:"Three days in Lisbon"`
	// Short summary shown in lists
	Excerpt string `json:"excerpt,omitempty" example:"Trams, tiles and pastel de nata."`
	// Full body of the entry
	Content string `json:"content" example:"<p>We landed at dawn...</p>"`
	// Entry date, RFC3339
	Date string `json:"date" example:"2025-06-01T00:00:00Z"`
	// Ordered category labels
	Categories []string `json:"categories,omitempty" example:"europe,city-break"`
	// draft or published
	Status string `json:"status" example:"published"`
	// Optional data URI or external URL
	ImageURL string `json:"imageUrl,omitempty" example:"https://example.com/lisbon.jpg"`
}

// @Summary      Save post
// @Description  Creates a post (no id) or replaces an existing one in place (same id).
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body   SavePostRequest  true  "Post payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/posts [post]
// @Security     BearerAuth
func (h *Handler) savePost(c *gin.Context) {
	var req savePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, date and content are required"})
		return
	}
	if _, err := time.Parse(time.RFC3339, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date; use RFC3339"})
		return
	}

	username := h.sessionUser(c)
	post := models.Post{
		ID:         req.ID,
		Title:      strings.TrimSpace(req.Title),
		Excerpt:    strings.TrimSpace(req.Excerpt),
		Content:    req.Content,
		Date:       req.Date,
		Categories: normalizeCategories(req.Categories),
		ImageURL:   req.ImageURL,
	}

	saved, err := h.services.Posts.Save(c.Request.Context(), username, post, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errSavePost, "post_save_failed", err, "username", username)
		}
		return
	}

	c.JSON(http.StatusOK, saved)
}

// @Summary      List posts
// @Description  Returns the caller's posts, newest date first.
// @Tags         posts
// @Produce      json
// @Param        status  query   string  false  "Filter by status"  Enums(draft,published)
// @Success      200  {object}  map[string]interface{}  "count, posts"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/posts [get]
// @Security     BearerAuth
func (h *Handler) listPosts(c *gin.Context) {
	username := h.sessionUser(c)
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	posts, err := h.services.Posts.List(c.Request.Context(), username, status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be draft or published"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListPosts, "post_list_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(posts),
		"posts": posts,
	})
}

// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/posts/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPost(c *gin.Context) {
	username := h.sessionUser(c)

	post, err := h.services.Posts.Get(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListPosts, "post_get_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, post)
}

// @Summary      Delete post
// @Description  Removes the post. Deleting an absent id is a no-op.
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/posts/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePost(c *gin.Context) {
	username := h.sessionUser(c)

	if err := h.services.Posts.Delete(c.Request.Context(), username, c.Param("id")); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeletePost, "post_delete_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Toggle pin
// @Description  Unpins a pinned post; pinning unpins every other post of the caller.
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/posts/{id}/pin [post]
// @Security     BearerAuth
func (h *Handler) togglePin(c *gin.Context) {
	username := h.sessionUser(c)

	pinned, err := h.services.Posts.TogglePin(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errTogglePin, "post_toggle_pin_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "pinned": pinned})
}

// normalizeCategories trims labels and drops empty ones, preserving order.
func normalizeCategories(categories []string) []string {
	var out []string
	for _, cat := range categories {
		if trimmed := strings.TrimSpace(cat); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
