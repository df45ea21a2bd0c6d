package handlers

import (
	"errors"
	"net/http"

	"travelfy/internal/service"

	"github.com/gin-gonic/gin"
)

type updateBioRequest struct {
	Bio string `json:"bio"`
}

// @Summary      Get user bio
// @Tags         profile
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/users/{username}/bio [get]
// @Security     BearerAuth
func (h *Handler) getUserBio(c *gin.Context) {
	username := c.Param("username")

	bio, err := h.services.Session.GetUserBio(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load bio", "bio_get_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "bio": bio})
}

// @Summary      Update user bio
// @Description  Replaces the bio in place. Only the session owner may update their own bio.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        username  path  string            true  "Username"
// @Param        body      body  updateBioRequest  true  "Bio payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/users/{username}/bio [put]
// @Security     BearerAuth
func (h *Handler) updateUserBio(c *gin.Context) {
	username := c.Param("username")
	if username != h.sessionUser(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot update another user's bio"})
		return
	}

	var req updateBioRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	if err := h.services.Session.UpdateUserBio(c.Request.Context(), username, req.Bio); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to update bio", "bio_update_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
