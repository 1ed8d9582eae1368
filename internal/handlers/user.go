package handlers

import (
	"net/http"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	store *store.Store
}

func NewUserHandler() *UserHandler {
	return &UserHandler{store: store.NewStore(db.DB)}
}

// Follow subscribes the current user to an author's posts. Following
// yourself is a silent no-op; the redirect happens either way.
func (h *UserHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := h.store.Follow(user.ID, author.ID); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not follow")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}

// Unfollow removes the subscription, if any.
func (h *UserHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	if err := h.store.Unfollow(user.ID, username); err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}
