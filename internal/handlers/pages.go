package handlers

import (
	"net/http"
	"strings"
	"yatube/internal/db"
	"yatube/internal/store"

	"github.com/gin-gonic/gin"
)

type PagesHandler struct {
	store *store.Store
}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{store: store.NewStore(db.DB)}
}

func (h *PagesHandler) AboutAuthor(c *gin.Context) {
	Render(c, http.StatusOK, "about/author.html", gin.H{"Title": "About the author"})
}

func (h *PagesHandler) AboutTech(c *gin.Context) {
	Render(c, http.StatusOK, "about/tech.html", gin.H{"Title": "Technologies"})
}

// clientIP prefers the first X-Forwarded-For entry over the socket address.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.RemoteIP()
}

// ClientIP shows the caller their address and appends it to the UserIp log.
func (h *PagesHandler) ClientIP(c *gin.Context) {
	ip := clientIP(c)
	if err := h.store.LogIP(ip); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not record the address")
		return
	}
	Render(c, http.StatusOK, "ip.html", gin.H{"Title": "Your address", "IP": ip})
}
