package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitnotes/habitnotes/internal/core/services"
)

type NotesHandler struct {
	svc *services.NotesService
}

func NewNotesHandler(svc *services.NotesService) *NotesHandler {
	return &NotesHandler{svc: svc}
}

func (h *NotesHandler) RegisterRoutes(router *gin.RouterGroup) {
	notes := router.Group("/notes")
	{
		notes.GET("/dates", h.Dates)
	}
}

// Dates lists every stored daily-note date, most recent first.
func (h *NotesHandler) Dates(c *gin.Context) {
	dates, err := h.svc.GetExistingDailyNoteDates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list note dates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}
