package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitnotes/habitnotes/internal/core/domain"
	"github.com/habitnotes/habitnotes/internal/core/services"
)

type HabitHandler struct {
	timeline  *services.TimelineService
	records   *services.RecordService
	discovery *services.DiscoveryService
	notes     *services.NotesService
	cfg       domain.TrackerConfig
}

func NewHabitHandler(timeline *services.TimelineService, records *services.RecordService, discovery *services.DiscoveryService, notes *services.NotesService, cfg domain.TrackerConfig) *HabitHandler {
	return &HabitHandler{
		timeline:  timeline,
		records:   records,
		discovery: discovery,
		notes:     notes,
		cfg:       cfg,
	}
}

type setStatusRequest struct {
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
	Value     string `json:"value"`
}

type ensureRequest struct {
	Date string `json:"date"`
}

type renameRequest struct {
	OldName string `json:"old_name" binding:"required"`
	NewName string `json:"new_name" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.Snapshot)
		habits.GET("/detect", h.Detect)
		habits.POST("/ensure", h.Ensure)
		habits.POST("/rename", h.Rename)
		habits.GET("/:name/status", h.GetStatus)
		habits.PUT("/:name/status", h.SetStatus)
	}
}

// baseDate resolves the optional date query parameter against the
// configured format, defaulting to today.
func (h *HabitHandler) baseDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}

	t, err := h.cfg.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date for configured format"})
		return time.Time{}, false
	}
	return t, true
}

func (h *HabitHandler) Snapshot(c *gin.Context) {
	base, ok := h.baseDate(c)
	if !ok {
		return
	}

	timelines, err := h.timeline.GetAllHabitData(c.Request.Context(), base)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build habit snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"base_date": h.cfg.FormatDate(base),
		"habits":    timelines,
	})
}

func (h *HabitHandler) GetStatus(c *gin.Context) {
	base, ok := h.baseDate(c)
	if !ok {
		return
	}

	rec, err := h.records.GetHabitStatus(c.Request.Context(), c.Param("name"), h.cfg.FormatDate(base))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read habit status"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *HabitHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := req.Date
	if date == "" {
		date = h.cfg.FormatDate(time.Now())
	} else if _, err := h.cfg.ParseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date for configured format"})
		return
	}

	err := h.records.SetHabitStatus(c.Request.Context(), c.Param("name"), req.Completed, date, req.Value)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNameEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write habit status"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) Ensure(c *gin.Context) {
	var req ensureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		t, err := h.cfg.ParseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date for configured format"})
			return
		}
		date = t
	}

	if err := h.timeline.EnsureHabitsForDate(c.Request.Context(), date); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ensure habit lines"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) Detect(c *gin.Context) {
	base, ok := h.baseDate(c)
	if !ok {
		return
	}

	window := domain.TimelineWindowDays
	if raw := c.Query("window"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window must be a positive integer"})
			return
		}
		window = w
	}

	names, err := h.discovery.AutoDetectHabits(c.Request.Context(), window, base)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to detect habits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": names})
}

func (h *HabitHandler) Rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.notes.RenameHabit(c.Request.Context(), req.OldName, req.NewName)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNameExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrHabitNameEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename habit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modified": count})
}
