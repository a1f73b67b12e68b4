package insights

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse-backend/internal/meetings"
	"pulse-backend/internal/shared/server/middleware"
	"pulse-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the insights service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches insight routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/meetings/:id/insights", h.start)
	rg.GET("/meetings/:id/insights", h.listByMeeting)
	rg.GET("/insights/:id", h.get)
}

func (h *Handler) start(c *gin.Context) {
	meetingID := c.Param("id")
	if meetingID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "meeting id is required", nil)
		return
	}
	c.Set("meetingId", meetingID)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	ins, err := h.Svc.Create(ctx, meetingID)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "meeting not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}

	c.Set("insightId", ins.ID)
	respond.JSON(c, http.StatusAccepted, gin.H{
		"insightId": ins.ID,
		"status":    ins.Status,
	})
}

func (h *Handler) get(c *gin.Context) {
	insightID := c.Param("id")
	if insightID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "insight id is required", nil)
		return
	}
	c.Set("insightId", insightID)

	ins, err := h.Svc.Get(c.Request.Context(), insightID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "insight not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch insight", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(ins))
}

func (h *Handler) listByMeeting(c *gin.Context) {
	meetingID := c.Param("id")
	if meetingID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "meeting id is required", nil)
		return
	}
	c.Set("meetingId", meetingID)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.ListByMeeting(c.Request.Context(), meetingID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list insights", nil)
		return
	}

	resp := make([]InsightResponse, 0, len(items))
	for _, ins := range items {
		resp = append(resp, toResponse(ins))
	}
	respond.JSON(c, http.StatusOK, resp)
}
