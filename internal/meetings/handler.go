package meetings

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pulse-backend/internal/shared/server/respond"
)

const maxUploadSize = 25 << 20 // 25MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches meeting routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/meetings", h.upload)
	rg.POST("/meetings/import", h.importFromGraph)
	rg.POST("/meetings/:id/chat", h.attachChat)
	rg.GET("/meetings/:id", h.get)
	rg.GET("/meetings", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	title := strings.TrimSpace(c.PostForm("title"))
	organizer := strings.TrimSpace(c.PostForm("organizer"))

	m, err := h.Svc.Upload(c.Request.Context(), title, organizer, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload transcript", nil)
		}
		return
	}

	c.Set("meetingId", m.ID)
	respond.JSON(c, http.StatusCreated, toResponse(m))
}

type importRequest struct {
	OnlineMeetingID string `json:"onlineMeetingId"`
	Title           string `json:"title"`
	Organizer       string `json:"organizer"`
}

func (h *Handler) importFromGraph(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.OnlineMeetingID = strings.TrimSpace(req.OnlineMeetingID)
	if req.OnlineMeetingID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "onlineMeetingId is required", nil)
		return
	}

	m, err := h.Svc.ImportFromGraph(c.Request.Context(), req.OnlineMeetingID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Organizer))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to import transcript", nil)
		}
		return
	}

	c.Set("meetingId", m.ID)
	respond.JSON(c, http.StatusCreated, toResponse(m))
}

func (h *Handler) attachChat(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	meetingID := c.Param("id")
	c.Set("meetingId", meetingID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	m, err := h.Svc.AttachChat(c.Request.Context(), meetingID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "meeting not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to attach chat", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(m))
}

func (h *Handler) get(c *gin.Context) {
	meetingID := c.Param("id")
	c.Set("meetingId", meetingID)

	m, err := h.Svc.Get(c.Request.Context(), meetingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "meeting not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch meeting", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(m))
}

func (h *Handler) list(c *gin.Context) {
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
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list meetings", nil)
		return
	}

	resp := make([]MeetingResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, toResponse(m))
	}
	respond.JSON(c, http.StatusOK, resp)
}
