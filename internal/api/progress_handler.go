package api

import (
	"fmt"
	"net/http"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProgressHandler struct {
	progressService service.ProgressService
	log             *zap.Logger
}

func NewProgressHandler(progressService service.ProgressService, log *zap.Logger) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, log: log}
}

type ProgressRequest struct {
	Date       string            `json:"date" binding:"required,datetime=2006-01-02"`
	MetricType domain.MetricType `json:"metricType" binding:"required,metric_type"`
	Value      *float64          `json:"value" binding:"required,min=0"`
	Unit       string            `json:"unit" binding:"max=20"`
	Notes      string            `json:"notes" binding:"max=2000"`
}

func (r ProgressRequest) input() service.ProgressInput {
	date, _ := time.Parse(dateLayout, r.Date)
	return service.ProgressInput{
		Date:       date,
		MetricType: r.MetricType,
		Value:      *r.Value,
		Unit:       r.Unit,
		Notes:      r.Notes,
	}
}

// RangeQuery bounds listings by calendar date, both ends inclusive.
type RangeQuery struct {
	MetricType domain.MetricType `form:"metricType" binding:"omitempty,metric_type"`
	StartDate  string            `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string            `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

func (q RangeQuery) bounds() (from, to time.Time) {
	if q.StartDate != "" {
		from, _ = time.Parse(dateLayout, q.StartDate)
	}
	if q.EndDate != "" {
		end, _ := time.Parse(dateLayout, q.EndDate)
		to = end.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to
}

type ListProgressQuery struct {
	PageQuery
	RangeQuery
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	p, err := h.progressService.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProgressHandler) ListProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q ListProgressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	from, to := q.bounds()
	page := q.page()
	filter := repository.ProgressFilter{UserID: userID, MetricType: q.MetricType, From: from, To: to}
	entries, total, err := h.progressService.List(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if entries == nil {
		entries = []domain.Progress{}
	}
	c.JSON(http.StatusOK, ProgressListResponse{Entries: entries, pageMeta: newPageMeta(page, total)})
}

// GetAnalytics summarizes one metric; metricType is required here.
func (h *ProgressHandler) GetAnalytics(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if q.MetricType == "" {
		abortWithError(c, http.StatusBadRequest, "metricType is required")
		return
	}
	from, to := q.bounds()
	summary, err := h.progressService.Analytics(c.Request.Context(), userID, q.MetricType, from, to)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	p, err := h.progressService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	p, err := h.progressService.Update(c.Request.Context(), userID, c.Param("id"), req.input())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProgressHandler) DeleteProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.progressService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestPhotoUpload godoc
// @Summary Get a presigned URL to upload a progress photo
// @Description The client PUTs the image to the returned URL with the same Content-Type.
// @Tags Progress
// @Accept json
// @Produce json
// @Param id path string true "Progress entry ID"
// @Success 200 {object} service.PhotoURL
// @Failure 503 {object} gin.H "Photo storage not configured"
// @Router /progress/{id}/photo [post]
func (h *ProgressHandler) RequestPhotoUpload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	url, err := h.progressService.PhotoUploadURL(c.Request.Context(), userID, c.Param("id"), req.ContentType)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, url)
}

func (h *ProgressHandler) GetPhotoURL(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	url, err := h.progressService.PhotoDownloadURL(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, url)
}
