package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MesocycleHandler struct {
	mesocycleService service.MesocycleService
	log              *zap.Logger
}

func NewMesocycleHandler(mesocycleService service.MesocycleService, log *zap.Logger) *MesocycleHandler {
	return &MesocycleHandler{mesocycleService: mesocycleService, log: log}
}

// --- Request Structs ---

// CreateMesocycleRequest leaves range checks on durations and frequency to
// the domain so every caller gets the same messages.
type CreateMesocycleRequest struct {
	Name               string                    `json:"name" binding:"required,max=100"`
	Description        string                    `json:"description" binding:"max=1000"`
	PeriodizationModel domain.PeriodizationModel `json:"periodizationModel" binding:"required,periodization"`
	Goal               domain.TrainingGoal       `json:"goal" binding:"required,goal"`
	DurationWeeks      int                       `json:"durationWeeks" binding:"required"`
	StartDate          string                    `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate            string                    `json:"endDate" binding:"required,datetime=2006-01-02"`
	TrainingLevel      string                    `json:"trainingLevel" binding:"omitempty,max=50"`
	WeeklyFrequency    int                       `json:"weeklyFrequency" binding:"required"`
	DeloadWeeks        []int                     `json:"deloadWeeks" binding:"omitempty,dive,min=1"`
}

type UpdateMesocycleRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	DeloadWeeks []int  `json:"deloadWeeks" binding:"omitempty,dive,min=1"`
}

type ListMesocyclesQuery struct {
	PageQuery
	Status domain.MesocycleStatus `form:"status" binding:"omitempty,meso_status"`
}

// --- Handler Methods ---

// CreateMesocycle godoc
// @Summary Plan a new mesocycle
// @Tags Mesocycles
// @Accept json
// @Produce json
// @Param mesocycle body CreateMesocycleRequest true "Mesocycle"
// @Success 201 {object} MesocycleResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /mesocycles [post]
func (h *MesocycleHandler) CreateMesocycle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateMesocycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	// Layout already checked by the datetime binding.
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	m, err := h.mesocycleService.Create(c.Request.Context(), userID, service.CreateMesocycleInput{
		Name:               req.Name,
		Description:        req.Description,
		PeriodizationModel: req.PeriodizationModel,
		Goal:               req.Goal,
		DurationWeeks:      req.DurationWeeks,
		StartDate:          start,
		EndDate:            end,
		TrainingLevel:      req.TrainingLevel,
		WeeklyFrequency:    req.WeeklyFrequency,
		DeloadWeeks:        req.DeloadWeeks,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapMesocycleToResponse(m))
}

func (h *MesocycleHandler) ListMesocycles(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q ListMesocyclesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	page := q.page()
	list, total, err := h.mesocycleService.List(c.Request.Context(), userID, q.Status, page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	resp := MesocycleListResponse{
		Mesocycles: make([]MesocycleResponse, len(list)),
		pageMeta:   newPageMeta(page, total),
	}
	for i := range list {
		resp.Mesocycles[i] = MapMesocycleToResponse(&list[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MesocycleHandler) GetMesocycle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	m, err := h.mesocycleService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapMesocycleToResponse(m))
}

func (h *MesocycleHandler) UpdateMesocycle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req UpdateMesocycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	m, err := h.mesocycleService.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateMesocycleInput{
		Name:        req.Name,
		Description: req.Description,
		DeloadWeeks: req.DeloadWeeks,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapMesocycleToResponse(m))
}

func (h *MesocycleHandler) DeleteMesocycle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.mesocycleService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Transition returns a handler applying action to the mesocycle in the path.
// Illegal transitions answer 409 with the current status in the message.
func (h *MesocycleHandler) Transition(action domain.MesocycleAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c)
		if !ok {
			return
		}
		m, err := h.mesocycleService.Transition(c.Request.Context(), userID, c.Param("id"), action)
		if err != nil {
			respondServiceError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, MapMesocycleToResponse(m))
	}
}

func (h *MesocycleHandler) GetMicrocycle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid week number")
		return
	}
	mc, err := h.mesocycleService.Microcycle(c.Request.Context(), userID, c.Param("id"), week)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapMicrocycleToResponse(mc))
}

func (h *MesocycleHandler) GetDashboard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	d, err := h.mesocycleService.Dashboard(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapDashboardToResponse(d))
}

// GetProgression plans ?week, defaulting to the block's current week.
func (h *MesocycleHandler) GetProgression(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	week := 0
	if raw := c.Query("week"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 1 {
			abortWithError(c, http.StatusBadRequest, "Invalid week number")
			return
		}
		week = w
	}
	p, err := h.mesocycleService.Progression(c.Request.Context(), userID, c.Param("id"), week)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, WeekProgressionResponse{
		Week:        p.Week,
		Progression: MapProgressionToResponse(p.Progression),
		Microcycle:  MapMicrocycleToResponse(p.Microcycle),
	})
}
