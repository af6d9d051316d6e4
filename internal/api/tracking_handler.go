package api

import (
	"fmt"
	"net/http"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrackingHandler logs performed sessions and reports on them.
type TrackingHandler struct {
	trackingService service.TrackingService
	log             *zap.Logger
}

func NewTrackingHandler(trackingService service.TrackingService, log *zap.Logger) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService, log: log}
}

type SetRequest struct {
	Weight float64 `json:"weight" binding:"min=0"`
	Reps   int     `json:"reps" binding:"min=0"`
	RPE    float64 `json:"rpe" binding:"omitempty,min=1,max=10"`
	RIR    *int    `json:"rir" binding:"omitempty,min=0"`
	Notes  string  `json:"notes" binding:"max=500"`
}

type ExerciseLogRequest struct {
	ExerciseID    int          `json:"exerciseId" binding:"required,min=1"`
	PlannedSets   int          `json:"plannedSets" binding:"min=0"`
	PerformedSets []SetRequest `json:"performedSets" binding:"dive"`
	Notes         string       `json:"notes" binding:"max=500"`
}

type LogSessionRequest struct {
	MesocycleID  string               `json:"mesocycleId"`
	MicrocycleID *int                 `json:"microcycleId" binding:"omitempty,min=1"`
	WeekNumber   *int                 `json:"weekNumber" binding:"omitempty,min=1"`
	Date         time.Time            `json:"date"` // defaults to now
	Exercises    []ExerciseLogRequest `json:"exercises" binding:"required,min=1,dive"`
	Notes        string               `json:"notes" binding:"max=2000"`
}

func (r LogSessionRequest) input() service.SessionInput {
	exercises := make([]domain.ExercisePerformed, len(r.Exercises))
	for i, e := range r.Exercises {
		sets := make([]domain.SetPerformed, len(e.PerformedSets))
		for j, s := range e.PerformedSets {
			sets[j] = domain.SetPerformed{Weight: s.Weight, Reps: s.Reps, RPE: s.RPE, RIR: s.RIR, Notes: s.Notes}
		}
		exercises[i] = domain.ExercisePerformed{
			ExerciseID:    e.ExerciseID,
			PlannedSets:   e.PlannedSets,
			PerformedSets: sets,
			Notes:         e.Notes,
		}
	}
	return service.SessionInput{
		MesocycleID:      r.MesocycleID,
		MicrocycleNumber: r.MicrocycleID,
		WeekNumber:       r.WeekNumber,
		Date:             r.Date,
		Exercises:        exercises,
		Notes:            r.Notes,
	}
}

type StatsQuery struct {
	ExerciseID int `form:"exerciseId" binding:"omitempty,min=1"`
	WeeksBack  int `form:"weeksBack" binding:"omitempty,min=1,max=52"`
}

// LogSession godoc
// @Summary Log a performed training session
// @Tags Tracking
// @Accept json
// @Produce json
// @Param session body LogSessionRequest true "Session"
// @Success 201 {object} domain.TrainingSession
// @Router /sessions [post]
func (h *TrackingHandler) LogSession(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	session, err := h.trackingService.LogSession(c.Request.Context(), userID, req.input())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *TrackingHandler) GetStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	stats, err := h.trackingService.Stats(c.Request.Context(), userID, q.ExerciseID, q.WeeksBack)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetProgression returns the baseline table row for a goal. It needs no
// stored state.
func GetProgression(c *gin.Context) {
	goal := domain.TrainingGoal(c.Param("goal"))
	if !goal.IsValid() {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("unknown training goal %q", goal))
		return
	}
	c.JSON(http.StatusOK, MapProgressionToResponse(domain.ProgressionFor(goal)))
}
