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

type WorkoutHandler struct {
	workoutService service.WorkoutService
	log            *zap.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, log *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, log: log}
}

// WorkoutRequest is used for create and update. MesocycleID is ignored on
// update.
type WorkoutRequest struct {
	MesocycleID   string               `json:"mesocycleId"`
	MicrocycleID  *int                 `json:"microcycleId" binding:"omitempty,min=1"`
	Name          string               `json:"name" binding:"required,max=100"`
	Description   string               `json:"description" binding:"max=1000"`
	ScheduledDate time.Time            `json:"scheduledDate" binding:"required"`
	Split         domain.TrainingSplit `json:"split" binding:"omitempty,split"`
	Notes         string               `json:"notes" binding:"max=2000"`
}

func (r WorkoutRequest) input() service.WorkoutInput {
	return service.WorkoutInput{
		MesocycleID:      r.MesocycleID,
		MicrocycleNumber: r.MicrocycleID,
		Name:             r.Name,
		Description:      r.Description,
		ScheduledDate:    r.ScheduledDate,
		Split:            r.Split,
		Notes:            r.Notes,
	}
}

type CompleteWorkoutRequest struct {
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,min=0,max=600"`
	Notes           *string `json:"notes" binding:"omitempty,max=2000"`
}

type ListWorkoutsQuery struct {
	PageQuery
	MesocycleID string `form:"mesocycleId"`
	Completed   *bool  `form:"completed"`
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	w, err := h.workoutService.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q ListWorkoutsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	page := q.page()
	filter := repository.WorkoutFilter{UserID: userID, MesocycleID: q.MesocycleID, Completed: q.Completed}
	workouts, total, err := h.workoutService.List(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, WorkoutListResponse{Workouts: workouts, pageMeta: newPageMeta(page, total)})
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	w, err := h.workoutService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	w, err := h.workoutService.Update(c.Request.Context(), userID, c.Param("id"), req.input())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteWorkout accepts an empty body.
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CompleteWorkoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	w, err := h.workoutService.Complete(c.Request.Context(), userID, c.Param("id"), req.DurationMinutes, req.Notes)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}
