package api

import (
	"fmt"
	"net/http"
	"strconv"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExerciseHandler serves the read-only exercise library.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	log             *zap.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, log *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, log: log}
}

type ListExercisesQuery struct {
	PageQuery
	Group      domain.MuscleGroup  `form:"group" binding:"omitempty,muscle_group"`
	Type       domain.ExerciseType `form:"type" binding:"omitempty,exercise_type"`
	Difficulty string              `form:"difficulty"`
}

type SearchExercisesQuery struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// ListExercises godoc
// @Summary List the exercise library
// @Tags Exercises
// @Produce json
// @Param group query string false "Muscle group"
// @Param type query string false "Equipment type"
// @Success 200 {object} ExerciseListResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	var q ListExercisesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	page := q.page()
	filter := repository.ExerciseFilter{MuscleGroup: q.Group, Type: q.Type, Difficulty: q.Difficulty}

	result, err := h.exerciseService.ListExercises(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ExerciseListResponse{
		Exercises: mapExerciseSummaries(result.Exercises),
		pageMeta:  newPageMeta(page, result.Total),
	})
}

// SearchExercises matches name, execution and comments case-insensitively.
func (h *ExerciseHandler) SearchExercises(c *gin.Context) {
	var q SearchExercisesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercises, err := h.exerciseService.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": mapExerciseSummaries(exercises)})
}

// GetExercise returns the full library entry.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// GetRecommended is routed as /exercises/:id/recommended; the wildcard is
// shared with GetExercise and holds a muscle group here.
func (h *ExerciseHandler) GetRecommended(c *gin.Context) {
	group := domain.MuscleGroup(c.Param("id"))
	exercises, err := h.exerciseService.Recommended(c.Request.Context(), group, c.Query("level"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"muscleGroup": group,
		"exercises":   mapExerciseSummaries(exercises),
	})
}
