package api

import (
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"
	"wscmeso/mesocycle-planner/internal/service"
)

// dateLayout is the wire format of calendar dates.
const dateLayout = "2006-01-02"

// PageQuery is the common paging query string.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q PageQuery) page() repository.Page {
	return repository.Page{Number: q.Page, Size: q.Limit}.Normalize()
}

type pageMeta struct {
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

func newPageMeta(p repository.Page, total int64) pageMeta {
	return pageMeta{TotalCount: total, Page: p.Number, TotalPages: p.TotalPages(total)}
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID            string               `json:"id"`
	Email         string               `json:"email"`
	Username      string               `json:"username"`
	FullName      string               `json:"fullName,omitempty"`
	TrainingLevel domain.TrainingLevel `json:"trainingLevel"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		FullName:      user.FullName,
		TrainingLevel: user.TrainingLevel,
		CreatedAt:     user.CreatedAt,
	}
}

// ExerciseSummary is the list view of an exercise.
type ExerciseSummary struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Number      string              `json:"number"`
	MuscleGroup domain.MuscleGroup  `json:"muscleGroup"`
	Type        domain.ExerciseType `json:"type"`
	Difficulty  string              `json:"difficulty,omitempty"`
}

func mapExerciseSummaries(exercises []domain.Exercise) []ExerciseSummary {
	out := make([]ExerciseSummary, len(exercises))
	for i, e := range exercises {
		out[i] = ExerciseSummary{
			ID:          e.ID,
			Name:        e.Name,
			Number:      e.Number,
			MuscleGroup: e.MuscleGroup,
			Type:        e.Type,
			Difficulty:  e.Difficulty,
		}
	}
	return out
}

type ExerciseListResponse struct {
	Exercises []ExerciseSummary `json:"exercises"`
	pageMeta
}

type MesocycleResponse struct {
	ID                 string                    `json:"id"`
	UserID             string                    `json:"userId"`
	Name               string                    `json:"name"`
	Description        string                    `json:"description,omitempty"`
	PeriodizationModel domain.PeriodizationModel `json:"periodizationModel"`
	Goal               domain.TrainingGoal       `json:"goal"`
	DurationWeeks      int                       `json:"durationWeeks"`
	StartDate          string                    `json:"startDate"`
	EndDate            string                    `json:"endDate"`
	TrainingLevel      string                    `json:"trainingLevel,omitempty"`
	WeeklyFrequency    int                       `json:"weeklyFrequency"`
	DeloadWeeks        []int                     `json:"deloadWeeks"`
	Status             domain.MesocycleStatus    `json:"status"`
	CreatedAt          time.Time                 `json:"createdAt"`
	UpdatedAt          time.Time                 `json:"updatedAt"`
}

func MapMesocycleToResponse(m *domain.Mesocycle) MesocycleResponse {
	return MesocycleResponse{
		ID:                 m.ID,
		UserID:             m.UserID,
		Name:               m.Name,
		Description:        m.Description,
		PeriodizationModel: m.PeriodizationModel,
		Goal:               m.Goal,
		DurationWeeks:      m.DurationWeeks,
		StartDate:          m.StartDate.Format(dateLayout),
		EndDate:            m.EndDate.Format(dateLayout),
		TrainingLevel:      m.TrainingLevel,
		WeeklyFrequency:    m.WeeklyFrequency,
		DeloadWeeks:        m.DeloadWeeks,
		Status:             m.Status(),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

type MesocycleListResponse struct {
	Mesocycles []MesocycleResponse `json:"mesocycles"`
	pageMeta
}

type MicrocycleResponse struct {
	MesocycleID      string               `json:"mesocycleId"`
	Number           int                  `json:"number"`
	WeekStart        int                  `json:"weekStart"`
	WeekEnd          int                  `json:"weekEnd"`
	Phase            domain.TrainingPhase `json:"phase"`
	IntensityMin     float64              `json:"intensityMin"`
	IntensityMax     float64              `json:"intensityMax"`
	Intensity        string               `json:"intensity"`
	RepsRange        string               `json:"repsRange"`
	SetsRange        string               `json:"setsRange"`
	RIR              int                  `json:"rir"`
	VolumeMultiplier float64              `json:"volumeMultiplier"`
	FrequencyPerWeek int                  `json:"frequencyPerWeek"`
	IsDeload         bool                 `json:"isDeload"`
}

func MapMicrocycleToResponse(mc domain.Microcycle) MicrocycleResponse {
	return MicrocycleResponse{
		MesocycleID:      mc.MesocycleID,
		Number:           mc.Number,
		WeekStart:        mc.WeekStart,
		WeekEnd:          mc.WeekEnd,
		Phase:            mc.Phase,
		IntensityMin:     mc.Intensity.Min,
		IntensityMax:     mc.Intensity.Max,
		Intensity:        mc.Intensity.String(),
		RepsRange:        mc.RepsRange,
		SetsRange:        mc.SetsRange,
		RIR:              mc.RIR,
		VolumeMultiplier: mc.VolumeMultiplier,
		FrequencyPerWeek: mc.FrequencyPerWeek,
		IsDeload:         mc.IsDeload(),
	}
}

type ProgressionResponse struct {
	Goal                domain.TrainingGoal `json:"goal"`
	IntensityPercentage float64             `json:"intensityPercentage"`
	Repetitions         string              `json:"repetitions"`
	SetsRecommended     int                 `json:"setsRecommended"`
	RestInterval        string              `json:"restInterval"`
	RIRTarget           int                 `json:"rirTarget"`
}

func MapProgressionToResponse(p domain.ProgressionRow) ProgressionResponse {
	return ProgressionResponse{
		Goal:                p.Goal,
		IntensityPercentage: p.IntensityPct,
		Repetitions:         p.Repetitions,
		SetsRecommended:     p.SetsRecommended,
		RestInterval:        p.RestInterval,
		RIRTarget:           p.RIRTarget,
	}
}

type WeekProgressionResponse struct {
	Week        int                 `json:"week"`
	Progression ProgressionResponse `json:"progression"`
	Microcycle  MicrocycleResponse  `json:"microcycle"`
}

type DashboardResponse struct {
	Mesocycle         MesocycleResponse   `json:"mesocycle"`
	CurrentWeek       int                 `json:"currentWeek"`
	CurrentMicrocycle *MicrocycleResponse `json:"currentMicrocycle,omitempty"`
	TotalWorkouts     int64               `json:"totalWorkouts"`
	CompletedWorkouts int64               `json:"completedWorkouts"`
	OverdueWorkouts   int64               `json:"overdueWorkouts"`
	CompletionRate    float64             `json:"completionRate"`
	NextDeloadWeek    *int                `json:"nextDeloadWeek,omitempty"`
}

func MapDashboardToResponse(d *service.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Mesocycle:         MapMesocycleToResponse(d.Mesocycle),
		CurrentWeek:       d.CurrentWeek,
		TotalWorkouts:     d.Workouts.Total,
		CompletedWorkouts: d.Workouts.Completed,
		OverdueWorkouts:   d.Workouts.Overdue,
		CompletionRate:    d.CompletionRate,
		NextDeloadWeek:    d.NextDeloadWeek,
	}
	if d.CurrentMicrocycle != nil {
		mc := MapMicrocycleToResponse(*d.CurrentMicrocycle)
		resp.CurrentMicrocycle = &mc
	}
	return resp
}

type WorkoutListResponse struct {
	Workouts []domain.Workout `json:"workouts"`
	pageMeta
}

type ProgressListResponse struct {
	Entries []domain.Progress `json:"entries"`
	pageMeta
}
