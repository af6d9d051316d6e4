package api

import (
	"net/http"
	"testing"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"
	"wscmeso/mesocycle-planner/internal/service"
	"wscmeso/mesocycle-planner/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createMesocycleBody() map[string]any {
	return map[string]any{
		"name":               "Spring block",
		"periodizationModel": "linear",
		"goal":               "hypertrophy",
		"durationWeeks":      12,
		"startDate":          "2025-01-06",
		"endDate":            "2025-03-30",
		"weeklyFrequency":    4,
		"deloadWeeks":        []int{4, 8},
	}
}

func TestCreateMesocycle(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, s := newTestServer(t)
		m := testutil.NewMesocycle(t, testUserID)
		want := service.CreateMesocycleInput{
			Name:               "Spring block",
			PeriodizationModel: domain.PeriodizationLinear,
			Goal:               domain.GoalHypertrophy,
			DurationWeeks:      12,
			StartDate:          time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			EndDate:            time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC),
			WeeklyFrequency:    4,
			DeloadWeeks:        []int{4, 8},
		}
		s.mesocycles.On("Create", mock.Anything, testUserID, want).Return(m, nil).Once()

		rec := do(t, router, http.MethodPost, "/api/v1/mesocycles", createMesocycleBody())

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, m.ID, body["id"])
		assert.Equal(t, "planned", body["status"])
		assert.Equal(t, "2025-01-01", body["startDate"])
	})

	tests := []struct {
		name  string
		patch func(map[string]any)
	}{
		{name: "missing weekly frequency", patch: func(b map[string]any) { delete(b, "weeklyFrequency") }},
		{name: "unknown periodization", patch: func(b map[string]any) { b["periodizationModel"] = "wave" }},
		{name: "unknown goal", patch: func(b map[string]any) { b["goal"] = "bulk" }},
		{name: "bad date", patch: func(b map[string]any) { b["startDate"] = "06/01/2025" }},
		{name: "zero deload week", patch: func(b map[string]any) { b["deloadWeeks"] = []int{0} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestServer(t)
			body := createMesocycleBody()
			tt.patch(body)

			rec := do(t, router, http.MethodPost, "/api/v1/mesocycles", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	t.Run("free-form training level", func(t *testing.T) {
		router, s := newTestServer(t)
		m := testutil.NewMesocycle(t, testUserID)
		s.mesocycles.On("Create", mock.Anything, testUserID, mock.MatchedBy(func(in service.CreateMesocycleInput) bool {
			return in.TrainingLevel == "returning after injury"
		})).Return(m, nil).Once()

		body := createMesocycleBody()
		body["trainingLevel"] = "returning after injury"
		rec := do(t, router, http.MethodPost, "/api/v1/mesocycles", body)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("deload week past the block", func(t *testing.T) {
		router, s := newTestServer(t)
		s.mesocycles.On("Create", mock.Anything, testUserID, mock.MatchedBy(func(in service.CreateMesocycleInput) bool {
			return len(in.DeloadWeeks) == 1 && in.DeloadWeeks[0] == 20
		})).Return(nil, &domain.ValidationError{Field: "deload_weeks", Message: "deload week 20 is outside 1..12"}).Once()

		body := createMesocycleBody()
		body["deloadWeeks"] = []int{20}
		rec := do(t, router, http.MethodPost, "/api/v1/mesocycles", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid deload_weeks: deload week 20 is outside 1..12", decode(t, rec)["error"])
	})

	t.Run("domain validation", func(t *testing.T) {
		router, s := newTestServer(t)
		s.mesocycles.On("Create", mock.Anything, testUserID, mock.Anything).
			Return(nil, &domain.ValidationError{Field: "durationWeeks", Message: "must be between 4 and 16"}).Once()

		rec := do(t, router, http.MethodPost, "/api/v1/mesocycles", createMesocycleBody())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid durationWeeks: must be between 4 and 16", decode(t, rec)["error"])
	})
}

func TestListMesocycles(t *testing.T) {
	router, s := newTestServer(t)
	m := testutil.NewMesocycle(t, testUserID)
	s.mesocycles.On("List", mock.Anything, testUserID, domain.StatusActive, repository.Page{Number: 2, Size: 5}).
		Return([]domain.Mesocycle{*m}, int64(11), nil).Once()

	rec := do(t, router, http.MethodGet, "/api/v1/mesocycles?status=active&page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(11), body["totalCount"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Len(t, body["mesocycles"], 1)

	rec = do(t, router, http.MethodGet, "/api/v1/mesocycles?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMesocycleNotFound(t *testing.T) {
	router, s := newTestServer(t)
	s.mesocycles.On("Get", mock.Anything, testUserID, "missing").Return(nil, service.ErrMesocycleNotFound).Once()

	rec := do(t, router, http.MethodGet, "/api/v1/mesocycles/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrMesocycleNotFound.Error(), decode(t, rec)["error"])
}

func TestUpdateAndDeleteMesocycle(t *testing.T) {
	router, s := newTestServer(t)
	m := testutil.NewMesocycle(t, testUserID)
	m.Revise("Renamed", "", []int{6})
	s.mesocycles.On("Update", mock.Anything, testUserID, m.ID, service.UpdateMesocycleInput{Name: "Renamed", DeloadWeeks: []int{6}}).
		Return(m, nil).Once()
	s.mesocycles.On("Delete", mock.Anything, testUserID, m.ID).Return(nil).Once()

	rec := do(t, router, http.MethodPut, "/api/v1/mesocycles/"+m.ID, map[string]any{"name": "Renamed", "deloadWeeks": []int{6}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Renamed", decode(t, rec)["name"])

	rec = do(t, router, http.MethodDelete, "/api/v1/mesocycles/"+m.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTransitionRoutes(t *testing.T) {
	tests := []struct {
		path   string
		action domain.MesocycleAction
	}{
		{path: "start", action: domain.ActionStart},
		{path: "pause", action: domain.ActionPause},
		{path: "resume", action: domain.ActionResume},
		{path: "complete", action: domain.ActionComplete},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			router, s := newTestServer(t)
			m := testutil.NewMesocycle(t, testUserID)
			s.mesocycles.On("Transition", mock.Anything, testUserID, m.ID, tt.action).Return(m, nil).Once()

			rec := do(t, router, http.MethodPost, "/api/v1/mesocycles/"+m.ID+"/"+tt.path, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	t.Run("conflict", func(t *testing.T) {
		router, s := newTestServer(t)
		conflict := &domain.StateConflictError{Entity: "mesocycle", Action: "start", Status: "active"}
		s.mesocycles.On("Transition", mock.Anything, testUserID, "m-1", domain.ActionStart).Return(nil, conflict).Once()

		rec := do(t, router, http.MethodPost, "/api/v1/mesocycles/m-1/start", nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, `cannot start mesocycle in status "active"`, decode(t, rec)["error"])
	})
}

func TestGetMicrocycle(t *testing.T) {
	router, s := newTestServer(t)
	m := testutil.NewMesocycle(t, testUserID)
	mc, err := m.PlanMicrocycle(4)
	require.NoError(t, err)
	s.mesocycles.On("Microcycle", mock.Anything, testUserID, m.ID, 4).Return(mc, nil).Once()

	rec := do(t, router, http.MethodGet, "/api/v1/mesocycles/"+m.ID+"/microcycles/4", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(mc.Number), body["number"])
	assert.Equal(t, mc.IsDeload(), body["isDeload"])
	assert.Equal(t, mc.Intensity.String(), body["intensity"])

	rec = do(t, router, http.MethodGet, "/api/v1/mesocycles/"+m.ID+"/microcycles/four", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMesocycleProgression(t *testing.T) {
	router, s := newTestServer(t)
	m := testutil.NewMesocycle(t, testUserID)
	mc, err := m.PlanMicrocycle(3)
	require.NoError(t, err)
	s.mesocycles.On("Progression", mock.Anything, testUserID, m.ID, 0).Return(&service.WeekProgression{
		Week:        3,
		Progression: domain.ProgressionFor(domain.GoalHypertrophy),
		Microcycle:  mc,
	}, nil).Once()

	rec := do(t, router, http.MethodGet, "/api/v1/mesocycles/"+m.ID+"/progression", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(3), body["week"])
	assert.Equal(t, "8-12", body["progression"].(map[string]any)["repetitions"])

	rec = do(t, router, http.MethodGet, "/api/v1/mesocycles/"+m.ID+"/progression?week=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	router, s := newTestServer(t)
	m := testutil.NewMesocycle(t, testUserID)
	mc, err := m.PlanMicrocycle(2)
	require.NoError(t, err)
	next := 4
	s.mesocycles.On("Dashboard", mock.Anything, testUserID, m.ID).Return(&service.Dashboard{
		Mesocycle:         m,
		CurrentWeek:       2,
		CurrentMicrocycle: &mc,
		Workouts:          repository.WorkoutStats{Total: 8, Completed: 6, Overdue: 1},
		CompletionRate:    75,
		NextDeloadWeek:    &next,
	}, nil).Once()

	rec := do(t, router, http.MethodGet, "/api/v1/mesocycles/"+m.ID+"/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["currentWeek"])
	assert.Equal(t, float64(6), body["completedWorkouts"])
	assert.Equal(t, float64(75), body["completionRate"])
	assert.Equal(t, float64(4), body["nextDeloadWeek"])
	assert.NotNil(t, body["currentMicrocycle"])
}
