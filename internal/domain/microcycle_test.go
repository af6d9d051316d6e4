package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntensityRange(t *testing.T) {
	r, err := NewIntensityRange(0.65, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "65%-70%", r.String())

	_, err = NewIntensityRange(0.8, 0.7)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewIntensityRange(-0.1, 0.7)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewIntensityRange(0.5, 1.1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMicrocycle_Validate(t *testing.T) {
	mc := Microcycle{RIR: 2, VolumeMultiplier: 1}
	require.NoError(t, mc.Validate())

	mc.RIR = 6
	requireValidationField(t, mc.Validate(), "rir")

	mc.RIR = 2
	mc.VolumeMultiplier = 0.4
	requireValidationField(t, mc.Validate(), "volume_multiplier")

	mc.VolumeMultiplier = 2.5
	requireValidationField(t, mc.Validate(), "volume_multiplier")
}

func TestPlanMicrocycle_Hypertrophy(t *testing.T) {
	m := mustMesocycle(t)

	tests := []struct {
		week   int
		phase  TrainingPhase
		lo, hi float64
		sets   string
		rir    int
		volume float64
	}{
		{1, PhaseAccumulation, 0.65, 0.70, "5", 3, 1.1},
		{4, PhaseDeload, 0.50, 0.60, "2", 4, 0.6},
		{5, PhaseTransmutation, 0.70, 0.75, "4", 2, 1.0},
		{9, PhaseRealization, 0.75, 0.80, "3", 1, 0.85},
		{12, PhaseDeload, 0.50, 0.60, "2", 4, 0.6},
	}
	for _, tt := range tests {
		mc, err := m.PlanMicrocycle(tt.week)
		require.NoError(t, err, "week %d", tt.week)
		assert.Equal(t, tt.week, mc.Number)
		assert.Equal(t, 1, mc.DurationWeeks())
		assert.Equal(t, tt.phase, mc.Phase, "week %d", tt.week)
		assert.InDelta(t, tt.lo, mc.Intensity.Min, 1e-9, "week %d", tt.week)
		assert.InDelta(t, tt.hi, mc.Intensity.Max, 1e-9, "week %d", tt.week)
		assert.Equal(t, tt.sets, mc.SetsRange, "week %d", tt.week)
		assert.Equal(t, tt.rir, mc.RIR, "week %d", tt.week)
		assert.InDelta(t, tt.volume, mc.VolumeMultiplier, 1e-9, "week %d", tt.week)
		assert.Equal(t, "8-12", mc.RepsRange)
		assert.Equal(t, 5, mc.FrequencyPerWeek)
		assert.Equal(t, tt.phase == PhaseDeload, mc.IsDeload())
	}
}

func TestPlanMicrocycle_StrengthRealization(t *testing.T) {
	p := validParams()
	p.Goal = GoalStrength
	p.DeloadWeeks = nil
	m, err := NewMesocycle(p)
	require.NoError(t, err)

	mc, err := m.PlanMicrocycle(12)
	require.NoError(t, err)
	assert.Equal(t, PhaseRealization, mc.Phase)
	assert.InDelta(t, 0.90, mc.Intensity.Min, 1e-9)
	assert.InDelta(t, 0.95, mc.Intensity.Max, 1e-9)
	assert.Equal(t, 0, mc.RIR)
	assert.Equal(t, "3-5", mc.RepsRange)
}

func TestPlanMicrocycle_WeekOutOfRange(t *testing.T) {
	m := mustMesocycle(t)
	for _, week := range []int{-1, 0, 13} {
		_, err := m.PlanMicrocycle(week)
		requireValidationField(t, err, "week")
	}
}

func TestProgressionFor(t *testing.T) {
	s := ProgressionFor(GoalStrength)
	assert.InDelta(t, 0.85, s.IntensityPct, 1e-9)
	assert.Equal(t, "3-5", s.Repetitions)
	assert.Equal(t, 4, s.SetsRecommended)
	assert.Equal(t, "2-3 min", s.RestInterval)
	assert.Equal(t, 1, s.RIRTarget)

	h := ProgressionFor(GoalHypertrophy)
	assert.InDelta(t, 0.70, h.IntensityPct, 1e-9)
	assert.Equal(t, "8-12", h.Repetitions)

	d := ProgressionFor(GoalEndurance)
	assert.Equal(t, GoalEndurance, d.Goal)
	assert.InDelta(t, 0.75, d.IntensityPct, 1e-9)
	assert.Equal(t, "6-10", d.Repetitions)
	assert.Equal(t, 3, d.SetsRecommended)
	assert.Equal(t, "90s", d.RestInterval)
}
