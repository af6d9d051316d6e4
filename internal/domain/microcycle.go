package domain

import "fmt"

// TrainingPhase is the emphasis of a microcycle.
type TrainingPhase string

const (
	PhaseAccumulation  TrainingPhase = "accumulation"
	PhaseTransmutation TrainingPhase = "transmutation"
	PhaseRealization   TrainingPhase = "realization"
	PhaseCompetition   TrainingPhase = "competition"
	PhaseDeload        TrainingPhase = "deload"
)

// IntensityRange is a band of loads expressed as fractions of 1RM.
type IntensityRange struct {
	Min float64
	Max float64
}

// NewIntensityRange validates 0 <= min <= max <= 1.
func NewIntensityRange(lo, hi float64) (IntensityRange, error) {
	if lo < 0 || lo > 1 || hi < 0 || hi > 1 {
		return IntensityRange{}, newValidationError("intensity_range", "intensity percentages must be between 0 and 1")
	}
	if lo > hi {
		return IntensityRange{}, newValidationError("intensity_range", "min intensity cannot be greater than max intensity")
	}
	return IntensityRange{Min: lo, Max: hi}, nil
}

func (r IntensityRange) String() string {
	return fmt.Sprintf("%.0f%%-%.0f%%", r.Min*100, r.Max*100)
}

// Microcycle is the prescription for one week of a mesocycle.
type Microcycle struct {
	MesocycleID      string
	Number           int
	WeekStart        int
	WeekEnd          int
	Phase            TrainingPhase
	Intensity        IntensityRange
	RepsRange        string
	SetsRange        string
	RIR              int
	VolumeMultiplier float64
	FrequencyPerWeek int
}

// Validate checks the RIR and volume bounds.
func (mc Microcycle) Validate() error {
	if mc.RIR < 0 || mc.RIR > 5 {
		return newValidationError("rir", "RIR must be between 0 and 5")
	}
	if mc.VolumeMultiplier < 0.5 || mc.VolumeMultiplier > 2.0 {
		return newValidationError("volume_multiplier", "volume multiplier must be between 0.5 and 2.0")
	}
	return nil
}

func (mc Microcycle) DurationWeeks() int { return mc.WeekEnd - mc.WeekStart + 1 }

func (mc Microcycle) IsDeload() bool { return mc.Phase == PhaseDeload }

// PlanMicrocycle derives the prescription for week. Flagged deload weeks get a
// reduced load; the remaining weeks are split into accumulation,
// transmutation and realization thirds around the goal's baseline.
func (m *Mesocycle) PlanMicrocycle(week int) (Microcycle, error) {
	if week < 1 || week > m.DurationWeeks {
		return Microcycle{}, newValidationError("week", "week must be between 1 and %d", m.DurationWeeks)
	}
	base := ProgressionFor(m.Goal)
	mc := Microcycle{
		MesocycleID:      m.ID,
		Number:           week,
		WeekStart:        week,
		WeekEnd:          week,
		RepsRange:        base.Repetitions,
		FrequencyPerWeek: m.WeeklyFrequency,
	}

	var (
		lo, hi float64
		sets   int
	)
	if m.IsDeloadWeek(week) {
		mc.Phase = PhaseDeload
		lo, hi = base.IntensityPct-0.20, base.IntensityPct-0.10
		sets = max(base.SetsRecommended-2, 1)
		mc.RIR = 4
		mc.VolumeMultiplier = 0.6
	} else {
		switch (week - 1) * 3 / m.DurationWeeks {
		case 0:
			mc.Phase = PhaseAccumulation
			lo, hi = base.IntensityPct-0.05, base.IntensityPct
			sets = base.SetsRecommended + 1
			mc.RIR = min(base.RIRTarget+1, 5)
			mc.VolumeMultiplier = 1.1
		case 1:
			mc.Phase = PhaseTransmutation
			lo, hi = base.IntensityPct, base.IntensityPct+0.05
			sets = base.SetsRecommended
			mc.RIR = base.RIRTarget
			mc.VolumeMultiplier = 1.0
		default:
			mc.Phase = PhaseRealization
			lo, hi = base.IntensityPct+0.05, base.IntensityPct+0.10
			sets = max(base.SetsRecommended-1, 1)
			mc.RIR = max(base.RIRTarget-1, 0)
			mc.VolumeMultiplier = 0.85
		}
	}

	intensity, err := NewIntensityRange(clampUnit(lo), clampUnit(hi))
	if err != nil {
		return Microcycle{}, err
	}
	mc.Intensity = intensity
	mc.SetsRange = fmt.Sprintf("%d", sets)
	if err := mc.Validate(); err != nil {
		return Microcycle{}, err
	}
	return mc, nil
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
