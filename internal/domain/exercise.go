// internal/domain/exercise.go
package domain

import "time"

// MuscleGroup is the primary region an exercise trains.
type MuscleGroup string

const (
	MusclePectorals MuscleGroup = "pectorals"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleForearms  MuscleGroup = "forearms"
	MuscleLegs      MuscleGroup = "legs"
	MuscleAbs       MuscleGroup = "abs"
)

func (g MuscleGroup) IsValid() bool {
	switch g {
	case MusclePectorals, MuscleBack, MuscleShoulders, MuscleBiceps,
		MuscleTriceps, MuscleForearms, MuscleLegs, MuscleAbs:
		return true
	}
	return false
}

// ExerciseType is the equipment class of an exercise.
type ExerciseType string

const (
	TypeFreeWeight   ExerciseType = "free_weight"
	TypeMachine      ExerciseType = "machine"
	TypeCable        ExerciseType = "cable"
	TypeSmithMachine ExerciseType = "smith_machine"
	TypeBodyweight   ExerciseType = "bodyweight"
	TypeOther        ExerciseType = "other"
)

func (t ExerciseType) IsValid() bool {
	switch t {
	case TypeFreeWeight, TypeMachine, TypeCable, TypeSmithMachine, TypeBodyweight, TypeOther:
		return true
	}
	return false
}

// Exercise is an entry of the seeded exercise library. The library is
// read-only for the API.
type Exercise struct {
	ID                int          `bson:"_id" json:"id"`
	Name              string       `bson:"name" json:"name"`
	Number            string       `bson:"number" json:"number"` // Catalogue number, e.g. "1.4"
	MuscleGroup       MuscleGroup  `bson:"muscle_group" json:"muscleGroup"`
	Type              ExerciseType `bson:"type" json:"type"`
	PrimaryMuscles    []string     `bson:"primary_muscles" json:"primaryMuscles"`
	SecondaryMuscles  []string     `bson:"secondary_muscles,omitempty" json:"secondaryMuscles,omitempty"`
	AntagonistMuscles []string     `bson:"antagonist_muscles,omitempty" json:"antagonistMuscles,omitempty"`
	Execution         string       `bson:"execution,omitempty" json:"execution,omitempty"`
	Comments          string       `bson:"comments,omitempty" json:"comments,omitempty"`
	CommonMistakes    []string     `bson:"common_mistakes,omitempty" json:"commonMistakes,omitempty"`
	Variants          []string     `bson:"variants,omitempty" json:"variants,omitempty"`
	PDFPage           *int         `bson:"pdf_page,omitempty" json:"pdfPage,omitempty"`
	Difficulty        string       `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	CreatedAt         time.Time    `bson:"created_at,omitempty" json:"createdAt"`
	UpdatedAt         time.Time    `bson:"updated_at,omitempty" json:"updatedAt"`
}

// IsCompound reports whether the exercise works more than one muscle.
func (e *Exercise) IsCompound() bool {
	return len(e.PrimaryMuscles) > 1 || len(e.SecondaryMuscles) > 0
}

// MusclesWorked lists primary then secondary muscles.
func (e *Exercise) MusclesWorked() []string {
	out := make([]string, 0, len(e.PrimaryMuscles)+len(e.SecondaryMuscles))
	out = append(out, e.PrimaryMuscles...)
	return append(out, e.SecondaryMuscles...)
}
