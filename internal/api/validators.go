package api

import (
	"errors"

	"wscmeso/mesocycle-planner/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// enumRules are binding tags for the domain's string enums, usable as
// `binding:"omitempty,metric_type"`.
var enumRules = map[string]func(string) bool{
	"training_level": func(s string) bool { return domain.TrainingLevel(s).IsValid() },
	"periodization":  func(s string) bool { return domain.PeriodizationModel(s).IsValid() },
	"goal":           func(s string) bool { return domain.TrainingGoal(s).IsValid() },
	"metric_type":    func(s string) bool { return domain.MetricType(s).IsValid() },
	"split":          func(s string) bool { return domain.TrainingSplit(s).IsValid() },
	"muscle_group":   func(s string) bool { return domain.MuscleGroup(s).IsValid() },
	"exercise_type":  func(s string) bool { return domain.ExerciseType(s).IsValid() },
	"meso_status":    func(s string) bool { return domain.MesocycleStatus(s).IsValid() },
}

// RegisterValidators installs the enum rules on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	for tag, valid := range enumRules {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
		if err != nil {
			return err
		}
	}
	return nil
}
