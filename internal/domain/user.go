package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrainingLevel describes a lifter's experience.
type TrainingLevel string

const (
	LevelBeginner     TrainingLevel = "beginner"
	LevelIntermediate TrainingLevel = "intermediate"
	LevelAdvanced     TrainingLevel = "advanced"
	LevelElite        TrainingLevel = "elite"
)

func (l TrainingLevel) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelElite:
		return true
	}
	return false
}

// User is an account that owns mesocycles, progress entries and sessions.
type User struct {
	ID            string        `bson:"_id" json:"id"`
	Email         string        `bson:"email" json:"email"`       // Unique
	Username      string        `bson:"username" json:"username"` // Unique
	PasswordHash  string        `bson:"hashed_password" json:"-"` // Never expose this via JSON
	FullName      string        `bson:"full_name,omitempty" json:"fullName,omitempty"`
	TrainingLevel TrainingLevel `bson:"training_level" json:"trainingLevel"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`
}

// NewUser builds a user with a fresh identity. An empty level defaults to
// beginner.
func NewUser(email, username, passwordHash, fullName string, level TrainingLevel) (*User, error) {
	if email == "" {
		return nil, newValidationError("email", "email is required")
	}
	if username == "" {
		return nil, newValidationError("username", "username is required")
	}
	if level == "" {
		level = LevelBeginner
	}
	if !level.IsValid() {
		return nil, newValidationError("training_level", "unknown training level %q", level)
	}
	now := nowFunc()
	return &User{
		ID:            uuid.NewString(),
		Email:         email,
		Username:      username,
		PasswordHash:  passwordHash,
		FullName:      fullName,
		TrainingLevel: level,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateProfile applies the non-nil fields.
func (u *User) UpdateProfile(fullName *string, level *TrainingLevel) error {
	if level != nil && !level.IsValid() {
		return newValidationError("training_level", "unknown training level %q", *level)
	}
	if fullName != nil {
		u.FullName = *fullName
	}
	if level != nil {
		u.TrainingLevel = *level
	}
	u.UpdatedAt = nowFunc()
	return nil
}
