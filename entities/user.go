package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	Password      string    `json:"-"`
	Height        float64   `json:"height,omitempty"`
	Weight        float64   `json:"weight,omitempty"`
	Age           int       `json:"age,omitempty"`
	Sex           string    `json:"sex,omitempty"`            // "male", "female", "other"
	ActivityLevel string    `json:"activity_level,omitempty"` // "sedentary" .. "very_active"
	FitnessGoal   string    `json:"fitness_goal,omitempty"`   // "lose", "maintain", "gain"
	IsVerified    bool      `json:"is_verified"`

	Timestamp
}
