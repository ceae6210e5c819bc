package entities

import (
	"github.com/google/uuid"
)

type GeneratedRecipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Servings        int       `json:"servings"`
	DifficultyLevel string    `json:"difficulty_level"`
	CuisineType     string    `json:"cuisine_type"`
	Ingredients     string    `json:"ingredients" gorm:"type:text"`
	Instructions    string    `json:"instructions" gorm:"type:text"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
