package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGenerateRecipe = "recipe generated successfully"
	MessageSuccessGetUserRecipes = "generated recipes retrieved successfully"

	MessageFailedGenerateRecipe = "failed to generate recipe"
	MessageFailedGetUserRecipes = "failed to retrieve generated recipes"

	ErrGeminiAPIFailed = errors.New("gemini API processing failed")
	ErrNoIngredients   = errors.New("no ingredients available for recipe generation")
)

type (
	GeneratedRecipeResponse struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		Servings        int       `json:"servings"`
		DifficultyLevel string    `json:"difficulty_level"`
		CuisineType     string    `json:"cuisine_type"`
		Ingredients     []string  `json:"ingredients"`
		Instructions    []string  `json:"instructions"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
