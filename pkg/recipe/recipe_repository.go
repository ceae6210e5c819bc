package recipe

import (
	"context"

	"gorm.io/gorm"

	"pantryfit-backend/entities"
)

type (
	RecipeRepository interface {
		CreateGeneratedRecipe(ctx context.Context, recipe *entities.GeneratedRecipe) error
		GetGeneratedRecipes(ctx context.Context, userID string) ([]*entities.GeneratedRecipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateGeneratedRecipe(ctx context.Context, recipe *entities.GeneratedRecipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetGeneratedRecipes(ctx context.Context, userID string) ([]*entities.GeneratedRecipe, error) {
	var recipes []*entities.GeneratedRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
