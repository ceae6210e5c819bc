package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantryfit-backend/domain"
	"pantryfit-backend/entities"
	"pantryfit-backend/internal/config"
	"pantryfit-backend/pkg/inventory"
)

type (
	RecipeService interface {
		GenerateFromInventory(ctx context.Context, userID string) (domain.GeneratedRecipeResponse, error)
		GetUserRecipes(ctx context.Context, userID string) ([]domain.GeneratedRecipeResponse, error)
	}

	recipeService struct {
		recipeRepository    RecipeRepository
		inventoryRepository inventory.InventoryRepository
		gemini              config.GeminiConfig
	}

	generatedRecipePayload struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		PrepTimeMinutes int      `json:"prepTimeMinutes"`
		CookTimeMinutes int      `json:"cookTimeMinutes"`
		Servings        int      `json:"servings"`
		DifficultyLevel string   `json:"difficultyLevel"`
		CuisineType     string   `json:"cuisineType"`
		Ingredients     []string `json:"ingredients"`
		Instructions    []string `json:"instructions"`
	}
)

func NewRecipeService(recipeRepository RecipeRepository, inventoryRepository inventory.InventoryRepository, gemini config.GeminiConfig) RecipeService {
	return &recipeService{
		recipeRepository:    recipeRepository,
		inventoryRepository: inventoryRepository,
		gemini:              gemini,
	}
}

func (s *recipeService) GenerateFromInventory(ctx context.Context, userID string) (domain.GeneratedRecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.GeneratedRecipeResponse{}, domain.ErrParseUUID
	}

	items, _, err := s.inventoryRepository.GetInventoryItems(ctx, userID, 1, 100)
	if err != nil {
		return domain.GeneratedRecipeResponse{}, err
	}
	if len(items) == 0 {
		return domain.GeneratedRecipeResponse{}, domain.ErrNoIngredients
	}

	ingredients := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		ingredient := map[string]interface{}{
			"name":     item.Name,
			"quantity": item.Quantity,
			"unit":     item.ServingSizeUnit,
		}
		if item.ExpiryDate != nil {
			ingredient["expiryDate"] = item.ExpiryDate.Format("2006-01-02")
		}
		ingredients = append(ingredients, ingredient)
	}

	payload, err := s.generateRecipe(ctx, ingredients)
	if err != nil {
		return domain.GeneratedRecipeResponse{}, err
	}

	ingredientsJSON, _ := json.Marshal(payload.Ingredients)
	instructionsJSON, _ := json.Marshal(payload.Instructions)

	recipe := &entities.GeneratedRecipe{
		ID:              uuid.New(),
		UserID:          userUUID,
		Title:           payload.Title,
		Description:     payload.Description,
		PrepTimeMinutes: payload.PrepTimeMinutes,
		CookTimeMinutes: payload.CookTimeMinutes,
		Servings:        payload.Servings,
		DifficultyLevel: payload.DifficultyLevel,
		CuisineType:     payload.CuisineType,
		Ingredients:     string(ingredientsJSON),
		Instructions:    string(instructionsJSON),
	}

	if err := s.recipeRepository.CreateGeneratedRecipe(ctx, recipe); err != nil {
		return domain.GeneratedRecipeResponse{}, err
	}

	return toGeneratedRecipeResponse(recipe), nil
}

func (s *recipeService) GetUserRecipes(ctx context.Context, userID string) ([]domain.GeneratedRecipeResponse, error) {
	recipes, err := s.recipeRepository.GetGeneratedRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.GeneratedRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toGeneratedRecipeResponse(recipe))
	}
	return response, nil
}

func (s *recipeService) generateRecipe(ctx context.Context, ingredients []map[string]interface{}) (generatedRecipePayload, error) {
	if s.gemini.APIKey == "" || s.gemini.Model == "" {
		return generatedRecipePayload{}, fmt.Errorf("gemini API not configured")
	}

	ingredientsJSON, _ := json.Marshal(ingredients)

	prompt := fmt.Sprintf(
		"You are a professional chef. Given the following pantry ingredients "+
			"(with quantities, units, and expiry dates): %s, generate one realistic recipe "+
			"that uses them, prioritizing ingredients closest to expiry. "+
			"Respond ONLY with a valid JSON object with these fields: "+
			"title, description, prepTimeMinutes, cookTimeMinutes, servings, "+
			"difficultyLevel, cuisineType, ingredients (array of strings), "+
			"instructions (array of strings). "+
			"Do not include any explanations or text outside of the JSON object.",
		string(ingredientsJSON),
	)

	geminiURL := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.gemini.Model, s.gemini.APIKey,
	)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return generatedRecipePayload{}, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	geminiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return generatedRecipePayload{}, err
	}
	geminiReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(geminiReq)
	if err != nil {
		return generatedRecipePayload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return generatedRecipePayload{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return generatedRecipePayload{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return generatedRecipePayload{}, domain.ErrGeminiAPIFailed
	}

	responseText := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)

	// The model wraps the JSON in markdown fences now and then.
	startIdx := strings.Index(responseText, "{")
	endIdx := strings.LastIndex(responseText, "}")
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		return generatedRecipePayload{}, fmt.Errorf("invalid response format: %s", responseText)
	}
	responseText = responseText[startIdx : endIdx+1]

	var payload generatedRecipePayload
	if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
		return generatedRecipePayload{}, fmt.Errorf("failed to parse gemini response: %v", err)
	}
	if payload.Title == "" {
		return generatedRecipePayload{}, domain.ErrGeminiAPIFailed
	}

	return payload, nil
}

func toGeneratedRecipeResponse(recipe *entities.GeneratedRecipe) domain.GeneratedRecipeResponse {
	var ingredients, instructions []string
	_ = json.Unmarshal([]byte(recipe.Ingredients), &ingredients)
	_ = json.Unmarshal([]byte(recipe.Instructions), &instructions)

	return domain.GeneratedRecipeResponse{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		DifficultyLevel: recipe.DifficultyLevel,
		CuisineType:     recipe.CuisineType,
		Ingredients:     ingredients,
		Instructions:    instructions,
		CreatedAt:       recipe.CreatedAt,
	}
}
