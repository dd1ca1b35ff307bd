package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes = "success get recipes"
	MessageFailedGetRecipes  = "failed to get recipes"

	MessageSelectIngredients = "Please select at least one ingredient"

	ErrRecipeAPIKeyMissing = errors.New("recipe catalog API key not configured")
)

type (
	// RecipeSearchRequest names ingredients directly, by inventory item, or both.
	RecipeSearchRequest struct {
		ItemIDs     []string `json:"item_ids" validate:"omitempty,dive,uuid"`
		Ingredients []string `json:"ingredients" validate:"omitempty,dive,required"`
	}

	Ingredient struct {
		ID     int     `json:"id"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
		Name   string  `json:"name"`
	}

	Recipe struct {
		ID                    int          `json:"id"`
		Title                 string       `json:"title"`
		Image                 string       `json:"image,omitempty"`
		UsedIngredientCount   int          `json:"usedIngredientCount"`
		MissedIngredientCount int          `json:"missedIngredientCount"`
		MissedIngredients     []Ingredient `json:"missedIngredients"`
		UsedIngredients       []Ingredient `json:"usedIngredients"`
	}

	RecipeSearchResponse struct {
		Ingredients []string `json:"ingredients"`
		Recipes     []Recipe `json:"recipes"`
		Total       int      `json:"total"`
	}
)
