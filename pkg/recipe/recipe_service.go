package recipe

import (
	"context"
	"pantrypal/domain"
	"pantrypal/pkg/food"
	"strings"
)

type (
	RecipeService interface {
		FindByIngredients(ctx context.Context, names []string) ([]domain.Recipe, error)
		SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) (domain.RecipeSearchResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		foodRepository   food.FoodRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository, foodRepository food.FoodRepository) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		foodRepository:   foodRepository,
	}
}

func (s *recipeService) FindByIngredients(ctx context.Context, names []string) ([]domain.Recipe, error) {
	names = normalize(names)
	if len(names) == 0 {
		return nil, domain.NewValidationError(domain.MessageSelectIngredients)
	}
	return s.recipeRepository.FindByIngredients(ctx, names)
}

// SearchRecipes resolves inventory items to ingredient names, soonest to
// expire first, then appends any free-text ingredients.
func (s *recipeService) SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) (domain.RecipeSearchResponse, error) {
	var names []string

	if len(req.ItemIDs) > 0 {
		items, err := s.foodRepository.GetFoodItemsByIDs(ctx, req.ItemIDs)
		if err != nil {
			return domain.RecipeSearchResponse{}, err
		}
		if len(items) != len(unique(req.ItemIDs)) {
			return domain.RecipeSearchResponse{}, domain.ErrFoodItemNotFound
		}
		for _, item := range items {
			names = append(names, item.Name)
		}
	}
	names = append(names, req.Ingredients...)

	names = normalize(names)
	if len(names) == 0 {
		return domain.RecipeSearchResponse{}, domain.NewValidationError(domain.MessageSelectIngredients)
	}

	recipes, err := s.recipeRepository.FindByIngredients(ctx, names)
	if err != nil {
		return domain.RecipeSearchResponse{}, err
	}

	return domain.RecipeSearchResponse{
		Ingredients: names,
		Recipes:     recipes,
		Total:       len(recipes),
	}, nil
}

// normalize trims names and drops blanks and case-insensitive duplicates,
// keeping the first occurrence.
func normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
