package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"pantrypal/domain"
	"pantrypal/internal/utils/breaker"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	findByIngredientsPath = "/recipes/findByIngredients"
	resultCount           = "10"
	// rankingMaximizeUsed ranks recipes by how many of the given ingredients they use.
	rankingMaximizeUsed = "2"
	defaultTimeout      = 15 * time.Second
)

type (
	// RecipeRepository is the remote recipe catalog.
	RecipeRepository interface {
		FindByIngredients(ctx context.Context, ingredients []string) ([]domain.Recipe, error)
	}

	recipeRepository struct {
		baseURL string
		apiKey  string
		client  *http.Client
		breaker *gobreaker.CircuitBreaker
		logger  *zap.Logger
	}
)

func NewRecipeRepository(baseURL, apiKey string, client *http.Client, logger *zap.Logger) RecipeRepository {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recipeRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		breaker: breaker.New(breaker.DefaultConfig("spoonacular"), logger),
		logger:  logger,
	}
}

func (r *recipeRepository) FindByIngredients(ctx context.Context, ingredients []string) ([]domain.Recipe, error) {
	if r.apiKey == "" {
		return nil, domain.ErrRecipeAPIKeyMissing
	}
	return breaker.Execute(r.breaker, func() ([]domain.Recipe, error) {
		return r.findByIngredients(ctx, ingredients)
	})
}

func (r *recipeRepository) findByIngredients(ctx context.Context, ingredients []string) ([]domain.Recipe, error) {
	query := url.Values{}
	query.Set("apiKey", r.apiKey)
	query.Set("ingredients", strings.Join(ingredients, ","))
	query.Set("number", resultCount)
	query.Set("ranking", rankingMaximizeUsed)
	query.Set("ignorePantry", "true")

	endpoint := r.baseURL + findByIngredientsPath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewNetworkError("invalid recipe request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError("recipe search failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("recipe catalog returned non-200", zap.Int("status", resp.StatusCode))
		return nil, domain.NewNetworkError(fmt.Sprintf("recipe search returned HTTP %d", resp.StatusCode), nil)
	}

	var recipes []domain.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return nil, domain.NewParseError("failed to parse recipe data", err)
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}
