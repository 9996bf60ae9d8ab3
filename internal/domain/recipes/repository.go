package recipes

import (
	"context"

	"recipe-app-go/internal/domain/catalog"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CountTagsByIDs(ctx context.Context, tagIDs []string) (int64, error)
	CountIngredientsByIDs(ctx context.Context, ingredientIDs []string) (int64, error)
	CountRecipesByAuthorAndName(ctx context.Context, authorID, name, excludeID string) (int64, error)

	CreateRecipe(ctx context.Context, recipe *Recipe) error
	GetRecipeByID(ctx context.Context, recipeID string) (*Recipe, error)
	GetRecipeWithFlags(ctx context.Context, viewerID, recipeID string) (*RecipeRow, error)
	UpdateRecipe(ctx context.Context, recipe *Recipe) error
	DeleteRecipe(ctx context.Context, recipeID string) (bool, error)
	ListRecipes(ctx context.Context, viewerID string, filter ListFilter) ([]RecipeRow, int64, error)

	ReplaceRecipeTags(ctx context.Context, recipeID string, tagIDs []string) error
	ReplaceRecipeIngredients(ctx context.Context, recipeID string, lines []LineInput) error

	GetTagsByRecipeIDs(ctx context.Context, recipeIDs []string) (map[string][]catalog.Tag, error)
	GetLinesByRecipeIDs(ctx context.Context, recipeIDs []string) (map[string][]IngredientLine, error)
	GetAuthorsByIDs(ctx context.Context, authorIDs []string) (map[string]Author, error)
}
