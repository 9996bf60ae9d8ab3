package catalog

import "context"

type Repository interface {
	ListIngredients(ctx context.Context, filter ListIngredientsFilter) ([]Ingredient, error)
	GetIngredientByID(ctx context.Context, id string) (*Ingredient, error)
	GetOrCreateIngredient(ctx context.Context, ingredient *Ingredient) (bool, error)
	ListTags(ctx context.Context) ([]Tag, error)
	GetTagByID(ctx context.Context, id string) (*Tag, error)
	GetOrCreateTag(ctx context.Context, tag *Tag) (bool, error)
}
