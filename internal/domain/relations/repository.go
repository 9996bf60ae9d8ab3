package relations

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetRecipeShort(ctx context.Context, recipeID string) (*RecipeShort, error)
	GetAuthorShort(ctx context.Context, userID string) (*AuthorShort, error)

	FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error)
	CreateFavorite(ctx context.Context, favorite *Favorite) error
	DeleteFavorite(ctx context.Context, userID, recipeID string) (bool, error)

	CartItemExists(ctx context.Context, userID, recipeID string) (bool, error)
	CreateCartItem(ctx context.Context, item *CartItem) error
	DeleteCartItem(ctx context.Context, userID, recipeID string) (bool, error)

	FollowExists(ctx context.Context, userID, authorID string) (bool, error)
	CreateFollow(ctx context.Context, follow *Follow) error
	DeleteFollow(ctx context.Context, userID, authorID string) (bool, error)
}
