package shoppinglist

import "context"

type Repository interface {
	// ListCart returns the user's cart recipes in cart insertion order,
	// each with its ingredient lines in association order.
	ListCart(ctx context.Context, userID string) ([]CartRecipe, error)
}
