package recipes

import "errors"

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrDuplicateTag        = errors.New("duplicate tag in recipe")
	ErrDuplicateIngredient = errors.New("duplicate ingredient in recipe")
	ErrNameTaken           = errors.New("author already has a recipe with this name")
	ErrNotOwner            = errors.New("recipe belongs to another user")
)

// ValidationError is a user-correctable input problem tied to one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
