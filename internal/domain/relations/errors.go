package relations

import "errors"

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUserNotFound   = errors.New("user not found")

	ErrAlreadyFavorite = errors.New("recipe already favorited")
	ErrNotFavorite     = errors.New("recipe was not favorited")

	ErrAlreadyInCart = errors.New("recipe already in shopping cart")
	ErrNotInCart     = errors.New("recipe was not in shopping cart")

	ErrAlreadyFollowing = errors.New("already following this author")
	ErrNotFollowing     = errors.New("not following this author")
	ErrSelfFollow       = errors.New("cannot follow yourself")
)
