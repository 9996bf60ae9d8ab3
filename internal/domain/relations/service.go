package relations

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddFavorite creates the (user, recipe) favorite row. Adding an
// existing favorite is an error, not a no-op; the existence check and
// the insert run in one transaction so a concurrent double-submission
// cannot create duplicate rows.
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID string) (*RecipeShort, error) {
	var short *RecipeShort
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		recipe, err := tx.GetRecipeShort(ctx, recipeID)
		if err != nil {
			return err
		}

		exists, err := tx.FavoriteExists(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyFavorite
		}

		if err := tx.CreateFavorite(ctx, &Favorite{UserID: userID, RecipeID: recipeID}); err != nil {
			return err
		}
		short = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return short, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	if _, err := s.repo.GetRecipeShort(ctx, recipeID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFavorite
	}
	return nil
}

func (s *Service) AddToCart(ctx context.Context, userID, recipeID string) (*RecipeShort, error) {
	var short *RecipeShort
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		recipe, err := tx.GetRecipeShort(ctx, recipeID)
		if err != nil {
			return err
		}

		exists, err := tx.CartItemExists(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyInCart
		}

		if err := tx.CreateCartItem(ctx, &CartItem{UserID: userID, RecipeID: recipeID}); err != nil {
			return err
		}
		short = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return short, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	if _, err := s.repo.GetRecipeShort(ctx, recipeID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteCartItem(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotInCart
	}
	return nil
}

// Follow subscribes userID to authorID. Self-follow is forbidden.
func (s *Service) Follow(ctx context.Context, userID, authorID string) (*AuthorShort, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	var short *AuthorShort
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		author, err := tx.GetAuthorShort(ctx, authorID)
		if err != nil {
			return err
		}

		exists, err := tx.FollowExists(ctx, userID, authorID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyFollowing
		}

		if err := tx.CreateFollow(ctx, &Follow{UserID: userID, AuthorID: authorID}); err != nil {
			return err
		}
		short = author
		return nil
	})
	if err != nil {
		return nil, err
	}
	return short, nil
}

func (s *Service) Unfollow(ctx context.Context, userID, authorID string) error {
	if _, err := s.repo.GetAuthorShort(ctx, authorID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteFollow(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFollowing
	}
	return nil
}
