package handler

import (
	"errors"
	"net/http"

	relationsdomain "recipe-app-go/internal/domain/relations"
	"recipe-app-go/internal/transport/httpserver/middleware"
)

type recipeShortResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type authorShortResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toRecipeShortResponse(short relationsdomain.RecipeShort) recipeShortResponse {
	return recipeShortResponse{
		ID:          short.ID,
		Name:        short.Name,
		Image:       short.Image,
		CookingTime: short.CookingTime,
	}
}

func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	recipeID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
		return
	}

	short, err := h.Relations.AddFavorite(r.Context(), user.ID, recipeID)
	if err != nil {
		h.writeRelationError(w, "favorites.add", user.ID, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecipeShortResponse(*short))
}

func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	recipeID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
		return
	}

	if err := h.Relations.RemoveFavorite(r.Context(), user.ID, recipeID); err != nil {
		h.writeRelationError(w, "favorites.remove", user.ID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	recipeID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
		return
	}

	short, err := h.Relations.AddToCart(r.Context(), user.ID, recipeID)
	if err != nil {
		h.writeRelationError(w, "cart.add", user.ID, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecipeShortResponse(*short))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	recipeID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
		return
	}

	if err := h.Relations.RemoveFromCart(r.Context(), user.ID, recipeID); err != nil {
		h.writeRelationError(w, "cart.remove", user.ID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	authorID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	short, err := h.Relations.Follow(r.Context(), user.ID, authorID)
	if err != nil {
		h.writeRelationError(w, "subscriptions.add", user.ID, err)
		return
	}
	writeJSON(w, http.StatusCreated, authorShortResponse{
		ID:        short.ID,
		Email:     short.Email,
		FirstName: short.FirstName,
		LastName:  short.LastName,
	})
}

func (h *Handlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	authorID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	if err := h.Relations.Unfollow(r.Context(), user.ID, authorID); err != nil {
		h.writeRelationError(w, "subscriptions.remove", user.ID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeRelationError(w http.ResponseWriter, op, userID string, err error) {
	switch {
	case errors.Is(err, relationsdomain.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
	case errors.Is(err, relationsdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, relationsdomain.ErrAlreadyFavorite):
		writeError(w, http.StatusBadRequest, "already_exists", "recipe already in favorites")
	case errors.Is(err, relationsdomain.ErrNotFavorite):
		writeError(w, http.StatusBadRequest, "not_found_in_list", "recipe is not in favorites")
	case errors.Is(err, relationsdomain.ErrAlreadyInCart):
		writeError(w, http.StatusBadRequest, "already_exists", "recipe already in shopping cart")
	case errors.Is(err, relationsdomain.ErrNotInCart):
		writeError(w, http.StatusBadRequest, "not_found_in_list", "recipe is not in shopping cart")
	case errors.Is(err, relationsdomain.ErrAlreadyFollowing):
		writeError(w, http.StatusBadRequest, "already_exists", "already subscribed to this author")
	case errors.Is(err, relationsdomain.ErrNotFollowing):
		writeError(w, http.StatusBadRequest, "not_found_in_list", "not subscribed to this author")
	case errors.Is(err, relationsdomain.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "self_follow", "cannot subscribe to yourself")
	default:
		h.log.InternalError(op+" failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
