package handler

import (
	"errors"
	"net/http"
	"strings"

	userdomain "recipe-app-go/internal/domain/user"
	"recipe-app-go/internal/transport/httpserver/middleware"
)

type profileResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AvatarURL    string `json:"avatar_url"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type subscriptionResponse struct {
	profileResponse
	Recipes      []recipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

type subscriptionListResponse struct {
	Items []subscriptionResponse `json:"items"`
	Total int64                  `json:"total"`
}

func toProfileResponse(profile userdomain.Profile, isSubscribed bool) profileResponse {
	avatarURL := ""
	if profile.AvatarURL != nil {
		avatarURL = *profile.AvatarURL
	}
	return profileResponse{
		ID:           profile.UserID,
		Email:        profile.Email,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		AvatarURL:    avatarURL,
		IsSubscribed: isSubscribed,
	}
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserIDFromContext(r.Context())
	userID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	view, err := h.Users.GetProfile(r.Context(), viewerID, userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.get failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(view.Profile, view.IsSubscribed))
}

func (h *Handlers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	query := r.URL.Query()

	limit, offset, err := parsePagination(query.Get("page"), query.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	recipesLimit := -1
	if value := strings.TrimSpace(query.Get("recipes_limit")); value != "" {
		recipesLimit, err = parseIntParam(value, -1)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid recipes_limit")
			return
		}
	}

	subscriptions, total, err := h.Users.Subscriptions(r.Context(), user.ID, recipesLimit, limit, offset)
	if err != nil {
		h.log.InternalError("subscriptions.list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]subscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		recipes := make([]recipeShortResponse, 0, len(subscription.Recipes))
		for _, recipe := range subscription.Recipes {
			recipes = append(recipes, recipeShortResponse{
				ID:          recipe.ID,
				Name:        recipe.Name,
				Image:       recipe.Image,
				CookingTime: recipe.CookingTime,
			})
		}
		items = append(items, subscriptionResponse{
			profileResponse: toProfileResponse(subscription.Profile, true),
			Recipes:         recipes,
			RecipesCount:    subscription.RecipesCount,
		})
	}
	writeJSON(w, http.StatusOK, subscriptionListResponse{Items: items, Total: total})
}
