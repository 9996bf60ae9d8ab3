package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"recipe-app-go/internal/blobstore"
	recipesdomain "recipe-app-go/internal/domain/recipes"
	"recipe-app-go/internal/transport/httpserver/middleware"
	"github.com/google/uuid"
)

type recipeLineRequest struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

type createRecipeRequest struct {
	Name        string              `json:"name"`
	Text        string              `json:"text"`
	CookingTime int                 `json:"cooking_time"`
	Tags        []string            `json:"tags"`
	Ingredients []recipeLineRequest `json:"ingredients"`
	Image       string              `json:"image"`
}

type updateRecipeRequest struct {
	Name        string              `json:"name"`
	Text        string              `json:"text"`
	CookingTime int                 `json:"cooking_time"`
	Tags        []string            `json:"tags"`
	Ingredients []recipeLineRequest `json:"ingredients"`
	Image       *string             `json:"image"`
}

type recipeAuthorResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type recipeLineResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type recipeResponse struct {
	ID               string               `json:"id"`
	Author           recipeAuthorResponse `json:"author"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
	Tags             []tagResponse        `json:"tags"`
	Ingredients      []recipeLineResponse `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	CreatedAt        time.Time            `json:"created_at"`
}

type recipeListResponse struct {
	Items []recipeResponse `json:"items"`
	Total int64            `json:"total"`
}

func toRecipeResponse(details recipesdomain.RecipeDetails) recipeResponse {
	tags := make([]tagResponse, 0, len(details.Tags))
	for _, tag := range details.Tags {
		tags = append(tags, toTagResponse(tag))
	}

	lines := make([]recipeLineResponse, 0, len(details.Ingredients))
	for _, line := range details.Ingredients {
		lines = append(lines, recipeLineResponse{
			ID:              line.IngredientID,
			Name:            line.Name,
			MeasurementUnit: line.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	return recipeResponse{
		ID: details.ID,
		Author: recipeAuthorResponse{
			ID:        details.Author.ID,
			Email:     details.Author.Email,
			Username:  details.Author.Username,
			FirstName: details.Author.FirstName,
			LastName:  details.Author.LastName,
		},
		Name:             details.Name,
		Image:            details.Image,
		Text:             details.Text,
		CookingTime:      details.CookingTime,
		Tags:             tags,
		Ingredients:      lines,
		IsFavorited:      details.IsFavorited,
		IsInShoppingCart: details.IsInShoppingCart,
		CreatedAt:        details.CreatedAt,
	}
}

func toLineInputs(lines []recipeLineRequest) []recipesdomain.LineInput {
	inputs := make([]recipesdomain.LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, recipesdomain.LineInput{
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	return inputs
}

func (h *Handlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserIDFromContext(r.Context())
	query := r.URL.Query()

	limit, offset, err := parsePagination(query.Get("page"), query.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	authorID := strings.TrimSpace(query.Get("author"))
	if authorID != "" {
		if _, err := uuid.Parse(authorID); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid author id")
			return
		}
	}

	filter := recipesdomain.ListFilter{
		TagSlugs:      parseCSV(strings.Join(query["tags"], ",")),
		OnlyFavorited: parseBoolFlag(query.Get("is_favorited")),
		OnlyInCart:    parseBoolFlag(query.Get("is_in_shopping_cart")),
		AuthorID:      authorID,
		Limit:         limit,
		Offset:        offset,
	}

	items, total, err := h.Recipes.List(r.Context(), viewerID, filter)
	if err != nil {
		h.log.InternalError("recipes.list failed", err, "viewer_id", viewerID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]recipeResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toRecipeResponse(item))
	}
	writeJSON(w, http.StatusOK, recipeListResponse{Items: response, Total: total})
}

func (h *Handlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserIDFromContext(r.Context())
	recipeID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
		return
	}

	details, err := h.Recipes.Get(r.Context(), viewerID, recipeID)
	if err != nil {
		if errors.Is(err, recipesdomain.ErrRecipeNotFound) {
			writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
			return
		}
		h.log.InternalError("recipes.get failed", err, "recipe_id", recipeID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toRecipeResponse(*details))
}

func (h *Handlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Image) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "image is required")
		return
	}
	imageURL, err := h.blobs.SaveDataURI(req.Image)
	if err != nil {
		if errors.Is(err, blobstore.ErrInvalidImage) {
			writeError(w, http.StatusBadRequest, "invalid_image", "image must be a base64 data uri")
			return
		}
		h.log.InternalError("recipes.create: save image failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	details, err := h.Recipes.Create(r.Context(), recipesdomain.CreateRecipeInput{
		AuthorID:    user.ID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: toLineInputs(req.Ingredients),
		Image:       imageURL,
	})
	if err != nil {
		h.removeBlob(imageURL)
		h.writeRecipeError(w, "recipes.create", user.ID, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecipeResponse(*details))
}

func (h *Handlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
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

	var req updateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := recipesdomain.UpdateRecipeInput{
		RecipeID:    recipeID,
		RequesterID: user.ID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: toLineInputs(req.Ingredients),
	}

	previousImage := ""
	if req.Image != nil {
		current, err := h.Recipes.Get(r.Context(), user.ID, recipeID)
		if err != nil {
			h.writeRecipeError(w, "recipes.update", user.ID, err)
			return
		}
		previousImage = current.Image

		imageURL, err := h.blobs.SaveDataURI(*req.Image)
		if err != nil {
			if errors.Is(err, blobstore.ErrInvalidImage) {
				writeError(w, http.StatusBadRequest, "invalid_image", "image must be a base64 data uri")
				return
			}
			h.log.InternalError("recipes.update: save image failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		input.Image = imageURL
		input.ImageSet = true
	}

	details, err := h.Recipes.Update(r.Context(), input)
	if err != nil {
		if input.ImageSet {
			h.removeBlob(input.Image)
		}
		h.writeRecipeError(w, "recipes.update", user.ID, err)
		return
	}
	if input.ImageSet && previousImage != input.Image {
		h.removeBlob(previousImage)
	}
	writeJSON(w, http.StatusOK, toRecipeResponse(*details))
}

func (h *Handlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
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

	details, err := h.Recipes.Get(r.Context(), user.ID, recipeID)
	if err != nil {
		h.writeRecipeError(w, "recipes.delete", user.ID, err)
		return
	}

	if err := h.Recipes.Delete(r.Context(), user.ID, recipeID); err != nil {
		h.writeRecipeError(w, "recipes.delete", user.ID, err)
		return
	}
	h.removeBlob(details.Image)
	w.WriteHeader(http.StatusNoContent)
}

// removeBlob deletes a stored image that no live recipe references
// anymore. Cleanup failures only leave an unreferenced file behind, so
// they are logged instead of failing the request.
func (h *Handlers) removeBlob(fileURL string) {
	if fileURL == "" {
		return
	}
	if err := h.blobs.Remove(fileURL); err != nil {
		h.log.Warn("media: removing file failed", "url", fileURL, "error", err)
	}
}

// writeRecipeError maps recipe service failures to HTTP status codes.
// Unknown ids referenced inside a payload are the caller's mistake, so
// they map to 400 rather than 404.
func (h *Handlers) writeRecipeError(w http.ResponseWriter, op, userID string, err error) {
	var validation *recipesdomain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, "invalid_request", validation.Error())
	case errors.Is(err, recipesdomain.ErrTagNotFound):
		writeError(w, http.StatusBadRequest, "reference_not_found", "unknown tag id")
	case errors.Is(err, recipesdomain.ErrIngredientNotFound):
		writeError(w, http.StatusBadRequest, "reference_not_found", "unknown ingredient id")
	case errors.Is(err, recipesdomain.ErrDuplicateTag):
		writeError(w, http.StatusBadRequest, "invalid_request", "duplicate tag in recipe")
	case errors.Is(err, recipesdomain.ErrDuplicateIngredient):
		writeError(w, http.StatusBadRequest, "invalid_request", "duplicate ingredient in recipe")
	case errors.Is(err, recipesdomain.ErrNameTaken):
		writeError(w, http.StatusBadRequest, "name_taken", "you already have a recipe with this name")
	case errors.Is(err, recipesdomain.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "recipe_not_found", "recipe not found")
	case errors.Is(err, recipesdomain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "forbidden", "recipe belongs to another user")
	default:
		h.log.InternalError(op+" failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
