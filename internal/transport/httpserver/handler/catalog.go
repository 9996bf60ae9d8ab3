package handler

import (
	"errors"
	"net/http"

	catalogdomain "recipe-app-go/internal/domain/catalog"
)

type tagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type ingredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func toTagResponse(tag catalogdomain.Tag) tagResponse {
	return tagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}
}

func toIngredientResponse(ingredient catalogdomain.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Catalog.ListTags(r.Context())
	if err != nil {
		h.log.InternalError("tags.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, toTagResponse(tag))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "tag_not_found", "tag not found")
		return
	}

	tag, err := h.Catalog.GetTag(r.Context(), tagID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrTagNotFound) {
			writeError(w, http.StatusNotFound, "tag_not_found", "tag not found")
			return
		}
		h.log.InternalError("tags.get failed", err, "tag_id", tagID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(*tag))
}

func (h *Handlers) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.Catalog.ListIngredients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.log.InternalError("ingredients.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]ingredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, toIngredientResponse(ingredient))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetIngredient(w http.ResponseWriter, r *http.Request) {
	ingredientID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "ingredient_not_found", "ingredient not found")
		return
	}

	ingredient, err := h.Catalog.GetIngredient(r.Context(), ingredientID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrIngredientNotFound) {
			writeError(w, http.StatusNotFound, "ingredient_not_found", "ingredient not found")
			return
		}
		h.log.InternalError("ingredients.get failed", err, "ingredient_id", ingredientID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toIngredientResponse(*ingredient))
}
