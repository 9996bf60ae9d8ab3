package handler

import (
	"net/http"

	shoppinglistdomain "recipe-app-go/internal/domain/shoppinglist"
	"recipe-app-go/internal/transport/httpserver/middleware"
)

func (h *Handlers) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	document, err := h.ShoppingList.Build(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("shopping_list.download failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+shoppinglistdomain.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}
