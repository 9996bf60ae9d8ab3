package httpserver

import (
	"net/http"
	"time"

	"recipe-app-go/internal/config"
	"recipe-app-go/internal/transport/httpserver/handler"
	authmw "recipe-app-go/internal/transport/httpserver/middleware"
	"recipe-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, registry *prometheus.Registry, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewMetrics(registry).Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.Media.Dir))))

	auth := authmw.NewJWTAuth(cfg.Auth, profiles, log)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		// Reads are public; a valid token only adds the viewer flags.
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)

			r.Get("/tags", handlers.ListTags)
			r.Get("/tags/{id}", handlers.GetTag)
			r.Get("/ingredients", handlers.ListIngredients)
			r.Get("/ingredients/{id}", handlers.GetIngredient)
			r.Get("/recipes", handlers.ListRecipes)
			r.Get("/recipes/{id}", handlers.GetRecipe)
			r.Get("/users/{id}", handlers.GetUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/users/subscriptions", handlers.ListSubscriptions)
			r.Post("/users/{id}/subscribe", handlers.Subscribe)
			r.Delete("/users/{id}/subscribe", handlers.Unsubscribe)

			r.Post("/recipes", handlers.CreateRecipe)
			r.Patch("/recipes/{id}", handlers.UpdateRecipe)
			r.Delete("/recipes/{id}", handlers.DeleteRecipe)

			r.Post("/recipes/{id}/favorite", handlers.AddFavorite)
			r.Delete("/recipes/{id}/favorite", handlers.RemoveFavorite)
			r.Post("/recipes/{id}/shopping_cart", handlers.AddToCart)
			r.Delete("/recipes/{id}/shopping_cart", handlers.RemoveFromCart)
			r.Get("/recipes/download_shopping_cart", handlers.DownloadShoppingCart)
		})
	})

	return r
}
