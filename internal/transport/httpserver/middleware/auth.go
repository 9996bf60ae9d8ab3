package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"recipe-app-go/internal/config"
	"recipe-app-go/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

type JWTAuth struct {
	secret   []byte
	profiles ProfileSaver
	log      logger.Logger
	skipAuth bool
	mockUser User
}

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

type User struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	AvatarURL string
}

type ProfileSaver interface {
	UpsertProfile(ctx context.Context, userID, email, username, firstName, lastName, avatarURL string) error
}

type tokenClaims struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
	jwt.RegisteredClaims
}

func NewJWTAuth(cfg config.AuthConfig, profiles ProfileSaver, log logger.Logger) *JWTAuth {
	return &JWTAuth{
		secret:   []byte(cfg.JWTSecret),
		profiles: profiles,
		log:      log,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:       strings.TrimSpace(cfg.MockUserID),
			Email:    strings.TrimSpace(cfg.MockUserEmail),
			Username: strings.TrimSpace(cfg.MockUsername),
		},
	}
}

// Middleware rejects requests without a valid bearer token.
func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		if user.ID == "" {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional attaches the user when a valid token is present and lets
// anonymous requests through. A present but invalid token is still
// rejected.
func (a *JWTAuth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" && !a.skipAuth {
			next.ServeHTTP(w, r)
			return
		}
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (a *JWTAuth) authenticate(w http.ResponseWriter, r *http.Request) (User, bool) {
	if a.skipAuth {
		if a.mockUser.ID == "" {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
			return User{}, false
		}
		a.saveProfile(r.Context(), a.mockUser)
		return a.mockUser, true
	}

	if len(a.secret) == 0 {
		writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
		return User{}, false
	}

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		unauthorized(w)
		return User{}, false
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		unauthorized(w)
		return User{}, false
	}

	user := User{
		ID:        claims.Subject,
		Email:     claims.Email,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		AvatarURL: claims.AvatarURL,
	}
	a.saveProfile(r.Context(), user)
	return user, true
}

func (a *JWTAuth) saveProfile(ctx context.Context, user User) {
	if a.profiles == nil {
		return
	}
	if err := a.profiles.UpsertProfile(ctx, user.ID, user.Email, user.Username, user.FirstName, user.LastName, user.AvatarURL); err != nil {
		a.log.InternalError("auth: upsert profile failed", err, "user_id", user.ID)
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
