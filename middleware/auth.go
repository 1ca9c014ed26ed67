package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/config"
	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

// Key type for context
type contextKey string

// UserContextKey holds the authenticated *utils.Claims on the request context.
const UserContextKey = contextKey("user")

const dbTimeout = 5 * time.Second

// AuthGuard gates every request except the public auth paths. It validates
// the bearer access token, checks revocation against the token store,
// enforces the admin-only prefix, and transparently refreshes expired access
// tokens using the stored refresh token.
type AuthGuard struct {
	tokens        repository.TokenRepository
	users         repository.UserRepository
	accessSecret  []byte
	refreshSecret []byte
	publicPaths   map[string]struct{}
	adminPrefix   string
}

// NewAuthGuard builds the guard from explicit configuration; no ambient state.
func NewAuthGuard(cfg *config.Config, tokens repository.TokenRepository, users repository.UserRepository) *AuthGuard {
	public := make(map[string]struct{})
	for _, p := range []string{
		"/login",
		"/register",
		"/forgot-password",
		"/verify-token",
		"/verify-otp",
		"/reset-password",
	} {
		public[cfg.APIPrefix+p] = struct{}{}
		public[cfg.APIPrefix+p+"/"] = struct{}{}
	}
	return &AuthGuard{
		tokens:        tokens,
		users:         users,
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		publicPaths:   public,
		adminPrefix:   cfg.APIPrefix + "/admin/",
	}
}

// Middleware is the mux middleware wrapping every route.
func (g *AuthGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := g.publicPaths[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", "Authorization header missing")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", "Invalid Authorization header format")
			return
		}
		accessToken := parts[1]

		claims, err := utils.ParseToken(accessToken, g.accessSecret)
		switch {
		case err == nil:
			g.serveValidated(w, r, next, accessToken, claims)
		case utils.IsExpiryError(err):
			g.serveRefreshed(w, r, next, accessToken)
		default:
			utils.WriteError(w, http.StatusUnauthorized, "UnauthorizedError", err.Error())
		}
	})
}

// serveValidated handles the token-valid path: reject if revoked or if a
// non-admin hits an admin route, otherwise proceed.
func (g *AuthGuard) serveValidated(w http.ResponseWriter, r *http.Request, next http.Handler, accessToken string, claims *utils.Claims) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if _, err := g.tokens.FindByAccessToken(ctx, accessToken); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "UnauthorizedError", "Token is revoked")
		return
	}
	if g.adminFault(r.URL.Path, claims.IsAdmin) {
		utils.WriteError(w, http.StatusUnauthorized, "UnauthorizedError", "Token is revoked")
		return
	}
	next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserContextKey, claims)))
}

// serveRefreshed handles the token-expired path: fall back to the stored
// refresh token, mint a new access token, persist it over the stored record
// and let the request through as if the original token had been valid.
func (g *AuthGuard) serveRefreshed(w http.ResponseWriter, r *http.Request, next http.Handler, accessToken string) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	record, err := g.tokens.FindByAccessToken(ctx, accessToken)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", "Token does not exist")
		return
	}

	refreshClaims, err := utils.ParseToken(record.RefreshToken, g.refreshSecret)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(refreshClaims.ID)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", "Invalid User")
		return
	}
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Invalid User")
		return
	}

	// Reject before rotating the stored pair: a failed admin check must
	// leave the record untouched so later requests can still refresh.
	if g.adminFault(r.URL.Path, user.IsAdmin) {
		utils.WriteError(w, http.StatusUnauthorized, "UnauthorizedError", "Token is revoked")
		return
	}

	newAccessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.IsAdmin, g.accessSecret)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", err.Error())
		return
	}
	if err := g.tokens.UpdateAccessToken(ctx, record.ID, newAccessToken); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", err.Error())
		return
	}

	// Hand the refreshed token to the client and to downstream handlers.
	w.Header().Set("Authorization", "Bearer "+newAccessToken)
	r.Header.Set("Authorization", "Bearer "+newAccessToken)

	claims := &utils.Claims{ID: user.ID.Hex(), IsAdmin: user.IsAdmin}
	next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserContextKey, claims)))
}

func (g *AuthGuard) adminFault(path string, isAdmin bool) bool {
	return !isAdmin && strings.HasPrefix(strings.ToLower(path), g.adminPrefix)
}

// ClaimsFromRequest extracts the authenticated claims set by the guard.
func ClaimsFromRequest(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
	return claims, ok
}
