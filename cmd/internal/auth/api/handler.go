package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/internal/auth/session"
	"github.com/DibuBaj/Backend/cmd/internal/follows"
	"github.com/DibuBaj/Backend/cmd/internal/images"
	"github.com/DibuBaj/Backend/cmd/internal/likes"
	"github.com/DibuBaj/Backend/cmd/internal/recipes"
)

// Handler wires the HTTP surface to the domain services.
type Handler struct {
	log *slog.Logger
	cfg Config

	sessions *session.Service
	accounts identity.Store
	recipes  recipes.Store
	likes    likes.Store
	follows  follows.Store
	images   images.Store

	limiter *loginLimiter
	now     func() time.Time
}

// Deps collects the handler's collaborators. All fields are required.
type Deps struct {
	Sessions *session.Service
	Accounts identity.Store
	Recipes  recipes.Store
	Likes    likes.Store
	Follows  follows.Store
	Images   images.Store
}

// NewHandler constructs the transport binding.
func NewHandler(log *slog.Logger, cfg Config, deps Deps) (*Handler, error) {
	if deps.Sessions == nil || deps.Accounts == nil || deps.Recipes == nil ||
		deps.Likes == nil || deps.Follows == nil || deps.Images == nil {
		return nil, errors.New("api: missing dependency")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		log:      log,
		cfg:      cfg,
		sessions: deps.Sessions,
		accounts: deps.Accounts,
		recipes:  deps.Recipes,
		likes:    deps.Likes,
		follows:  deps.Follows,
		images:   deps.Images,
		limiter:  newLoginLimiter(cfg.LoginIPMax, cfg.LoginIPWindow),
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Routes registers the /api/v1 surface on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}

	mux.HandleFunc("POST /api/v1/users/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/users/login", h.handleLogin)
	mux.HandleFunc("POST /api/v1/users/refresh-token", h.handleRefresh)
	mux.HandleFunc("POST /api/v1/users/logout", h.RequireAuth(h.handleLogout))
	mux.HandleFunc("POST /api/v1/users/change-password", h.RequireAuth(h.handleChangePassword))
	mux.HandleFunc("PATCH /api/v1/users/update-details", h.RequireAuth(h.handleUpdateDetails))
	mux.HandleFunc("PATCH /api/v1/users/change-avatar", h.RequireAuth(h.handleChangeAvatar))
	mux.HandleFunc("GET /api/v1/users/current-user", h.RequireAuth(h.handleCurrentUser))
	mux.HandleFunc("GET /api/v1/users/p/{username}", h.RequireAuth(h.handleProfile))
	mux.HandleFunc("DELETE /api/v1/users/d/{username}", h.RequireAuth(h.handleDeleteUser))
	mux.HandleFunc("POST /api/v1/users/follow/{username}", h.RequireAuth(h.handleFollow))
	mux.HandleFunc("POST /api/v1/users/unfollow/{username}", h.RequireAuth(h.handleUnfollow))

	mux.HandleFunc("POST /api/v1/recipes/create-recipe", h.RequireAuth(h.RequirePublisher(h.handleCreateRecipe)))
	mux.HandleFunc("GET /api/v1/recipes/r/{recipeID}", h.handleGetRecipe)
	mux.HandleFunc("GET /api/v1/recipes", h.handleListRecipes)
	mux.HandleFunc("PATCH /api/v1/recipes/update-details/{recipeID}", h.RequireAuth(h.handleUpdateRecipeDetails))
	mux.HandleFunc("PATCH /api/v1/recipes/update-image/{recipeID}", h.RequireAuth(h.handleUpdateRecipeImage))
	mux.HandleFunc("PATCH /api/v1/recipes/update-lists/{recipeID}", h.RequireAuth(h.handleUpdateRecipeLists))
	mux.HandleFunc("PATCH /api/v1/recipes/delete-lists/{recipeID}", h.RequireAuth(h.handleDeleteRecipeListEntry))
	mux.HandleFunc("DELETE /api/v1/recipes/d/{recipeID}", h.RequireAuth(h.handleDeleteRecipe))

	mux.HandleFunc("POST /api/v1/likes/toggleLike/{recipeID}", h.RequireAuth(h.handleToggleLike))
	mux.HandleFunc("GET /api/v1/likes/liked-recipes", h.RequireAuth(h.handleLikedRecipes))
}
