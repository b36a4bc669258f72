package api

import (
	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/internal/recipes"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type updateDetailsRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

type updateRecipeDetailsRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// listEditRequest edits the ingredient/instruction lists. A nil Index
// appends; a set Index overwrites (or deletes) that entry.
type listEditRequest struct {
	Ingredient  *string `json:"ingredient"`
	Instruction *string `json:"instruction"`
	Index       *int    `json:"index"`
}

type sessionPayload struct {
	User         identity.Profile `json:"user"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}

type refreshPayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type profilePayload struct {
	identity.Profile
	Followers int `json:"followers"`
	Following int `json:"following"`
}

type recipePayload struct {
	recipes.Recipe
	Likes int `json:"likes"`
}

type likedRecipePayload struct {
	RecipeID    string `json:"recipeId"`
	RecipeName  string `json:"recipeName"`
	RecipeOwner string `json:"recipeOwner"`
}
