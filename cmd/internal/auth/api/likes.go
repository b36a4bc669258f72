package api

import (
	"net/http"
	"strings"

	"github.com/DibuBaj/Backend/cmd/identity"
)

func (h *Handler) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	id := strings.TrimSpace(r.PathValue("recipeID"))

	// The like row references the recipe; a vanished recipe is a 404, not
	// a silent insert.
	rec, err := h.recipes.ByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "toggle like lookup failed", err)
		return
	}

	liked, err := h.likes.Toggle(r.Context(), rec.ID, acct.ID, h.now())
	if err != nil {
		h.writeDomainError(w, "toggle like failed", err)
		return
	}

	msg := "Recipe unliked successfully."
	if liked {
		msg = "Recipe liked successfully."
	}
	writeData(w, http.StatusOK, map[string]bool{"liked": liked}, msg)
}

func (h *Handler) handleLikedRecipes(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())

	ids, err := h.likes.LikedRecipeIDs(r.Context(), acct.ID)
	if err != nil {
		h.writeDomainError(w, "liked recipes failed", err)
		return
	}

	out := make([]likedRecipePayload, 0, len(ids))
	for _, id := range ids {
		rec, err := h.recipes.ByID(r.Context(), id)
		if err != nil {
			if identity.IsNotFound(err) {
				continue
			}
			h.writeDomainError(w, "liked recipes failed", err)
			return
		}
		ownerName := ""
		if owner, err := h.accounts.AccountByID(r.Context(), rec.OwnerID); err == nil {
			ownerName = owner.FullName
		}
		out = append(out, likedRecipePayload{
			RecipeID:    rec.ID,
			RecipeName:  rec.Name,
			RecipeOwner: ownerName,
		})
	}

	writeData(w, http.StatusOK, out, "Liked recipes fetched successfully.")
}
