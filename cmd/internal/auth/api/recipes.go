package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/DibuBaj/Backend/cmd/internal/recipes"
)

func (h *Handler) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())

	if !h.parseUpload(w, r) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	category := recipes.Category(strings.TrimSpace(r.FormValue("category")))
	if name == "" || description == "" || category == "" {
		writeError(w, http.StatusBadRequest, "name, description and category are required")
		return
	}
	if !recipes.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	ingredients, ok := formStringList(w, r, "ingredients")
	if !ok {
		return
	}
	instructions, ok := formStringList(w, r, "instructions")
	if !ok {
		return
	}

	img, ok := h.uploadFormImage(w, r, "picture")
	if !ok {
		return
	}

	rec, err := h.recipes.Create(r.Context(), recipes.CreateInput{
		OwnerID:      acct.ID,
		Name:         name,
		Description:  description,
		Category:     category,
		Ingredients:  ingredients,
		Instructions: instructions,
		ImageURL:     img.URL,
		ImageID:      img.ID,
		Now:          h.now(),
	})
	if err != nil {
		h.deleteImage(r, img.ID)
		h.writeDomainError(w, "create recipe failed", err)
		return
	}

	h.log.Info("recipe created", "recipe_id", rec.ID, "owner_id", acct.ID)
	writeData(w, http.StatusCreated, rec, "Recipe created successfully.")
}

func (h *Handler) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("recipeID"))
	rec, err := h.recipes.ByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "get recipe failed", err)
		return
	}
	count, err := h.likes.CountForRecipe(r.Context(), rec.ID)
	if err != nil {
		h.writeDomainError(w, "get recipe likes failed", err)
		return
	}
	writeData(w, http.StatusOK, recipePayload{Recipe: rec, Likes: count}, "Recipe fetched successfully.")
}

func (h *Handler) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	var f recipes.Filter
	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		c := recipes.Category(v)
		if !recipes.ValidCategory(c) {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}
		f.Category = c
	}
	f.OwnerID = strings.TrimSpace(r.URL.Query().Get("owner"))

	list, err := h.recipes.List(r.Context(), f)
	if err != nil {
		h.writeDomainError(w, "list recipes failed", err)
		return
	}
	writeData(w, http.StatusOK, list, "Recipes fetched successfully.")
}

func (h *Handler) handleUpdateRecipeDetails(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	id := strings.TrimSpace(r.PathValue("recipeID"))

	var req updateRecipeDetailsRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == nil && req.Description == nil && req.Category == nil {
		writeError(w, http.StatusBadRequest, "at least one field is required")
		return
	}

	in := recipes.UpdateDetailsInput{
		ID:          id,
		OwnerID:     acct.ID,
		Name:        req.Name,
		Description: req.Description,
		Now:         h.now(),
	}
	if req.Category != nil {
		c := recipes.Category(strings.TrimSpace(*req.Category))
		if !recipes.ValidCategory(c) {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}
		in.Category = &c
	}

	rec, err := h.recipes.UpdateDetails(r.Context(), in)
	if err != nil {
		h.writeDomainError(w, "update recipe failed", err)
		return
	}
	writeData(w, http.StatusOK, rec, "Recipe details updated successfully.")
}

func (h *Handler) handleUpdateRecipeImage(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	id := strings.TrimSpace(r.PathValue("recipeID"))

	if !h.parseUpload(w, r) {
		return
	}
	img, ok := h.uploadFormImage(w, r, "picture")
	if !ok {
		return
	}

	rec, oldImageID, err := h.recipes.SetImage(r.Context(), id, acct.ID, img.URL, img.ID, h.now())
	if err != nil {
		h.deleteImage(r, img.ID)
		h.writeDomainError(w, "update recipe image failed", err)
		return
	}
	h.deleteImage(r, oldImageID)
	writeData(w, http.StatusOK, rec, "Recipe image updated successfully.")
}

// handleUpdateRecipeLists appends or overwrites ingredient/instruction
// entries. Without an index the provided values are appended; with one they
// replace the entry at that position.
func (h *Handler) handleUpdateRecipeLists(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	id := strings.TrimSpace(r.PathValue("recipeID"))

	var req listEditRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Ingredient == nil && req.Instruction == nil {
		writeError(w, http.StatusBadRequest, "ingredient or instruction is required")
		return
	}
	if req.Index != nil && *req.Index < 0 {
		writeError(w, http.StatusBadRequest, "index must not be negative")
		return
	}

	rec, ok := h.ownedRecipe(w, r, id, acct.ID)
	if !ok {
		return
	}

	ingredients := append([]string(nil), rec.Ingredients...)
	instructions := append([]string(nil), rec.Instructions...)

	if req.Index == nil {
		if req.Ingredient != nil {
			ingredients = append(ingredients, *req.Ingredient)
		}
		if req.Instruction != nil {
			instructions = append(instructions, *req.Instruction)
		}
	} else {
		i := *req.Index
		if req.Ingredient != nil {
			if i >= len(ingredients) {
				writeError(w, http.StatusBadRequest, "ingredient index out of range")
				return
			}
			ingredients[i] = *req.Ingredient
		}
		if req.Instruction != nil {
			if i >= len(instructions) {
				writeError(w, http.StatusBadRequest, "instruction index out of range")
				return
			}
			instructions[i] = *req.Instruction
		}
	}

	updated, err := h.recipes.SetLists(r.Context(), id, acct.ID, ingredients, instructions, h.now())
	if err != nil {
		h.writeDomainError(w, "update recipe lists failed", err)
		return
	}
	writeData(w, http.StatusOK, updated, "Recipe updated successfully.")
}

// handleDeleteRecipeListEntry removes the entry at the given index from the
// list(s) named in the body.
func (h *Handler) handleDeleteRecipeListEntry(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	id := strings.TrimSpace(r.PathValue("recipeID"))

	var req listEditRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Ingredient == nil && req.Instruction == nil {
		writeError(w, http.StatusBadRequest, "ingredient or instruction is required")
		return
	}
	if req.Index == nil || *req.Index < 0 {
		writeError(w, http.StatusBadRequest, "a non-negative index is required")
		return
	}

	rec, ok := h.ownedRecipe(w, r, id, acct.ID)
	if !ok {
		return
	}

	i := *req.Index
	ingredients := append([]string(nil), rec.Ingredients...)
	instructions := append([]string(nil), rec.Instructions...)

	if req.Ingredient != nil {
		if i >= len(ingredients) {
			writeError(w, http.StatusBadRequest, "ingredient index out of range")
			return
		}
		ingredients = append(ingredients[:i], ingredients[i+1:]...)
	}
	if req.Instruction != nil {
		if i >= len(instructions) {
			writeError(w, http.StatusBadRequest, "instruction index out of range")
			return
		}
		instructions = append(instructions[:i], instructions[i+1:]...)
	}

	updated, err := h.recipes.SetLists(r.Context(), id, acct.ID, ingredients, instructions, h.now())
	if err != nil {
		h.writeDomainError(w, "delete recipe list entry failed", err)
		return
	}
	writeData(w, http.StatusOK, updated, "Recipe updated successfully.")
}

func (h *Handler) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	id := strings.TrimSpace(r.PathValue("recipeID"))

	rec, err := h.recipes.Delete(r.Context(), id, acct.ID)
	if err != nil {
		h.writeDomainError(w, "delete recipe failed", err)
		return
	}

	h.deleteImage(r, rec.ImageID)
	if err := h.likes.PurgeRecipe(r.Context(), rec.ID); err != nil {
		h.log.Warn("like purge failed", "recipe_id", rec.ID, "err", err)
	}
	h.log.Info("recipe deleted", "recipe_id", rec.ID, "owner_id", acct.ID)
	writeData(w, http.StatusOK, nil, "Recipe deleted successfully.")
}

// ownedRecipe loads a recipe and enforces ownership. A foreign recipe reads
// as not-found so the endpoint does not reveal its existence.
func (h *Handler) ownedRecipe(w http.ResponseWriter, r *http.Request, id, ownerID string) (recipes.Recipe, bool) {
	rec, err := h.recipes.ByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "recipe lookup failed", err)
		return recipes.Recipe{}, false
	}
	if rec.OwnerID != ownerID {
		writeError(w, http.StatusNotFound, "resource not found")
		return recipes.Recipe{}, false
	}
	return rec, true
}

// formStringList decodes a form field holding a JSON array of strings.
// Writes the error response and reports false when the field is missing,
// malformed or empty.
func formStringList(w http.ResponseWriter, r *http.Request, field string) ([]string, bool) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		writeError(w, http.StatusBadRequest, field+" are required")
		return nil, false
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		writeError(w, http.StatusBadRequest, field+" must be a JSON array of strings")
		return nil, false
	}
	if len(list) == 0 {
		writeError(w, http.StatusBadRequest, field+" must not be empty")
		return nil, false
	}
	return list, true
}
