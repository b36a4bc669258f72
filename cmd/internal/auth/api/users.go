package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/DibuBaj/Backend/cmd/identity"
)

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	fullName := strings.TrimSpace(r.FormValue("fullName"))
	password := r.FormValue("password")
	if username == "" || email == "" || fullName == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username, email, fullName and password are required")
		return
	}

	role := identity.RoleRegular
	if v := strings.TrimSpace(r.FormValue("role")); v != "" {
		role = identity.Role(v)
		// Admin accounts are provisioned out of band, never via register.
		if !role.SelfAssignable() {
			writeError(w, http.StatusBadRequest, "invalid role")
			return
		}
	}

	img, ok := h.uploadFormImage(w, r, "avatar")
	if !ok {
		return
	}

	acct, err := h.accounts.CreateAccount(r.Context(), identity.CreateAccountInput{
		Username:  username,
		Email:     email,
		FullName:  fullName,
		AvatarURL: img.URL,
		AvatarID:  img.ID,
		Password:  password,
		Role:      role,
		Now:       h.now(),
	})
	if err != nil {
		h.deleteImage(r, img.ID)
		h.writeDomainError(w, "register failed", err)
		return
	}

	h.log.Info("account registered", "account_id", acct.ID, "username", acct.Username)
	writeData(w, http.StatusCreated, acct.Sanitized(), "User registered successfully.")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identifier := strings.TrimSpace(req.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username or email and password are required")
		return
	}

	now := h.now()
	ip := clientIP(r, h.cfg.TrustProxy)
	if blocked, retryAfter := h.limiter.blocked(ip, now); blocked {
		if retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds())+1, 10))
		}
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	acct, issued, err := h.sessions.Login(r.Context(), now, identifier, req.Password)
	if err != nil {
		h.limiter.fail(ip, now)
		h.writeDomainError(w, "login failed", err)
		return
	}
	h.limiter.success(ip)

	h.setSessionCookies(w, issued)
	writeData(w, http.StatusOK, sessionPayload{
		User:         acct.Sanitized(),
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
	}, "User logged in successfully.")
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	raw := refreshTokenFrom(r, req.RefreshToken)
	acct, issued, err := h.sessions.Refresh(r.Context(), h.now(), raw)
	if err != nil {
		h.writeDomainError(w, "refresh failed", err)
		return
	}

	h.setSessionCookies(w, issued)
	h.log.Debug("session rotated", "account_id", acct.ID)
	writeData(w, http.StatusOK, refreshPayload{
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
	}, "Access token refreshed.")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	if err := h.sessions.Logout(r.Context(), h.now(), acct.ID); err != nil {
		h.writeDomainError(w, "logout failed", err)
		return
	}
	h.clearSessionCookies(w)
	writeData(w, http.StatusOK, nil, "User logged out successfully.")
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "oldPassword and newPassword are required")
		return
	}

	// The context only carries the sanitized profile; load the row for
	// the stored hash.
	full, err := h.accounts.AccountByID(r.Context(), acct.ID)
	if err != nil {
		h.writeDomainError(w, "change password failed", err)
		return
	}
	ok, err := identity.VerifyPassword(req.OldPassword, full.PasswordHash)
	if err != nil {
		h.writeDomainError(w, "change password failed", err)
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "old password is incorrect")
		return
	}

	hash, err := identity.HashPassword(req.NewPassword)
	if err != nil {
		h.writeDomainError(w, "change password failed", err)
		return
	}
	if err := h.accounts.UpdatePasswordHash(r.Context(), acct.ID, hash, h.now()); err != nil {
		h.writeDomainError(w, "change password failed", err)
		return
	}
	writeData(w, http.StatusOK, nil, "Password changed successfully.")
}

func (h *Handler) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())

	var req updateDetailsRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == nil && req.Email == nil {
		writeError(w, http.StatusBadRequest, "at least one field is required")
		return
	}

	updated, err := h.accounts.UpdateDetails(r.Context(), identity.UpdateDetailsInput{
		AccountID: acct.ID,
		FullName:  req.FullName,
		Email:     req.Email,
		Now:       h.now(),
	})
	if err != nil {
		h.writeDomainError(w, "update details failed", err)
		return
	}
	writeData(w, http.StatusOK, updated.Sanitized(), "Account details updated successfully.")
}

func (h *Handler) handleChangeAvatar(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())

	if !h.parseUpload(w, r) {
		return
	}
	img, ok := h.uploadFormImage(w, r, "avatar")
	if !ok {
		return
	}

	prior, err := h.accounts.AccountByID(r.Context(), acct.ID)
	if err != nil {
		h.deleteImage(r, img.ID)
		h.writeDomainError(w, "change avatar failed", err)
		return
	}

	updated, err := h.accounts.UpdateAvatar(r.Context(), acct.ID, img.URL, img.ID, h.now())
	if err != nil {
		h.deleteImage(r, img.ID)
		h.writeDomainError(w, "change avatar failed", err)
		return
	}
	h.deleteImage(r, prior.AvatarID)
	writeData(w, http.StatusOK, updated.Sanitized(), "Avatar updated successfully.")
}

func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	writeData(w, http.StatusOK, acct, "Current user fetched successfully.")
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PathValue("username"))
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	target, err := h.accounts.AccountByIdentifier(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, "profile lookup failed", err)
		return
	}

	followers, following, err := h.follows.Counts(r.Context(), target.ID)
	if err != nil {
		h.writeDomainError(w, "profile counts failed", err)
		return
	}

	writeData(w, http.StatusOK, profilePayload{
		Profile:   target.Sanitized(),
		Followers: followers,
		Following: following,
	}, "Profile fetched successfully.")
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	requester, _ := AccountFrom(r.Context())

	username := strings.TrimSpace(r.PathValue("username"))
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	target, err := h.accounts.AccountByIdentifier(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, "delete user lookup failed", err)
		return
	}
	if target.ID != requester.ID && requester.Role != identity.RoleAdmin {
		writeError(w, http.StatusForbidden, "cannot delete another user")
		return
	}

	// Tear down owned content before the account row so nothing dangles.
	owned, err := h.recipes.DeleteByOwner(r.Context(), target.ID)
	if err != nil {
		h.writeDomainError(w, "delete user recipes failed", err)
		return
	}
	for _, rec := range owned {
		h.deleteImage(r, rec.ImageID)
		if err := h.likes.PurgeRecipe(r.Context(), rec.ID); err != nil {
			h.log.Warn("like purge failed", "recipe_id", rec.ID, "err", err)
		}
	}
	if err := h.likes.PurgeAccount(r.Context(), target.ID); err != nil {
		h.log.Warn("like purge failed", "account_id", target.ID, "err", err)
	}
	if err := h.follows.PurgeAccount(r.Context(), target.ID); err != nil {
		h.log.Warn("follow purge failed", "account_id", target.ID, "err", err)
	}
	h.deleteImage(r, target.AvatarID)

	if err := h.accounts.DeleteAccount(r.Context(), target.ID); err != nil {
		h.writeDomainError(w, "delete user failed", err)
		return
	}

	if target.ID == requester.ID {
		h.clearSessionCookies(w)
	}
	h.log.Info("account deleted", "account_id", target.ID, "by", requester.ID)
	writeData(w, http.StatusOK, nil, "User deleted successfully.")
}

func (h *Handler) handleFollow(w http.ResponseWriter, r *http.Request) {
	requester, _ := AccountFrom(r.Context())

	target, err := h.accounts.AccountByIdentifier(r.Context(), strings.TrimSpace(r.PathValue("username")))
	if err != nil {
		h.writeDomainError(w, "follow lookup failed", err)
		return
	}
	if err := h.follows.Follow(r.Context(), requester.ID, target.ID, h.now()); err != nil {
		h.writeDomainError(w, "follow failed", err)
		return
	}
	writeData(w, http.StatusOK, nil, "Followed successfully.")
}

func (h *Handler) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	requester, _ := AccountFrom(r.Context())

	target, err := h.accounts.AccountByIdentifier(r.Context(), strings.TrimSpace(r.PathValue("username")))
	if err != nil {
		h.writeDomainError(w, "unfollow lookup failed", err)
		return
	}
	if err := h.follows.Unfollow(r.Context(), requester.ID, target.ID); err != nil {
		h.writeDomainError(w, "unfollow failed", err)
		return
	}
	writeData(w, http.StatusOK, nil, "Unfollowed successfully.")
}
