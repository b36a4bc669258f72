package identity

import "time"

// Role is the account's authorization tier.
type Role string

const (
	RoleRegular Role = "regular"
	RoleChef    Role = "chef"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleRegular, RoleChef, RoleAdmin:
		return true
	}
	return false
}

// CanPublish reports whether the role may create and manage recipes.
func (r Role) CanPublish() bool { return r == RoleChef || r == RoleAdmin }

// SelfAssignable reports whether a client may pick r at registration.
// Admin is never self-assignable; it is granted out of band.
func (r Role) SelfAssignable() bool { return r == RoleRegular || r == RoleChef }

// Account is RecipeHub's canonical security principal.
//
// IMPORTANT:
// - PasswordHash and RefreshTokenHash never leave the server. Handlers must
//   go through Sanitized before writing an account to a response.
// - RefreshTokenHash is the digest of the single currently-valid refresh
//   token; nil means no live session (logged out).
type Account struct {
	ID           string
	Username     string
	UsernameNorm string
	Email        string
	EmailNorm    string

	FullName  string
	AvatarURL string
	AvatarID  string
	Role      Role

	PasswordHash     string
	RefreshTokenHash *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the outward-safe projection of an Account.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sanitized strips credential material for outward exposure.
func (a Account) Sanitized() Profile {
	return Profile{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FullName:  a.FullName,
		AvatarURL: a.AvatarURL,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
