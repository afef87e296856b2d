package contextkeys

// Custom key type to avoid collisions with other context values.
type contextKey string

const (
	// UserKey holds the authenticated *models.User resolved by the auth middleware.
	UserKey = contextKey("currentUser")
	// UserIDKey holds the authenticated user's id as a string.
	UserIDKey = contextKey("userID")
	// RoleKey holds the authenticated user's role as a string.
	RoleKey = contextKey("role")
)

// String returns the gin context key form.
func (k contextKey) String() string {
	return string(k)
}
