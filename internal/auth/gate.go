package auth

import "github.com/safar/shophub/internal/models"

// Decision classifies an access check. The navigation or HTTP side effect
// that consumes it is kept separate so the check stays a pure function.
type Decision int

const (
	DecisionUnauthenticated Decision = iota
	DecisionForbidden
	DecisionOK
)

// CheckAccess gates a view on the caller's role. A nil user is
// unauthenticated; a user whose role is not in allowed is forbidden.
func CheckAccess(user *models.User, allowed []models.Role) Decision {
	if user == nil {
		return DecisionUnauthenticated
	}
	for _, role := range allowed {
		if user.Role == role {
			return DecisionOK
		}
	}
	return DecisionForbidden
}
