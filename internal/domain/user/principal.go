package user

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RolePlayer  = "player"
)

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   string
	// TeamID is set for team managers and links the principal to the
	// team they report results for.
	TeamID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}
