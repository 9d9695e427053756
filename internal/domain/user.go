package domain

// Role is the back-office role assigned to an account.
type Role string

const (
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one the storefront understands.
func (r Role) Valid() bool {
	return r == RoleSeller || r == RoleAdmin
}

// Plan is the subscription plan of an account.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// User is the identity fetched from the sales API for an authenticated
// session. Held in memory (session record) only; never persisted locally.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Plan  Plan   `json:"plan"`
}
