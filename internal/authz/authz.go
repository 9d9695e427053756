// Package authz concentrates every back-office authorization decision in
// one place so route guards cannot drift apart.
package authz

import (
	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

// Area is a guarded region of the back office.
type Area string

const (
	AreaBackOffice Area = "backoffice"
	AreaAdmin      Area = "admin"
)

// Authorize is the single access decision: sellers and admins reach the back
// office, only admins reach the admin area. Anything else is forbidden.
func Authorize(role domain.Role, area Area) error {
	switch area {
	case AreaBackOffice:
		if role.Valid() {
			return nil
		}
	case AreaAdmin:
		if role == domain.RoleAdmin {
			return nil
		}
	}
	return apperrors.Forbidden("you do not have access to this area")
}

// LandingRoute returns the screen a user lands on after login.
func LandingRoute(role domain.Role) string {
	if role == domain.RoleAdmin {
		return "/admin/dashboard"
	}
	return "/dashboard"
}
