// internal/app/system/authz/authz.go
//
// Package authz answers "may this caller do that" questions. Every rule is a
// pure function of the caller and the resource, so handlers decide with one
// call and tests need no database.
package authz

import (
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller and a found flag. A caller with a zero ObjectID
// is treated as absent so ok=true always means a usable identity.
func UserCtx(r *http.Request) (auth.User, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ID.IsZero() {
		return auth.User{}, false
	}
	return *u, true
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool {
	u, ok := UserCtx(r)
	return ok && u.IsAdmin()
}

// CanModify is the ownership rule shared by every resource: the owner or
// any admin may change it.
func CanModify(actor auth.User, ownerID primitive.ObjectID) bool {
	if actor.IsAdmin() {
		return true
	}
	return !actor.ID.IsZero() && actor.ID == ownerID
}

// CanCreateProperty reports whether actor may list new properties.
func CanCreateProperty(actor auth.User) bool {
	return actor.Role == models.RoleAgent || actor.Role == models.RoleAdmin
}

// CanManageProperty reports whether actor may update or delete p.
func CanManageProperty(actor auth.User, p models.Property) bool {
	return CanModify(actor, p.AgentID)
}

// CanFeatureProperty reports whether actor may promote listings to the
// landing page.
func CanFeatureProperty(actor auth.User) bool {
	return actor.Role == models.RoleAdmin
}

// CanViewAppointment allows the booking client, the assigned agent, and admins.
func CanViewAppointment(actor auth.User, a models.Appointment) bool {
	return CanModify(actor, a.ClientID) || CanModify(actor, a.AgentID)
}

// CanDeleteAppointment follows the same rule as viewing.
func CanDeleteAppointment(actor auth.User, a models.Appointment) bool {
	return CanViewAppointment(actor, a)
}

// CanUpdateAppointmentStatus allows the assigned agent and admins. A client
// cannot change status even on their own booking.
func CanUpdateAppointmentStatus(actor auth.User, a models.Appointment) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleAgent:
		return CanModify(actor, a.AgentID)
	}
	return false
}

// CanManageImages reports whether actor may upload or delete listing images.
func CanManageImages(actor auth.User) bool {
	return CanCreateProperty(actor)
}
