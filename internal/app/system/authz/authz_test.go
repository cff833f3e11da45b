package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func user(role models.Role) auth.User {
	return auth.User{ID: primitive.NewObjectID(), Role: role}
}

func TestCanModify(t *testing.T) {
	owner := user(models.RoleAgent)
	other := user(models.RoleAgent)
	admin := user(models.RoleAdmin)
	client := user(models.RoleClient)

	tests := []struct {
		name  string
		actor auth.User
		want  bool
	}{
		{"owner", owner, true},
		{"other agent", other, false},
		{"admin", admin, true},
		{"client", client, false},
		{"zero id", auth.User{Role: models.RoleAgent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanModify(tt.actor, owner.ID); got != tt.want {
				t.Errorf("CanModify = %v, want %v", got, tt.want)
			}
		})
	}

	if authz.CanModify(auth.User{}, primitive.NilObjectID) {
		t.Error("zero actor must not own zero id")
	}
}

func TestCanManageProperty(t *testing.T) {
	agent := user(models.RoleAgent)
	p := models.Property{ID: primitive.NewObjectID(), AgentID: agent.ID}

	if !authz.CanManageProperty(agent, p) {
		t.Error("owning agent should manage property")
	}
	if authz.CanManageProperty(user(models.RoleAgent), p) {
		t.Error("other agent must not manage property")
	}
	if !authz.CanManageProperty(user(models.RoleAdmin), p) {
		t.Error("admin should manage any property")
	}
}

func TestCanCreateProperty(t *testing.T) {
	if authz.CanCreateProperty(user(models.RoleClient)) {
		t.Error("client must not create properties")
	}
	if !authz.CanCreateProperty(user(models.RoleAgent)) || !authz.CanCreateProperty(user(models.RoleAdmin)) {
		t.Error("agent and admin should create properties")
	}
}

func TestAppointmentRules(t *testing.T) {
	client := user(models.RoleClient)
	agent := user(models.RoleAgent)
	admin := user(models.RoleAdmin)
	stranger := user(models.RoleClient)
	otherAgent := user(models.RoleAgent)
	appt := models.Appointment{ID: primitive.NewObjectID(), ClientID: client.ID, AgentID: agent.ID}

	tests := []struct {
		name         string
		actor        auth.User
		view, update bool
	}{
		{"client", client, true, false},
		{"assigned agent", agent, true, true},
		{"admin", admin, true, true},
		{"stranger", stranger, false, false},
		{"other agent", otherAgent, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanViewAppointment(tt.actor, appt); got != tt.view {
				t.Errorf("CanViewAppointment = %v, want %v", got, tt.view)
			}
			if got := authz.CanDeleteAppointment(tt.actor, appt); got != tt.view {
				t.Errorf("CanDeleteAppointment = %v, want %v", got, tt.view)
			}
			if got := authz.CanUpdateAppointmentStatus(tt.actor, appt); got != tt.update {
				t.Errorf("CanUpdateAppointmentStatus = %v, want %v", got, tt.update)
			}
		})
	}
}

func TestUserCtxAndRoles(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := authz.UserCtx(req); ok {
		t.Error("expected no user")
	}
	if authz.IsAdmin(req) {
		t.Error("anonymous is not admin")
	}

	u := user(models.RoleAdmin)
	req = auth.WithTestUser(req, &u)
	if !authz.IsAdmin(req) {
		t.Error("expected admin")
	}
	if !authz.HasAnyRole(req, models.RoleAgent, models.RoleAdmin) {
		t.Error("HasAnyRole should match admin")
	}
	if role, ok := authz.Role(req); !ok || role != models.RoleAdmin {
		t.Errorf("Role = %q, %v", role, ok)
	}
}

func TestCanFeatureProperty(t *testing.T) {
	if authz.CanFeatureProperty(user(models.RoleAgent)) {
		t.Error("agents must not feature listings")
	}
	if !authz.CanFeatureProperty(user(models.RoleAdmin)) {
		t.Error("admins may feature listings")
	}
}
