package models_test

import (
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPropertyAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		year int
		want string
	}{
		{0, ""},
		{2025, "Brand New"},
		{2026, "Brand New"},
		{2024, "1 year old"},
		{1990, "35 years old"},
	}
	for _, tt := range tests {
		p := models.Property{Details: models.Details{YearBuilt: tt.year}}
		if got := p.Age(now); got != tt.want {
			t.Errorf("Age(yearBuilt=%d) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

func TestNewPropertyView(t *testing.T) {
	agentID := primitive.NewObjectID()
	p := models.Property{AgentID: agentID}

	v := models.NewPropertyView(p, nil, time.Now())
	if v.Agent.ID != agentID {
		t.Errorf("agent id = %v, want %v", v.Agent.ID, agentID)
	}
	if v.Features == nil || v.Images == nil {
		t.Error("nil slices should become empty")
	}

	v = models.NewPropertyView(p, &models.AgentSummary{ID: agentID, Name: "Ada"}, time.Now())
	if v.Agent.Name != "Ada" {
		t.Errorf("agent name = %q", v.Agent.Name)
	}
}

func TestEnums(t *testing.T) {
	if !models.TypeOfficeSpace.Valid() || models.PropertyType("Castle").Valid() {
		t.Error("PropertyType.Valid")
	}
	if !models.StatusForRent.Valid() || models.ListingStatus("for rent").Valid() {
		t.Error("ListingStatus.Valid is case sensitive")
	}
	if !models.AppointmentInspection.Valid() || models.AppointmentType("party").Valid() {
		t.Error("AppointmentType.Valid")
	}

	terminal := map[models.AppointmentStatus]bool{
		models.AppointmentPending:   false,
		models.AppointmentConfirmed: false,
		models.AppointmentCancelled: true,
		models.AppointmentCompleted: true,
	}
	for s, want := range terminal {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
		if s.IsTerminal() != want {
			t.Errorf("%q IsTerminal = %v, want %v", s, !want, want)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want models.Role
		ok   bool
	}{
		{"agent", models.RoleAgent, true},
		{" Admin ", models.RoleAdmin, true},
		{"CLIENT", models.RoleClient, true},
		{"superadmin", "superadmin", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := models.ParseRole(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
