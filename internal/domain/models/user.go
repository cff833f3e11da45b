// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvatar is stored on users who never uploaded one.
const DefaultAvatar = "default-avatar.png"

// AgentDetails is the professional profile carried by agents.
type AgentDetails struct {
	Specialization  []string `bson:"specialization,omitempty" json:"specialization,omitempty"`
	ExperienceYears int      `bson:"experience_years" json:"experienceYears"`
	PropertiesSold  int      `bson:"properties_sold" json:"propertiesSold"`
	Rating          float64  `bson:"rating" json:"rating"`
	Languages       []string `bson:"languages,omitempty" json:"languages,omitempty"`
	IsVerified      bool     `bson:"is_verified" json:"isVerified"`
}

// User is a registered account: client, agent, or admin.
//
// SavedProperties holds weak references to properties; entries may point
// at properties that were since deleted and are filtered on read.
type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name            string               `bson:"name" json:"name"`
	NameCI          string               `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email           string               `bson:"email" json:"email"`
	PasswordHash    string               `bson:"password_hash" json:"-"`
	Phone           string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Role            Role                 `bson:"role" json:"role"`
	Avatar          string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio             string               `bson:"bio,omitempty" json:"bio,omitempty"`
	AgentDetails    *AgentDetails        `bson:"agent_details,omitempty" json:"agentDetails,omitempty"`
	SavedProperties []primitive.ObjectID `bson:"saved_properties" json:"savedProperties"`
	IsActive        bool                 `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// AgentSummary is the subset of an agent's profile embedded in property
// and appointment responses.
type AgentSummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name,omitempty"`
	Email        string             `bson:"email" json:"email,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AgentDetails *AgentDetails      `bson:"agent_details,omitempty" json:"agentDetails,omitempty"`
}

// Summary returns the embeddable view of u.
func (u User) Summary() AgentSummary {
	return AgentSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Avatar:       u.Avatar,
		Bio:          u.Bio,
		AgentDetails: u.AgentDetails,
	}
}
