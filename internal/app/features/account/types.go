// internal/app/features/account/types.go
package account

import "github.com/dalemusser/estatehub/internal/domain/models"

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
	Phone    string `json:"phone" validate:"required,phone" label:"Phone number"`
	Role     string `json:"role" validate:"omitempty,role" label:"Role"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// detailsInput is a partial update; absent fields stay as they are.
type detailsInput struct {
	Name         *string            `json:"name" validate:"omitempty,min=2,max=50" label:"Name"`
	Email        *string            `json:"email" validate:"omitempty,email" label:"Email"`
	Phone        *string            `json:"phone" validate:"omitempty,phone" label:"Phone number"`
	Bio          *string            `json:"bio" validate:"omitempty,max=500" label:"Bio"`
	Avatar       *string            `json:"avatar" validate:"omitempty,max=500" label:"Avatar"`
	AgentDetails *agentDetailsInput `json:"agentDetails" validate:"omitempty" label:"Agent details"`
}

type agentDetailsInput struct {
	Specialization  []string `json:"specialization" validate:"max=10,dive,max=50" label:"Specialization"`
	ExperienceYears int      `json:"experienceYears" validate:"gte=0,lte=80" label:"Experience"`
	Languages       []string `json:"languages" validate:"max=10,dive,max=50" label:"Languages"`
}

type passwordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required" label:"Current password"`
	NewPassword     string `json:"newPassword" validate:"required,min=6" label:"New password"`
}

// userJSON is the public shape of an account.
type userJSON struct {
	ID              string               `json:"_id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone,omitempty"`
	Role            models.Role          `json:"role"`
	Avatar          string               `json:"avatar,omitempty"`
	Bio             string               `json:"bio,omitempty"`
	AgentDetails    *models.AgentDetails `json:"agentDetails,omitempty"`
	SavedProperties []string             `json:"savedProperties"`
	IsActive        bool                 `json:"isActive"`
}

func toUserJSON(u *models.User) userJSON {
	saved := make([]string, len(u.SavedProperties))
	for i, id := range u.SavedProperties {
		saved[i] = id.Hex()
	}
	return userJSON{
		ID:              u.ID.Hex(),
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Role:            u.Role,
		Avatar:          u.Avatar,
		Bio:             u.Bio,
		AgentDetails:    u.AgentDetails,
		SavedProperties: saved,
		IsActive:        u.IsActive,
	}
}
