// internal/app/features/account/me.go
package account

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/estatehub/internal/app/store/users"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeMe returns the caller's profile.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load profile")
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "User not found")
			return
		}
		respond.ServerError(w, h.Log, "load profile", err)
		return
	}
	respond.OK(w, respond.M{"user": toUserJSON(u)})
}

// HandleUpdateDetails applies a partial profile update. Agents may also
// edit their professional details; rating, sales, and verification are
// not self-service.
func (h *Handler) HandleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	var in detailsInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update details")
	defer cancel()

	users := userstore.New(h.DB)
	upd := userstore.DetailsUpdate{
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Bio:    in.Bio,
		Avatar: in.Avatar,
	}

	if in.AgentDetails != nil {
		if actor.Role != models.RoleAgent {
			respond.Forbidden(w, "Only agents have agent details")
			return
		}
		cur, err := users.GetByID(ctx, actor.ID)
		if err != nil {
			respond.ServerError(w, h.Log, "load agent for update", err)
			return
		}
		ad := models.AgentDetails{}
		if cur.AgentDetails != nil {
			ad = *cur.AgentDetails
		}
		ad.Specialization = in.AgentDetails.Specialization
		ad.ExperienceYears = in.AgentDetails.ExperienceYears
		ad.Languages = in.AgentDetails.Languages
		upd.AgentDetails = &ad
	}

	u, err := users.UpdateDetails(ctx, actor.ID, upd)
	switch {
	case errors.Is(err, userstore.ErrDuplicateEmail):
		respond.BadRequest(w, "Email is already in use")
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		respond.NotFound(w, "User not found")
		return
	case err != nil:
		respond.ServerError(w, h.Log, "update details", err)
		return
	}
	respond.OK(w, respond.M{"user": toUserJSON(u)})
}

// HandleUpdatePassword changes the caller's password after checking the
// current one, and returns a new token.
func (h *Handler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	var in passwordInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update password")
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "User not found")
			return
		}
		respond.ServerError(w, h.Log, "load user for password change", err)
		return
	}
	if !userstore.CheckPassword(u, in.CurrentPassword) {
		respond.Unauthorized(w, "Current password is incorrect")
		return
	}
	if err := users.SetPassword(ctx, u.ID, in.NewPassword); err != nil {
		respond.ServerError(w, h.Log, "set password", err)
		return
	}

	token, err := h.Tokens.Issue(*u)
	if err != nil {
		respond.ServerError(w, h.Log, "issue token", err)
		return
	}
	respond.OK(w, respond.M{
		"message": "Password updated successfully",
		"token":   token,
	})
}
