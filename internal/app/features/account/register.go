// internal/app/features/account/register.go
package account

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/estatehub/internal/app/store/users"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister creates an account and signs the caller in.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	role := models.RoleClient
	if in.Role != "" {
		role, _ = models.ParseRole(in.Role)
	}
	if role == models.RoleAdmin && !h.AllowAdminSignup {
		respond.Forbidden(w, "Admin accounts cannot be created through registration")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register")
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.Create(ctx, models.User{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Role:  role,
	}, in.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "User already exists with this email")
			return
		}
		respond.ServerError(w, h.Log, "register user", err)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		respond.ServerError(w, h.Log, "issue token", err)
		return
	}

	h.recordLogin(ctx, r, u.ID, models.LoginMethodRegister)
	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()), zap.String("role", string(u.Role)))
	respond.Created(w, respond.M{
		"token": token,
		"user":  toUserJSON(&u),
	})
}
