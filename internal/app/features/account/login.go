// internal/app/features/account/login.go
package account

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/estatehub/internal/app/store/users"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleLogin verifies a credential and returns a fresh token.
//
// Unknown emails and wrong passwords share one message so the response
// does not reveal which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	email := normalize.Email(in.Email)

	if h.Logins != nil {
		if ok, msg := h.Logins.Check(r, email); !ok {
			h.Log.Warn("login throttled",
				zap.String("email", email),
				zap.String("ip", ratelimit.ClientIP(r)))
			respond.Fail(w, http.StatusTooManyRequests, msg)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		respond.ServerError(w, h.Log, "load user for login", err)
		return
	}
	if u == nil || !userstore.CheckPassword(u, in.Password) {
		respond.Unauthorized(w, "Invalid credentials")
		return
	}
	if !u.IsActive {
		respond.Unauthorized(w, "Account is deactivated")
		return
	}

	token, err := h.Tokens.Issue(*u)
	if err != nil {
		respond.ServerError(w, h.Log, "issue token", err)
		return
	}
	if h.Logins != nil {
		h.Logins.ResetEmail(email)
	}
	h.recordLogin(ctx, r, u.ID, models.LoginMethodPassword)

	respond.OK(w, respond.M{
		"token": token,
		"user":  toUserJSON(u),
	})
}
