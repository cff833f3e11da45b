// internal/app/features/users/agents.go
package users

import (
	"errors"
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	userstore "github.com/dalemusser/estatehub/internal/app/store/users"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// agentJSON is an agent's public profile.
type agentJSON struct {
	ID              string               `json:"_id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone,omitempty"`
	Avatar          string               `json:"avatar,omitempty"`
	Bio             string               `json:"bio,omitempty"`
	AgentDetails    *models.AgentDetails `json:"agentDetails,omitempty"`
	PropertiesCount *int64               `json:"propertiesCount,omitempty"`
}

func toAgentJSON(u models.User) agentJSON {
	return agentJSON{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Avatar:       u.Avatar,
		Bio:          u.Bio,
		AgentDetails: u.AgentDetails,
	}
}

// ServeAgents lists active agents by name.
func (h *Handler) ServeAgents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list agents")
	defer cancel()

	agents, err := userstore.New(h.DB).ListAgents(ctx)
	if err != nil {
		respond.ServerError(w, h.Log, "list agents", err)
		return
	}
	out := make([]agentJSON, len(agents))
	for i, a := range agents {
		out[i] = toAgentJSON(a)
	}
	respond.OK(w, respond.M{"count": len(out), "agents": out})
}

// ServeAgent returns one agent with the number of active listings they own.
func (h *Handler) ServeAgent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Agent not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load agent")
	defer cancel()

	agent, err := userstore.New(h.DB).GetAgent(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Agent not found")
			return
		}
		respond.ServerError(w, h.Log, "load agent", err)
		return
	}
	n, err := propertystore.New(h.DB).CountActiveByAgent(ctx, id)
	if err != nil {
		respond.ServerError(w, h.Log, "count agent properties", err)
		return
	}

	out := toAgentJSON(*agent)
	out.PropertiesCount = &n
	respond.OK(w, respond.M{"agent": out})
}
