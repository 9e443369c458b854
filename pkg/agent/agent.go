package agent

import (
	"net/http"
	"time"

	"github.com/quantumminds/council/pkg/errx"
)

// ============================================================================
// Agent Entity
// ============================================================================

// Agent is one catalog entry of the council: the public identity shown to
// users. The conversational behavior itself lives in the persona registry,
// keyed by Name.
type Agent struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Role        string    `db:"role" json:"role"`
	Description string    `db:"description" json:"description"`
	AvatarURL   *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AgentListResponse lists the catalog
type AgentListResponse struct {
	Success bool    `json:"success"`
	Agents  []Agent `json:"agents"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("AGENT")

var CodeAgentNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Agente não encontrado")

func ErrAgentNotFound() *errx.Error {
	return ErrRegistry.New(CodeAgentNotFound)
}
