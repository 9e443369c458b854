package persona

import (
	"net/http"

	"github.com/quantumminds/council/pkg/errx"
	"github.com/quantumminds/council/pkg/kernel"
)

// ============================================================================
// Persona Entity
// ============================================================================

// Persona is a named system-level instruction that conditions the completion
// provider's behavior for one agent identity. Immutable after load.
type Persona struct {
	AgentID      kernel.AgentID `json:"agent_id"`
	SystemPrompt string         `json:"system_prompt"`
}

// ============================================================================
// Registry
// ============================================================================

// Registry is the immutable agent id → system prompt mapping, built once at
// process start and shared by every request without locking.
type Registry struct {
	prompts map[kernel.AgentID]string
}

// NewRegistry builds a registry from the given prompt table.
func NewRegistry(prompts map[string]string) *Registry {
	table := make(map[kernel.AgentID]string, len(prompts))
	for id, prompt := range prompts {
		table[kernel.NewAgentID(id)] = prompt
	}
	return &Registry{prompts: table}
}

// Resolve returns the system prompt for the given agent. The match is
// case-sensitive and exact; a miss is a client error, not a server fault.
func (r *Registry) Resolve(agentID kernel.AgentID) (string, error) {
	prompt, ok := r.prompts[agentID]
	if !ok {
		return "", ErrUnknownAgent().WithDetail("agent_id", agentID.String())
	}
	return prompt, nil
}

// Has reports whether the agent has a persona.
func (r *Registry) Has(agentID kernel.AgentID) bool {
	_, ok := r.prompts[agentID]
	return ok
}

// Len returns the number of loaded personas.
func (r *Registry) Len() int {
	return len(r.prompts)
}

// AgentIDs returns every known agent identifier.
func (r *Registry) AgentIDs() []kernel.AgentID {
	ids := make([]kernel.AgentID, 0, len(r.prompts))
	for id := range r.prompts {
		ids = append(ids, id)
	}
	return ids
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("PERSONA")

var CodeUnknownAgent = ErrRegistry.Register("UNKNOWN_AGENT", errx.TypeValidation, http.StatusBadRequest, "Agent ID é inválido ou não foi fornecido.")

func ErrUnknownAgent() *errx.Error {
	return ErrRegistry.New(CodeUnknownAgent)
}
