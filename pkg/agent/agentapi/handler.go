package agentapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quantumminds/council/pkg/agent"
)

// AgentHandlers expose the read-only agents catalog. No service layer: the
// catalog has no business rules beyond what the repository returns.
type AgentHandlers struct {
	repo agent.AgentRepository
}

func NewAgentHandlers(repo agent.AgentRepository) *AgentHandlers {
	return &AgentHandlers{repo: repo}
}

func (h *AgentHandlers) RegisterRoutes(router fiber.Router) {
	router.Get("/agents", h.ListAgents)
	router.Get("/agents/:name", h.GetAgent)
}

func (h *AgentHandlers) ListAgents(c *fiber.Ctx) error {
	agents, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}

	if agents == nil {
		agents = []agent.Agent{}
	}

	return c.JSON(agent.AgentListResponse{
		Success: true,
		Agents:  agents,
	})
}

func (h *AgentHandlers) GetAgent(c *fiber.Ctx) error {
	a, err := h.repo.FindByName(c.Context(), c.Params("name"))
	if err != nil {
		return err
	}

	return c.JSON(a)
}
