package agent

import "context"

// AgentRepository define el contrato para la persistencia del catálogo de agentes
type AgentRepository interface {
	List(ctx context.Context) ([]Agent, error)
	FindByName(ctx context.Context, name string) (*Agent, error)
}
