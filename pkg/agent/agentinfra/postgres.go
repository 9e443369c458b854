package agentinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/quantumminds/council/pkg/agent"
	"github.com/quantumminds/council/pkg/errx"
)

// PostgresAgentRepository implementación de PostgreSQL para AgentRepository
type PostgresAgentRepository struct {
	db *sqlx.DB
}

// NewPostgresAgentRepository crea una nueva instancia del repositorio de agentes
func NewPostgresAgentRepository(db *sqlx.DB) agent.AgentRepository {
	return &PostgresAgentRepository{
		db: db,
	}
}

// List devuelve el catálogo completo de agentes ordenado por nombre
func (r *PostgresAgentRepository) List(ctx context.Context) ([]agent.Agent, error) {
	query := `
		SELECT id, name, role, description, avatar_url, created_at
		FROM agents
		ORDER BY name ASC`

	var agents []agent.Agent
	err := r.db.SelectContext(ctx, &agents, query)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list agents", errx.TypeInternal)
	}

	return agents, nil
}

// FindByName busca un agente por su nombre
func (r *PostgresAgentRepository) FindByName(ctx context.Context, name string) (*agent.Agent, error) {
	query := `
		SELECT id, name, role, description, avatar_url, created_at
		FROM agents
		WHERE name = $1`

	var a agent.Agent
	err := r.db.GetContext(ctx, &a, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, agent.ErrAgentNotFound().WithDetail("name", name)
		}
		return nil, errx.Wrap(err, "failed to find agent by name", errx.TypeInternal).
			WithDetail("name", name)
	}

	return &a, nil
}
