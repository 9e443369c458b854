package chatinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/quantumminds/council/pkg/chat"
	"github.com/quantumminds/council/pkg/kernel"
)

// foreign key violation
const pqFKViolation = "23503"

// PostgresConversationRepository implementación de PostgreSQL para ConversationRepository
type PostgresConversationRepository struct {
	db *sqlx.DB
}

// NewPostgresConversationRepository crea una nueva instancia del repositorio de conversaciones
func NewPostgresConversationRepository(db *sqlx.DB) chat.ConversationRepository {
	return &PostgresConversationRepository{
		db: db,
	}
}

// FindLatestConversation busca la conversación más reciente para el par (user, agent)
func (r *PostgresConversationRepository) FindLatestConversation(ctx context.Context, userID kernel.UserID, agentID kernel.AgentID) (*chat.Conversation, error) {
	query := `
		SELECT id, user_id, agent_id, title, created_at
		FROM conversations
		WHERE user_id = $1 AND agent_id = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var conv chat.Conversation
	err := r.db.GetContext(ctx, &conv, query, userID.String(), agentID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, chat.ErrConversationNotFound().
				WithDetail("user_id", userID.String()).
				WithDetail("agent_id", agentID.String())
		}
		return nil, chat.ErrStoreFailed().WithCause(err).
			WithDetail("op", "find_latest_conversation").
			WithDetail("user_id", userID.String()).
			WithDetail("agent_id", agentID.String())
	}

	return &conv, nil
}

// CreateConversation inserta una nueva conversación; created_at lo asigna el store
func (r *PostgresConversationRepository) CreateConversation(ctx context.Context, conv chat.Conversation) (*chat.Conversation, error) {
	query := `
		INSERT INTO conversations (id, user_id, agent_id, title)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, agent_id, title, created_at`

	var created chat.Conversation
	err := r.db.GetContext(ctx, &created, query,
		conv.ID.String(), conv.UserID.String(), conv.AgentID.String(), conv.Title)
	if err != nil {
		return nil, chat.ErrStoreFailed().WithCause(err).
			WithDetail("op", "create_conversation").
			WithDetail("user_id", conv.UserID.String()).
			WithDetail("agent_id", conv.AgentID.String())
	}

	return &created, nil
}

// ListMessages devuelve los mensajes de una conversación ordenados por created_at ascendente
func (r *PostgresConversationRepository) ListMessages(ctx context.Context, conversationID kernel.ConversationID) ([]chat.Message, error) {
	query := `
		SELECT id, conversation_id, user_id, agent_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC`

	var messages []chat.Message
	err := r.db.SelectContext(ctx, &messages, query, conversationID.String())
	if err != nil {
		return nil, chat.ErrStoreFailed().WithCause(err).
			WithDetail("op", "list_messages").
			WithDetail("conversation_id", conversationID.String())
	}

	return messages, nil
}

// AppendMessage inserta un mensaje; created_at lo asigna el store
func (r *PostgresConversationRepository) AppendMessage(ctx context.Context, msg chat.Message) (*chat.Message, error) {
	query := `
		INSERT INTO messages (id, conversation_id, user_id, agent_id, role, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, conversation_id, user_id, agent_id, role, content, created_at`

	var created chat.Message
	err := r.db.GetContext(ctx, &created, query,
		msg.ID.String(), msg.ConversationID.String(), msg.UserID.String(),
		msg.AgentID.String(), msg.Role, msg.Content)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqFKViolation {
			return nil, chat.ErrConversationNotFound().
				WithDetail("conversation_id", msg.ConversationID.String())
		}
		return nil, chat.ErrStoreFailed().WithCause(err).
			WithDetail("op", "append_message").
			WithDetail("conversation_id", msg.ConversationID.String())
	}

	return &created, nil
}

// ClearHistory elimina todos los mensajes de una conversación y devuelve el conteo.
// La fila de la conversación se mantiene.
func (r *PostgresConversationRepository) ClearHistory(ctx context.Context, conversationID kernel.ConversationID) (int64, error) {
	query := `DELETE FROM messages WHERE conversation_id = $1`

	result, err := r.db.ExecContext(ctx, query, conversationID.String())
	if err != nil {
		return 0, chat.ErrStoreFailed().WithCause(err).
			WithDetail("op", "clear_history").
			WithDetail("conversation_id", conversationID.String())
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, chat.ErrStoreFailed().WithCause(err).
			WithDetail("op", "clear_history")
	}

	return deleted, nil
}

// ListUserConversations devuelve todas las conversaciones de un usuario, más recientes primero
func (r *PostgresConversationRepository) ListUserConversations(ctx context.Context, userID kernel.UserID) ([]chat.Conversation, error) {
	query := `
		SELECT id, user_id, agent_id, title, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var conversations []chat.Conversation
	err := r.db.SelectContext(ctx, &conversations, query, userID.String())
	if err != nil {
		return nil, chat.ErrStoreFailed().WithCause(err).
			WithDetail("op", "list_user_conversations").
			WithDetail("user_id", userID.String())
	}

	return conversations, nil
}
