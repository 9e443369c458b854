package chat

import (
	"fmt"
	"net/http"
	"time"

	"github.com/quantumminds/council/pkg/ai/llm"
	"github.com/quantumminds/council/pkg/errx"
	"github.com/quantumminds/council/pkg/kernel"
)

// ============================================================================
// Conversation Entity
// ============================================================================

// Conversation groups the messages exchanged between one user and one agent.
// Rows are never updated after creation; "the" conversation for a pair is
// resolved by picking the most recently created row.
type Conversation struct {
	ID        kernel.ConversationID `db:"id" json:"id"`
	UserID    kernel.UserID         `db:"user_id" json:"user_id"`
	AgentID   kernel.AgentID        `db:"agent_id" json:"agent_id"`
	Title     string                `db:"title" json:"title"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
}

// DefaultTitle derives the title used when a conversation is created on
// first contact.
func DefaultTitle(agentID kernel.AgentID) string {
	return fmt.Sprintf("Chat com %s", agentID.String())
}

// ============================================================================
// Message Entity
// ============================================================================

// Message is one persisted turn of a conversation. Ordering for replay is the
// store-assigned created_at, ascending.
type Message struct {
	ID             kernel.MessageID      `db:"id" json:"id"`
	ConversationID kernel.ConversationID `db:"conversation_id" json:"conversation_id"`
	UserID         kernel.UserID         `db:"user_id" json:"user_id,omitempty"`
	AgentID        kernel.AgentID        `db:"agent_id" json:"agent_id,omitempty"`
	Role           string                `db:"role" json:"role"`
	Content        string                `db:"content" json:"content"`
	CreatedAt      time.Time             `db:"created_at" json:"created_at"`
}

// ============================================================================
// Service DTOs
// ============================================================================

// AskRequest carries one completion round trip. The history is supplied by
// the client and relayed verbatim; it is not read from the store.
type AskRequest struct {
	AgentID string        `json:"agent_id"`
	History []llm.Message `json:"history"`
}

// AskResponse carries the generated text back to the client
type AskResponse struct {
	Response string `json:"response"`
}

// GetOrCreateConversationRequest resolves the current conversation for a
// (user, agent) pair, creating one on first contact.
type GetOrCreateConversationRequest struct {
	UserID  string `json:"user_id"`
	AgentID string `json:"agent_id"`
}

// ConversationHistory is the combined find-or-create + replay payload
type ConversationHistory struct {
	Success        bool                  `json:"success"`
	ConversationID kernel.ConversationID `json:"conversation_id"`
	Messages       []Message             `json:"messages"`
}

// AppendMessageRequest persists one reported turn
type AppendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	AgentID        string `json:"agent_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
}

// ConversationListResponse lists a user's conversations, newest first
type ConversationListResponse struct {
	Success       bool           `json:"success"`
	Conversations []Conversation `json:"conversations"`
}

// MessageListResponse is the replay payload for one conversation
type MessageListResponse struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("CHAT")

var (
	CodeInvalidInput         = ErrRegistry.Register("INVALID_INPUT", errx.TypeValidation, http.StatusBadRequest, "Campos obrigatórios ausentes ou inválidos")
	CodeInvalidRole          = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Role deve ser system, user ou assistant")
	CodeConversationNotFound = ErrRegistry.Register("CONVERSATION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Conversa não encontrada")
	CodeStoreFailed          = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Falha ao acessar o banco de dados")
	CodeCompletionFailed     = ErrRegistry.Register("COMPLETION_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Desculpe, não consegui processar sua solicitação.")
	CodeCompletionTimeout    = ErrRegistry.Register("COMPLETION_TIMEOUT", errx.TypeExternal, http.StatusGatewayTimeout, "A solicitação à IA excedeu o tempo limite")
)

func ErrInvalidInput(detail string) *errx.Error {
	return ErrRegistry.New(CodeInvalidInput).WithDetail("reason", detail)
}

func ErrInvalidRole(role string) *errx.Error {
	return ErrRegistry.New(CodeInvalidRole).WithDetail("role", role)
}

func ErrConversationNotFound() *errx.Error {
	return ErrRegistry.New(CodeConversationNotFound)
}

func ErrStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeStoreFailed)
}

func ErrCompletionFailed() *errx.Error {
	return ErrRegistry.New(CodeCompletionFailed)
}

func ErrCompletionTimeout() *errx.Error {
	return ErrRegistry.New(CodeCompletionTimeout)
}
