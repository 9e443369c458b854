package chat

import (
	"context"

	"github.com/quantumminds/council/pkg/kernel"
)

// ConversationRepository is the contract for conversation and message
// persistence. All reads go to the store; nothing is cached in process.
type ConversationRepository interface {
	// FindLatestConversation returns the most recently created conversation
	// for the pair, or ErrConversationNotFound when none exists. Uniqueness is
	// not guaranteed at the store level; most recent wins.
	FindLatestConversation(ctx context.Context, userID kernel.UserID, agentID kernel.AgentID) (*Conversation, error)

	// CreateConversation inserts a new row and returns it with the
	// store-assigned creation timestamp.
	CreateConversation(ctx context.Context, conv Conversation) (*Conversation, error)

	// ListMessages returns every message of the conversation ordered by
	// created_at ascending. Unbounded.
	ListMessages(ctx context.Context, conversationID kernel.ConversationID) ([]Message, error)

	// AppendMessage inserts one message. Referential integrity is delegated
	// to the store; a dangling conversation id surfaces as
	// ErrConversationNotFound.
	AppendMessage(ctx context.Context, msg Message) (*Message, error)

	// ClearHistory deletes all messages of a conversation and returns how
	// many were removed. The conversation row itself is kept.
	ClearHistory(ctx context.Context, conversationID kernel.ConversationID) (int64, error)

	// ListUserConversations returns all conversations of a user, newest first.
	ListUserConversations(ctx context.Context, userID kernel.UserID) ([]Conversation, error)
}
