package chatsrv

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/quantumminds/council/pkg/ai/llm"
	"github.com/quantumminds/council/pkg/chat"
	"github.com/quantumminds/council/pkg/config"
	"github.com/quantumminds/council/pkg/errx"
	"github.com/quantumminds/council/pkg/kernel"
	"github.com/quantumminds/council/pkg/logx"
	"github.com/quantumminds/council/pkg/persona"
)

// formatDirective is appended as the last user message of every completion
// request. It steers the model toward short answers and is never persisted:
// only genuine user/assistant turns reach the store.
const formatDirective = "\n\nLembre-se: Responda em no máximo 3 frases curtas, com cada frase em um novo parágrafo."

// ChatService implementa el pipeline de conversación y persona
type ChatService struct {
	repo     chat.ConversationRepository
	personas *persona.Registry
	llm      *llm.Client
	openai   config.OpenAIConfig
}

// NewChatService crea una nueva instancia del servicio de chat
func NewChatService(
	repo chat.ConversationRepository,
	personas *persona.Registry,
	llmClient *llm.Client,
	openaiCfg config.OpenAIConfig,
) *ChatService {
	return &ChatService{
		repo:     repo,
		personas: personas,
		llm:      llmClient,
		openai:   openaiCfg,
	}
}

// Ask resolves the persona for the requested agent, relays the supplied
// history to the completion provider with the brevity directive appended,
// and returns the generated text. Nothing is persisted here; the client
// reports turns separately through AppendMessage.
func (s *ChatService) Ask(ctx context.Context, req chat.AskRequest) (*chat.AskResponse, error) {
	agentID := kernel.NewAgentID(req.AgentID)
	if agentID.IsEmpty() {
		return nil, persona.ErrUnknownAgent()
	}

	systemPrompt, err := s.personas.Resolve(agentID)
	if err != nil {
		return nil, err
	}

	for _, msg := range req.History {
		if !llm.ValidRole(msg.Role) {
			return nil, chat.ErrInvalidRole(msg.Role)
		}
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.NewSystemMessage(systemPrompt))
	messages = append(messages, req.History...)
	messages = append(messages, llm.NewUserMessage(formatDirective))

	ctx, cancel := context.WithTimeout(ctx, s.openai.Timeout)
	defer cancel()

	response, err := s.llm.Chat(ctx, messages,
		llm.WithModel(s.openai.Model),
		llm.WithMaxTokens(s.openai.MaxTokens),
		llm.WithTemperature(float32(s.openai.Temperature)),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, chat.ErrCompletionTimeout().
				WithDetail("agent_id", agentID.String()).
				WithCause(err)
		}
		logx.WithFields(logx.Fields{"agent_id": agentID.String()}).
			Errorf("completion provider call failed: %v", err)
		return nil, chat.ErrCompletionFailed().
			WithDetail("agent_id", agentID.String()).
			WithCause(err)
	}

	return &chat.AskResponse{Response: response.Message.Content}, nil
}

// FindOrCreateConversation looks up the most recent conversation for the
// pair and creates one on first contact.
//
// The read and the write are deliberately not atomic: two concurrent first
// contacts may both observe "absent" and both insert, leaving two rows. The
// store enforces no uniqueness on (user_id, agent_id); the most recent row
// wins every subsequent lookup.
func (s *ChatService) FindOrCreateConversation(ctx context.Context, userID kernel.UserID, agentID kernel.AgentID) (*chat.Conversation, error) {
	if userID.IsEmpty() || agentID.IsEmpty() {
		return nil, chat.ErrInvalidInput("user_id e agent_id são obrigatórios")
	}

	conv, err := s.repo.FindLatestConversation(ctx, userID, agentID)
	if err == nil {
		return conv, nil
	}
	if !errx.IsType(err, errx.TypeNotFound) {
		return nil, err
	}

	created, err := s.repo.CreateConversation(ctx, chat.Conversation{
		ID:      kernel.NewConversationID(uuid.NewString()),
		UserID:  userID,
		AgentID: agentID,
		Title:   chat.DefaultTitle(agentID),
	})
	if err != nil {
		return nil, err
	}

	logx.Infof("Created conversation %s for user %s with agent %s",
		created.ID.String(), userID.String(), agentID.String())
	return created, nil
}

// GetOrCreateConversationHistory resolves the conversation and replays its
// messages in one call, mirroring the front-end's open-chat flow.
func (s *ChatService) GetOrCreateConversationHistory(ctx context.Context, userID kernel.UserID, agentID kernel.AgentID) (*chat.ConversationHistory, error) {
	conv, err := s.FindOrCreateConversation(ctx, userID, agentID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []chat.Message{}
	}

	return &chat.ConversationHistory{
		Success:        true,
		ConversationID: conv.ID,
		Messages:       messages,
	}, nil
}

// AppendMessage persists one reported turn.
func (s *ChatService) AppendMessage(ctx context.Context, req chat.AppendMessageRequest) (*chat.Message, error) {
	if req.ConversationID == "" || req.Content == "" || req.Role == "" {
		return nil, chat.ErrInvalidInput("conversation_id, content e role são obrigatórios")
	}
	if !llm.ValidRole(req.Role) {
		return nil, chat.ErrInvalidRole(req.Role)
	}

	return s.repo.AppendMessage(ctx, chat.Message{
		ID:             kernel.NewMessageID(uuid.NewString()),
		ConversationID: kernel.NewConversationID(req.ConversationID),
		UserID:         kernel.NewUserID(req.UserID),
		AgentID:        kernel.NewAgentID(req.AgentID),
		Role:           req.Role,
		Content:        req.Content,
	})
}

// ListMessages replays a conversation, oldest first.
func (s *ChatService) ListMessages(ctx context.Context, conversationID kernel.ConversationID) ([]chat.Message, error) {
	if conversationID.IsEmpty() {
		return nil, chat.ErrInvalidInput("conversation_id é obrigatório")
	}
	return s.repo.ListMessages(ctx, conversationID)
}

// ClearHistory deletes every message of a conversation and reports the
// count. The conversation row itself survives and stays queryable.
func (s *ChatService) ClearHistory(ctx context.Context, conversationID kernel.ConversationID) (int64, error) {
	if conversationID.IsEmpty() {
		return 0, chat.ErrInvalidInput("conversation_id é obrigatório")
	}

	deleted, err := s.repo.ClearHistory(ctx, conversationID)
	if err != nil {
		return 0, err
	}

	logx.Infof("Cleared history of conversation %s, removed %d messages",
		conversationID.String(), deleted)
	return deleted, nil
}

// ListUserConversations returns all of a user's conversations, newest first.
func (s *ChatService) ListUserConversations(ctx context.Context, userID kernel.UserID) ([]chat.Conversation, error) {
	if userID.IsEmpty() {
		return nil, chat.ErrInvalidInput("user_id é obrigatório")
	}
	return s.repo.ListUserConversations(ctx, userID)
}
