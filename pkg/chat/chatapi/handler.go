package chatapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quantumminds/council/pkg/chat"
	"github.com/quantumminds/council/pkg/chat/chatsrv"
	"github.com/quantumminds/council/pkg/kernel"
)

type ChatHandlers struct {
	service *chatsrv.ChatService
}

func NewChatHandlers(service *chatsrv.ChatService) *ChatHandlers {
	return &ChatHandlers{service: service}
}

func (h *ChatHandlers) RegisterRoutes(router fiber.Router) {
	router.Post("/ask", h.Ask)
	router.Post("/conversation", h.GetOrCreateConversation)
	router.Post("/message", h.AppendMessage)
	router.Delete("/conversation/:conversation_id", h.ClearHistory)

	// The literal segments must be registered before the two-parameter
	// variant so /conversations/user/... and /.../messages never get
	// captured as a (user_id, agent_id) pair.
	router.Get("/conversations/user/:user_id", h.ListUserConversations)
	router.Get("/conversations/:conversation_id/messages", h.ListConversationMessages)
	router.Get("/conversations/:user_id/:agent_id", h.GetOrCreateConversationByPath)
	router.Post("/conversations/:user_id/:agent_id", h.AppendMessageByPath)
}

// Ask relays one completion round trip
func (h *ChatHandlers) Ask(c *fiber.Ctx) error {
	var req chat.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	response, err := h.service.Ask(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetOrCreateConversation resolves the current conversation for a
// (user, agent) pair given in the body and returns its message history.
func (h *ChatHandlers) GetOrCreateConversation(c *fiber.Ctx) error {
	var req chat.GetOrCreateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	history, err := h.service.GetOrCreateConversationHistory(c.Context(),
		kernel.NewUserID(req.UserID), kernel.NewAgentID(req.AgentID))
	if err != nil {
		return err
	}

	return c.JSON(history)
}

// GetOrCreateConversationByPath is the path-parameterized variant of
// GetOrCreateConversation kept for older front-end builds.
func (h *ChatHandlers) GetOrCreateConversationByPath(c *fiber.Ctx) error {
	history, err := h.service.GetOrCreateConversationHistory(c.Context(),
		kernel.NewUserID(c.Params("user_id")), kernel.NewAgentID(c.Params("agent_id")))
	if err != nil {
		return err
	}

	return c.JSON(history)
}

// AppendMessage persists one reported turn
func (h *ChatHandlers) AppendMessage(c *fiber.Ctx) error {
	var req chat.AppendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	msg, err := h.service.AppendMessage(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Mensagem salva com sucesso",
		"message_id": msg.ID,
	})
}

// AppendMessageByPath persists a turn with user and agent taken from the
// path, body carrying conversation_id, content and role.
func (h *ChatHandlers) AppendMessageByPath(c *fiber.Ctx) error {
	var req chat.AppendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.UserID = c.Params("user_id")
	req.AgentID = c.Params("agent_id")

	msg, err := h.service.AppendMessage(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message_id": msg.ID,
	})
}

// ClearHistory deletes every message of a conversation and reports the count
func (h *ChatHandlers) ClearHistory(c *fiber.Ctx) error {
	conversationID := kernel.NewConversationID(c.Params("conversation_id"))

	deleted, err := h.service.ClearHistory(c.Context(), conversationID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Histórico limpo com sucesso.",
		"deleted": deleted,
	})
}

// ListUserConversations returns all conversations of a user, newest first
func (h *ChatHandlers) ListUserConversations(c *fiber.Ctx) error {
	conversations, err := h.service.ListUserConversations(c.Context(),
		kernel.NewUserID(c.Params("user_id")))
	if err != nil {
		return err
	}

	if conversations == nil {
		conversations = []chat.Conversation{}
	}

	return c.JSON(chat.ConversationListResponse{
		Success:       true,
		Conversations: conversations,
	})
}

// ListConversationMessages replays one conversation, oldest first
func (h *ChatHandlers) ListConversationMessages(c *fiber.Ctx) error {
	messages, err := h.service.ListMessages(c.Context(),
		kernel.NewConversationID(c.Params("conversation_id")))
	if err != nil {
		return err
	}

	if messages == nil {
		messages = []chat.Message{}
	}

	return c.JSON(chat.MessageListResponse{
		Success:  true,
		Messages: messages,
	})
}
