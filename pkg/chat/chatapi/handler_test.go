package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumminds/council/pkg/ai/llm"
	"github.com/quantumminds/council/pkg/chat"
	"github.com/quantumminds/council/pkg/chat/chatsrv"
	"github.com/quantumminds/council/pkg/config"
	"github.com/quantumminds/council/pkg/errx"
	"github.com/quantumminds/council/pkg/kernel"
	"github.com/quantumminds/council/pkg/persona"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeRepo struct {
	conversations []chat.Conversation
	messages      []chat.Message
}

func (r *fakeRepo) FindLatestConversation(ctx context.Context, userID kernel.UserID, agentID kernel.AgentID) (*chat.Conversation, error) {
	var latest *chat.Conversation
	for i := range r.conversations {
		c := &r.conversations[i]
		if c.UserID == userID && c.AgentID == agentID {
			if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
				latest = c
			}
		}
	}
	if latest == nil {
		return nil, chat.ErrConversationNotFound()
	}
	out := *latest
	return &out, nil
}

func (r *fakeRepo) CreateConversation(ctx context.Context, conv chat.Conversation) (*chat.Conversation, error) {
	conv.CreatedAt = time.Now()
	r.conversations = append(r.conversations, conv)
	return &conv, nil
}

func (r *fakeRepo) ListMessages(ctx context.Context, conversationID kernel.ConversationID) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) AppendMessage(ctx context.Context, msg chat.Message) (*chat.Message, error) {
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, msg)
	return &msg, nil
}

func (r *fakeRepo) ClearHistory(ctx context.Context, conversationID kernel.ConversationID) (int64, error) {
	var kept []chat.Message
	var deleted int64
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}

func (r *fakeRepo) ListUserConversations(ctx context.Context, userID kernel.UserID) ([]chat.Conversation, error) {
	var out []chat.Conversation
	for _, c := range r.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Message: llm.NewAssistantMessage(f.reply)}, nil
}

// ============================================================================
// Setup
// ============================================================================

func newTestApp(repo *fakeRepo, provider *fakeLLM) *fiber.App {
	personas := persona.NewRegistry(map[string]string{
		"allex": "Você é Allex, Mentor de Líderes.",
	})
	cfg := config.OpenAIConfig{
		Model:       "gpt-3.5-turbo",
		MaxTokens:   150,
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}
	service := chatsrv.NewChatService(repo, personas, llm.NewClient(provider), cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*errx.Error); ok {
				return c.Status(e.HTTPStatus).JSON(fiber.Map{
					"error": e.Message,
					"code":  e.Code,
					"type":  string(e.Type),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		},
	})
	NewChatHandlers(service).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp, payload
}

// ============================================================================
// /ask
// ============================================================================

func TestAskEndpoint(t *testing.T) {
	app := newTestApp(&fakeRepo{}, &fakeLLM{reply: "Comece pelo time."})

	resp, payload := doJSON(t, app, fiber.MethodPost, "/ask", fiber.Map{
		"agent_id": "allex",
		"history": []fiber.Map{
			{"role": "user", "content": "Como delegar melhor?"},
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Comece pelo time.", payload["response"])
}

func TestAskEndpointUnknownAgent(t *testing.T) {
	app := newTestApp(&fakeRepo{}, &fakeLLM{reply: "ok"})

	resp, payload := doJSON(t, app, fiber.MethodPost, "/ask", fiber.Map{
		"agent_id": "nobody",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Agent ID é inválido ou não foi fornecido.", payload["error"])
}

func TestAskEndpointInvalidBody(t *testing.T) {
	app := newTestApp(&fakeRepo{}, &fakeLLM{reply: "ok"})

	req := httptest.NewRequest(fiber.MethodPost, "/ask", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAskEndpointProviderFailure(t *testing.T) {
	app := newTestApp(&fakeRepo{}, &fakeLLM{err: context.DeadlineExceeded})

	resp, payload := doJSON(t, app, fiber.MethodPost, "/ask", fiber.Map{
		"agent_id": "allex",
	})

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, string(chat.CodeCompletionTimeout), payload["code"])
}

// ============================================================================
// Conversations
// ============================================================================

func TestConversationEndpointCreatesOnFirstContact(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo, &fakeLLM{})

	resp, payload := doJSON(t, app, fiber.MethodPost, "/conversation", fiber.Map{
		"user_id":  "u1",
		"agent_id": "allex",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.NotEmpty(t, payload["conversation_id"])
	assert.Equal(t, []any{}, payload["messages"])
	assert.Len(t, repo.conversations, 1)
}

func TestConversationEndpointByPath(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo, &fakeLLM{})

	resp, first := doJSON(t, app, fiber.MethodGet, "/conversations/u1/allex", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// second hit resolves the same conversation
	_, second := doJSON(t, app, fiber.MethodGet, "/conversations/u1/allex", nil)
	assert.Equal(t, first["conversation_id"], second["conversation_id"])
	assert.Len(t, repo.conversations, 1)
}

func TestListUserConversationsEndpoint(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo, &fakeLLM{})

	doJSON(t, app, fiber.MethodPost, "/conversation", fiber.Map{"user_id": "u1", "agent_id": "allex"})

	resp, payload := doJSON(t, app, fiber.MethodGet, "/conversations/user/u1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])

	conversations, ok := payload["conversations"].([]any)
	require.True(t, ok)
	assert.Len(t, conversations, 1)
}

func TestListUserConversationsEndpointEmpty(t *testing.T) {
	app := newTestApp(&fakeRepo{}, &fakeLLM{})

	resp, payload := doJSON(t, app, fiber.MethodGet, "/conversations/user/ghost", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, payload["conversations"])
}

// ============================================================================
// Messages
// ============================================================================

func TestMessageEndpoint(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo, &fakeLLM{})

	resp, payload := doJSON(t, app, fiber.MethodPost, "/message", fiber.Map{
		"conversation_id": uuid.NewString(),
		"user_id":         "u1",
		"agent_id":        "allex",
		"role":            "user",
		"content":         "oi",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Mensagem salva com sucesso", payload["message"])
	assert.NotEmpty(t, payload["message_id"])
	assert.Len(t, repo.messages, 1)
}

func TestMessageEndpointRejectsBadRole(t *testing.T) {
	app := newTestApp(&fakeRepo{}, &fakeLLM{})

	resp, _ := doJSON(t, app, fiber.MethodPost, "/message", fiber.Map{
		"conversation_id": uuid.NewString(),
		"user_id":         "u1",
		"role":            "narrator",
		"content":         "era uma vez",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMessagesRouteNotCapturedAsPair(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo, &fakeLLM{})

	convID := uuid.NewString()
	doJSON(t, app, fiber.MethodPost, "/message", fiber.Map{
		"conversation_id": convID,
		"user_id":         "u1",
		"role":            "user",
		"content":         "oi",
	})

	// must hit the replay route, not find-or-create for user=convID agent=messages
	resp, payload := doJSON(t, app, fiber.MethodGet, "/conversations/"+convID+"/messages", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 1)
	assert.Empty(t, repo.conversations, "replay must not create a conversation")
}

func TestClearHistoryEndpoint(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo, &fakeLLM{})

	convID := uuid.NewString()
	for range 2 {
		doJSON(t, app, fiber.MethodPost, "/message", fiber.Map{
			"conversation_id": convID,
			"user_id":         "u1",
			"role":            "user",
			"content":         "oi",
		})
	}

	resp, payload := doJSON(t, app, fiber.MethodDelete, "/conversation/"+convID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Histórico limpo com sucesso.", payload["message"])
	assert.Equal(t, float64(2), payload["deleted"])
	assert.Empty(t, repo.messages)
}
