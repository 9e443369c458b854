package kernel

// Typed identifiers shared across modules. They are thin wrappers over the
// store's string keys; user and agent ids come from the caller, conversation
// and message ids are minted by this service.

type UserID string

func NewUserID(id string) UserID { return UserID(id) }

func (id UserID) String() string { return string(id) }

func (id UserID) IsEmpty() bool { return id == "" }

type AgentID string

func NewAgentID(id string) AgentID { return AgentID(id) }

func (id AgentID) String() string { return string(id) }

func (id AgentID) IsEmpty() bool { return id == "" }

type ConversationID string

func NewConversationID(id string) ConversationID { return ConversationID(id) }

func (id ConversationID) String() string { return string(id) }

func (id ConversationID) IsEmpty() bool { return id == "" }

type MessageID string

func NewMessageID(id string) MessageID { return MessageID(id) }

func (id MessageID) String() string { return string(id) }

func (id MessageID) IsEmpty() bool { return id == "" }
