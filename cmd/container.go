// container.go
package main

import (
	"context"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/quantumminds/council/pkg/agent"
	"github.com/quantumminds/council/pkg/agent/agentapi"
	"github.com/quantumminds/council/pkg/agent/agentinfra"
	"github.com/quantumminds/council/pkg/ai/llm"
	aiopenai "github.com/quantumminds/council/pkg/ai/providers/openai"
	"github.com/quantumminds/council/pkg/chat"
	"github.com/quantumminds/council/pkg/chat/chatapi"
	"github.com/quantumminds/council/pkg/chat/chatinfra"
	"github.com/quantumminds/council/pkg/chat/chatsrv"
	"github.com/quantumminds/council/pkg/config"
	"github.com/quantumminds/council/pkg/fsx"
	"github.com/quantumminds/council/pkg/fsx/fsxlocal"
	"github.com/quantumminds/council/pkg/fsx/fsxs3"
	"github.com/quantumminds/council/pkg/logx"
	"github.com/quantumminds/council/pkg/persona"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Domain
	Personas    *persona.Registry
	LLM         *llm.Client
	ChatService *chatsrv.ChatService

	// Repositories
	ConversationRepo chat.ConversationRepository
	AgentRepo        agent.AgentRepository

	// API Handlers
	ChatHandlers  *chatapi.ChatHandlers
	AgentHandlers *agentapi.AgentHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database Connection
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("✅ Database connected")

	// 2. Static Storage Configuration (Local or S3)
	c.initFileStorage()

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initFileStorage() {
	switch c.Config.Storage.Mode {
	case "s3":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(),
			awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.AWSBucket, "")
		logx.Infof("✅ S3 file system configured (bucket: %s, region: %s)",
			c.Config.Storage.AWSBucket, c.Config.Storage.AWSRegion)

	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.LocalDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("✅ Local file system configured (path: %s)", localFS.GetBasePath())

	default:
		logx.Fatalf("Unknown STORAGE_MODE: %s (use 'local' or 's3')", c.Config.Storage.Mode)
	}
}

func (c *Container) initServices() {
	logx.Info("🗄️  Initializing repositories and services...")

	// --- Persona Registry ---
	c.Personas = persona.LoadFile(c.Config.Personas.File)
	logx.Infof("✅ Persona registry loaded (%d agents)", c.Personas.Len())

	// --- Completion Provider ---
	c.LLM = llm.NewClient(aiopenai.NewOpenAIProvider(c.Config.OpenAI.APIKey))
	logx.Infof("✅ OpenAI provider configured (model: %s)", c.Config.OpenAI.Model)

	// --- Repositories ---
	c.ConversationRepo = chatinfra.NewPostgresConversationRepository(c.DB)
	c.AgentRepo = agentinfra.NewPostgresAgentRepository(c.DB)

	// --- Domain Services ---
	c.ChatService = chatsrv.NewChatService(
		c.ConversationRepo,
		c.Personas,
		c.LLM,
		c.Config.OpenAI,
	)

	// --- API Handlers ---
	c.ChatHandlers = chatapi.NewChatHandlers(c.ChatService)
	c.AgentHandlers = agentapi.NewAgentHandlers(c.AgentRepo)

	logx.Info("✅ All services and handlers initialized")
}

// Cleanup closes all connections
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	logx.Info("✅ Cleanup completed")
}
