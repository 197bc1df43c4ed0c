package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"lifehub-agent-be/internal/config"
	"lifehub-agent-be/internal/controller"
	"lifehub-agent-be/internal/pkg/logger"
	"lifehub-agent-be/internal/repository/implementation"
	"lifehub-agent-be/internal/service"
	"lifehub-agent-be/pkg/agent"
	"lifehub-agent-be/pkg/embedding"
	"lifehub-agent-be/pkg/llm/factory"
	"lifehub-agent-be/pkg/mcp"
	pktNats "lifehub-agent-be/pkg/nats"
	"lifehub-agent-be/pkg/retrieval"
	"lifehub-agent-be/pkg/tools"
)

const mcpDiscoveryTimeout = 30 * time.Second

type Container struct {
	// Controllers
	ChatController controller.IChatController
	TaskController controller.ITaskController
	NoteController controller.INoteController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	mcpManagers []*mcp.Manager
	natsPub     *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus for background ingest jobs
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Embedding provider. One per process: the chunk store is bound to a
	// single embedding space.
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.OpenAIEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIEmbedModel)
	}

	// Repositories
	chunkRepo := implementation.NewNoteChunkRepository(db)
	taskRepo := implementation.NewTaskRepository(db)

	gateway := retrieval.NewGateway(embeddingProvider, chunkRepo)

	// NATS is optional; a nil publisher disables events.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsEnabled {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Tool registry: built-ins first, then discovered MCP tools.
	registry := tools.NewRegistry()
	mustRegister(registry, tools.NewWeatherTool())
	mustRegister(registry, tools.NewAddTaskTool(taskRepo, natsPub))
	mustRegister(registry, tools.NewSearchNotesTool(gateway))

	var mcpManagers []*mcp.Manager
	for _, server := range mcp.ServersFromEnv(cfg.Keys.Brave) {
		discoverCtx, cancel := context.WithTimeout(context.Background(), mcpDiscoveryTimeout)
		manager, err := mcp.DiscoverTools(discoverCtx, server)
		cancel()
		if err != nil {
			// An unreachable external server must not block startup.
			sysLogger.Warn("bootstrap", "MCP server unavailable", map[string]interface{}{
				"server": server.Name,
				"error":  err.Error(),
			})
			continue
		}
		for _, tool := range manager.Tools() {
			if err := registry.Register(tool); err != nil {
				sysLogger.Warn("bootstrap", "skipping MCP tool", map[string]interface{}{
					"tool":  tool.Metadata().Name,
					"error": err.Error(),
				})
			}
		}
		mcpManagers = append(mcpManagers, manager)
		sysLogger.Info("bootstrap", "MCP server connected", map[string]interface{}{
			"server": server.Name,
			"tools":  len(manager.Tools()),
		})
	}

	// One pipeline per configured model provider, all sharing the registry.
	pipelines := make(map[string]*agent.Pipeline)

	ollamaProvider, err := factory.NewLLMProvider("ollama", cfg.Ai.OllamaModel, cfg.Ai.OllamaBaseURL, "")
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Ollama provider: %v", err)
	}
	pipelines["ollama"] = agent.NewPipeline(ollamaProvider, registry)

	if cfg.Keys.OpenAI != "" {
		openaiProvider, err := factory.NewLLMProvider("openai", cfg.Ai.OpenAIModel, cfg.Ai.OpenAIBaseURL, cfg.Keys.OpenAI)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize OpenAI provider: %v", err)
		}
		pipelines["openai"] = agent.NewPipeline(openaiProvider, registry)
	}

	defaultProvider := cfg.Ai.DefaultProvider
	if _, ok := pipelines[defaultProvider]; !ok {
		log.Printf("[WARN] Default provider '%s' is not configured, falling back to ollama", defaultProvider)
		defaultProvider = "ollama"
	}
	log.Printf("[INFO] Configured LLM providers: %d (default: %s)", len(pipelines), defaultProvider)

	// Services
	publisherService := service.NewPublisherService(cfg.Notes.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Notes.IngestTopic, cfg.Notes.IngestParallel, gateway, natsPub, sysLogger)
	chatService := service.NewChatService(pipelines, defaultProvider, sysLogger)
	taskService := service.NewTaskService(taskRepo)
	noteService := service.NewNoteService(cfg.Notes.Dir, publisherService, sysLogger)

	return &Container{
		ChatController:  controller.NewChatController(chatService),
		TaskController:  controller.NewTaskController(taskService),
		NoteController:  controller.NewNoteController(noteService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
		mcpManagers:     mcpManagers,
		natsPub:         natsPub,
	}
}

// Close releases external connections (MCP server processes, NATS).
func (c *Container) Close() {
	for _, m := range c.mcpManagers {
		_ = m.Close()
	}
	c.natsPub.Close()
}

func mustRegister(r *tools.Registry, t tools.Tool) {
	if err := r.Register(t); err != nil {
		log.Fatalf("[FATAL] Failed to register tool: %v", err)
	}
}
