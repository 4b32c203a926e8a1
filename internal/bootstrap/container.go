package bootstrap

import (
	"context"
	"log"
	"time"

	"training-builder-be/internal/config"
	"training-builder-be/internal/controller"
	"training-builder-be/internal/pkg/logger"
	"training-builder-be/internal/repository/unitofwork"
	"training-builder-be/internal/service"
	"training-builder-be/pkg/embedding"
	"training-builder-be/pkg/embedding/jina"
	"training-builder-be/pkg/generation"
	"training-builder-be/pkg/llm/factory"
	pktNats "training-builder-be/pkg/nats"
	"training-builder-be/pkg/outline"
	"training-builder-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	OutlineController  controller.IOutlineController
	TemplateController controller.ITemplateController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GoogleGeminiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaKey)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	default:
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	// 4. LLM provider
	llmBaseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. External infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 6. Retrieval and generation engine
	corpusSource := service.NewCorpusSource(uowFactory, embeddingProvider)
	cachedSource := retrieval.NewCachedSource(
		corpusSource,
		rdb,
		time.Duration(cfg.Retrieval.CacheTTLSeconds)*time.Second,
		sysLogger,
	)

	scorerConfig := retrieval.ScorerConfig{
		SimilarityWeight:    cfg.Retrieval.SimilarityWeight,
		RecencyWeight:       cfg.Retrieval.RecencyWeight,
		CategoryWeight:      cfg.Retrieval.CategoryMatchWeight,
		BaseScore:           cfg.Retrieval.BaseScore,
		SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
		MaxResults:          cfg.Retrieval.MaxResults,
	}
	scorer, err := retrieval.NewScorer(cachedSource, scorerConfig, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Invalid retrieval config: %v", err)
	}

	registry := outline.NewRegistry()
	genConfig := generation.Config{
		CallTimeout:       time.Duration(cfg.Generation.CallTimeoutSeconds) * time.Second,
		DurationTolerance: cfg.Generation.DurationTolerance,
	}

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopicName,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	sessionService := service.NewSessionService(uowFactory, registry, publisherService, natsPub, sysLogger)
	outlineService := service.NewOutlineService(
		uowFactory,
		scorer,
		llmProvider,
		registry,
		genConfig,
		natsPub,
		sysLogger,
	)
	templateService := service.NewTemplateService(uowFactory)

	return &Container{
		SessionController:  controller.NewSessionController(sessionService, cfg.Generation.DurationTolerance),
		OutlineController:  controller.NewOutlineController(outlineService),
		TemplateController: controller.NewTemplateController(templateService),
		ConsumerService:    consumerService,
	}
}
