package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"edubot/internal/ai"
	appsvc "edubot/internal/app"
	"edubot/internal/cache"
	"edubot/internal/config"
	mysqlClient "edubot/internal/platform/mysql"
	rabbitmqClient "edubot/internal/platform/rabbitmq"
	redisClient "edubot/internal/platform/redis"
	"edubot/internal/rag"
	"edubot/internal/repository"
	"edubot/internal/worker"
)

type App struct {
	Config        *config.Config
	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	Index         *rag.Index
	Assistant     *appsvc.AssistantService
	RebuildWorker *worker.RebuildWorker

	embedderCloser io.Closer
	StartedAt      time.Time
}

// New wires every component explicitly. A missing completion key or an
// unreachable dependency aborts startup; a failed first index build does not.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	completer, err := ai.NewCompletionClient(ai.CompletionConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, StartedAt: time.Now()}
	if err := a.connect(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if closer, ok := embedder.(io.Closer); ok {
		a.embedderCloser = closer
	}
	var indexEmbedder rag.Embedder = embedder
	if cfg.Embedding.Cache {
		ttl := time.Duration(cfg.Redis.EmbeddingTTLSeconds) * time.Second
		indexEmbedder = cache.NewEmbeddingCache(a.Redis, embedder, ttl)
	}

	supplier := repository.NewRecordSupplier(
		repository.NewStudentRepository(a.MySQL),
		repository.NewCourseRepository(a.MySQL),
	)
	builder := rag.NewDocumentBuilder(rag.NewSplitter(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap))
	a.Index = rag.NewIndex(supplier, builder, indexEmbedder)

	publisher := rabbitmqClient.NewRebuildPublisher(a.MQConn, cfg.RabbitMQ.RebuildQueue)
	a.Assistant = appsvc.NewAssistantService(
		a.Index,
		rag.KeywordClassifier{},
		rag.NewTermOverlapOptimizer(),
		completer,
		publisher,
		cfg.RAG.TopK,
	)

	if _, _, err := a.Index.Rebuild(ctx); err != nil {
		log.Printf("initial index build failed, serving empty index: %v", err)
	}

	a.RebuildWorker = worker.NewRebuildWorker(a.MQConn, a.Index, cfg.RabbitMQ.RebuildQueue)
	if err := a.RebuildWorker.Start(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("start rebuild worker failed: %w", err)
	}
	return a, nil
}

func (a *App) connect(ctx context.Context) error {
	var err error
	a.MySQL, err = mysqlClient.New(ctx, a.Config.MySQLDSN())
	if err != nil {
		return err
	}
	if err := mysqlClient.Migrate(a.MySQL); err != nil {
		return err
	}

	if needsRedis(a.Config) {
		a.Redis, err = redisClient.New(ctx, redisClient.Options{
			Addr:     a.Config.Redis.Addr,
			Password: a.Config.Redis.Password,
			DB:       a.Config.Redis.DB,
		})
		if err != nil {
			return err
		}
	}

	a.MQConn, err = rabbitmqClient.New(ctx, a.Config.RabbitMQ.URL)
	return err
}

// needsRedis reports whether any component uses Redis. Only the embedding
// cache does, so a disabled cache leaves Redis unconnected.
func needsRedis(cfg *config.Config) bool {
	return cfg.Embedding.Cache
}

func newEmbedder(cfg config.EmbeddingConfig) (cache.NamedEmbedder, error) {
	switch cfg.Provider {
	case "", "hugot":
		return ai.NewHugotEmbedder(cfg.Model, cfg.ModelDir)
	case "openai":
		return ai.NewOpenAIEmbedder(ai.EmbeddingConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.RebuildWorker != nil {
		a.RebuildWorker.Close()
	}
	if a.embedderCloser != nil {
		if err := a.embedderCloser.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
