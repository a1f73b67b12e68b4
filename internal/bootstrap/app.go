package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"pulse-backend/internal/analyzer"
	"pulse-backend/internal/graph"
	"pulse-backend/internal/insights"
	"pulse-backend/internal/meetings"
	"pulse-backend/internal/queue"
	"pulse-backend/internal/shared/config"
	"pulse-backend/internal/shared/server"
	"pulse-backend/internal/shared/storage/db"
	"pulse-backend/internal/shared/storage/object"
	localstore "pulse-backend/internal/shared/storage/object/local"
	s3store "pulse-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API server and worker.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Queue            queue.Client
	Graph            *graph.Client
	MeetingsRepo     meetings.MeetingsRepo
	InsightsRepo     insights.Repo
	MeetingsService  *meetings.Service
	InsightsService  *insights.Service
	InsightProcessor InsightProcessor
	MeetingsHandler  *meetings.Handler
	InsightsHandler  *insights.Handler
}

// InsightProcessor allows callers to override insight processing for tests.
type InsightProcessor interface {
	Process(ctx context.Context, insightID string) error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	graphClient, err := buildGraph(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		Graph:  graphClient,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		MeetingsHandler: app.MeetingsHandler,
		InsightsHandler: app.InsightsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("MP_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildGraph(ctx context.Context, cfg config.Config) (*graph.Client, error) {
	if strings.TrimSpace(cfg.GraphTenantID) == "" {
		return nil, nil
	}
	return graph.New(ctx, cfg.GraphTenantID, cfg.GraphClientID, cfg.GraphClientSecret)
}

func buildAnalyzer(cfg config.Config) *analyzer.Analyzer {
	if cfg.SentimentMode == "keyword" {
		return analyzer.New(analyzer.DefaultKeywords(), nil)
	}
	return analyzer.NewDefault()
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var meetingsRepo meetings.MeetingsRepo
	var insightsRepo insights.Repo

	if app.DB != nil {
		meetingsRepo = &meetings.PGRepo{DB: app.DB}
		insightsRepo = &insights.PGRepo{DB: app.DB}
	} else {
		meetingsRepo = meetings.NewMemoryRepo()
		insightsRepo = insights.NewMemoryRepo()
	}

	meetingsSvc := &meetings.Service{
		Store: app.Store,
		Repo:  meetingsRepo,
	}
	if app.Graph != nil {
		meetingsSvc.Fetcher = app.Graph
	}

	insightsSvc := &insights.Service{
		Repo:     insightsRepo,
		Meetings: meetingsSvc,
		Analyzer: buildAnalyzer(app.Config),
		Queue:    app.Queue,
	}

	app.MeetingsRepo = meetingsRepo
	app.InsightsRepo = insightsRepo
	app.MeetingsService = meetingsSvc
	app.InsightsService = insightsSvc
	app.InsightProcessor = insightsSvc
	app.MeetingsHandler = meetings.NewHandler(meetingsSvc)
	app.InsightsHandler = insights.NewHandler(insightsSvc)
}

var _ meetings.TranscriptFetcher = (*graph.Client)(nil)
