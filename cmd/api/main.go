package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medsupply/orders-api/internal/auth"
	"github.com/medsupply/orders-api/internal/aws"
	"github.com/medsupply/orders-api/internal/config"
	"github.com/medsupply/orders-api/internal/docintake"
	"github.com/medsupply/orders-api/internal/handlers"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.RegisterOrdersRoutes(r, cfg)

	return r
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	clients, err := aws.NewAWSClients(context.Background(), aws.Options{
		Region:           cfg.AWSRegion,
		AccessKeyID:      cfg.AWSAccessKeyID,
		SecretAccessKey:  cfg.AWSSecretAccessKey,
		DynamoDBEndpoint: cfg.DynamoDBEndpoint,
	})
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}

	keys := auth.NewKeySet(cfg.AllowedAPIKeys)
	if keys.Len() == 0 {
		logger.Warn("no API keys configured; every request will be rejected")
	}

	var metrics *aws.Metrics
	if cfg.MetricsEnabled {
		metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace, logger)
	}

	pipeline := docintake.New(
		docintake.NewPDFExtractor(),
		docintake.NewTesseractOCR(cfg.OCRLanguage),
		docintake.NewOpenAICompleter(cfg.OpenAIKey, cfg.OpenAIModel),
		logger,
	)

	r := setupRouter(handlers.HandlerConfig{
		DynamoDBClient: clients.DynamoDB,
		OrdersTable:    cfg.DynamoDBTable,
		Keys:           keys,
		Pipeline:       pipeline,
		Metrics:        metrics,
		Logger:         logger,
	})

	// if environment variable RUN_LOCAL is set to "true", run a local HTTP
	// server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		logger.Info("running local server", zap.String("addr", cfg.Addr))
		if err := r.Run(cfg.Addr); err != nil {
			logger.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
