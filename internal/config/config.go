package config

import (
	"fmt"
	"os"

	"github.com/cristalhq/aconfig"
)

// Config holds the complete application configuration, loadable from
// environment variables with the ORDERS_ prefix.
type Config struct {
	Addr string `default:":8080" usage:"HTTP listen address (local mode)"`

	AWSRegion          string `default:"us-east-1" usage:"AWS region" flag:"aws-region"`
	AWSAccessKeyID     string `usage:"Static AWS access key (optional)" flag:"aws-access-key-id"`
	AWSSecretAccessKey string `usage:"Static AWS secret key (optional)" flag:"aws-secret-access-key"`
	DynamoDBEndpoint   string `usage:"DynamoDB endpoint override for local development" flag:"dynamodb-endpoint"`
	DynamoDBTable      string `default:"orders" usage:"Orders table name" flag:"dynamodb-table"`

	AllowedAPIKeys string `usage:"Comma-separated allow-listed API keys" flag:"allowed-api-keys"`

	OpenAIKey   string `usage:"OpenAI API key" flag:"openai-key"`
	OpenAIModel string `default:"gpt-4o-mini" usage:"Chat completion model" flag:"openai-model"`
	OCRLanguage string `default:"eng" usage:"Tesseract language profile" flag:"ocr-language"`

	MetricsEnabled   bool   `default:"false" usage:"Publish CloudWatch metrics" flag:"metrics-enabled"`
	MetricsNamespace string `default:"OrdersAPI" usage:"CloudWatch metric namespace" flag:"metrics-namespace"`
}

// Load reads configuration from ORDERS_-prefixed environment variables and
// falls back to the conventional unprefixed names (AWS_REGION,
// OPENAI_API_KEY, ...) so standard tooling keeps working.
func Load() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERS",
		SkipFlags: true,
	})
	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps conventional environment variable names onto
// the ORDERS_-prefixed configuration when the prefixed form is unset.
func (c *Config) applyPlatformDefaults() {
	fallback := func(dst *string, name string) {
		if *dst == "" {
			*dst = os.Getenv(name)
		}
	}
	if v := os.Getenv("AWS_REGION"); v != "" && c.AWSRegion == "us-east-1" {
		c.AWSRegion = v
	}
	fallback(&c.AWSAccessKeyID, "AWS_ACCESS_KEY_ID")
	fallback(&c.AWSSecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	fallback(&c.DynamoDBEndpoint, "DYNAMODB_ENDPOINT")
	fallback(&c.AllowedAPIKeys, "ALLOWED_API_KEYS")
	fallback(&c.OpenAIKey, "OPENAI_API_KEY")
	if port := os.Getenv("PORT"); port != "" && c.Addr == ":8080" {
		c.Addr = ":" + port
	}
}
