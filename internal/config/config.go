package config

import "os"

// Config holds the application configuration.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Corpus / storage
	CorpusDir     string // directory scanned for <id>.abc tune files
	TuneCachePath string // flat-file tunecache on disk
	DatabaseDSN   string // Postgres DSN for tune metadata
	CloudWatchNS  string // CloudWatch namespace for render/corpus metrics

	// Admin auth
	AdminJWTSecret string

	// LLM API Keys (tune-description enrichment)
	OpenAIAPIKey string
	GeminiAPIKey string

	// Observability
	SentryDSN         string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseHost      string
	LangfuseEnabled   bool
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		CorpusDir:         getEnv("CORPUS_DIR", "./corpus"),
		TuneCachePath:     getEnv("TUNECACHE_PATH", "./tunecache"),
		DatabaseDSN:       getEnv("DATABASE_DSN", ""),
		CloudWatchNS:      getEnv("CLOUDWATCH_NAMESPACE", "FolkTuneFinder"),
		AdminJWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
