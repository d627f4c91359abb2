package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/afandian/folktunefinder-go/internal/api"
	"github.com/afandian/folktunefinder-go/internal/api/handlers"
	"github.com/afandian/folktunefinder-go/internal/config"
	"github.com/afandian/folktunefinder-go/internal/llm"
	"github.com/afandian/folktunefinder-go/internal/logger"
	"github.com/afandian/folktunefinder-go/internal/metrics"
	"github.com/afandian/folktunefinder-go/internal/notation/pipeline"
	"github.com/afandian/folktunefinder-go/internal/observability"
	"github.com/afandian/folktunefinder-go/internal/search"
	"github.com/afandian/folktunefinder-go/internal/storage"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build.
var releaseVersion = "dev"

// GetVersion returns the current release version.
func GetVersion() string {
	return releaseVersion
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		serve()
	case "render":
		render(os.Args[2:])
	case "lint":
		lint(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: folktunefinder-go <serve|render|lint> [args]")
	fmt.Fprintln(os.Stderr, "  serve            run the HTTP API")
	fmt.Fprintln(os.Stderr, "  render <file.abc>  render a tune's SVG to stdout")
	fmt.Fprintln(os.Stderr, "  lint <file.abc>     print lexical diagnostics for a tune")
}

// render is the terminal entry point over the pure pipeline: it
// reads a single ABC file and writes its engraved SVG to stdout.
func render(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: folktunefinder-go render <file.abc>")
		os.Exit(1)
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("reading %s: %v", args[0], err)
	}

	tune := pipeline.AbcToAst(string(text))
	fmt.Println(pipeline.AstToSvg(tune))
}

// lint is the terminal entry point over the diagnostics renderer: it
// reads a single ABC file and writes its lexical error report to
// stdout.
func lint(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: folktunefinder-go lint <file.abc>")
		os.Exit(1)
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("reading %s: %v", args[0], err)
	}

	report := pipeline.FormatErrorsFromText(string(text))
	fmt.Print(report.Report)
	if report.Unshown > 0 {
		fmt.Printf("... and %d more error(s) not shown\n", report.Unshown)
	}
	if report.Count > 0 {
		os.Exit(1)
	}
}

func serve() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "folktunefinder-go@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	if cfg.LangfuseEnabled && cfg.LangfuseSecretKey != "" {
		os.Setenv("LANGFUSE_PUBLIC_KEY", cfg.LangfusePublicKey)
		os.Setenv("LANGFUSE_SECRET_KEY", cfg.LangfuseSecretKey)
		if cfg.LangfuseHost != "" {
			os.Setenv("LANGFUSE_HOST", cfg.LangfuseHost)
		}
	}
	ctx := context.Background()
	observability.InitializeLangfuse(ctx, cfg)

	db, err := storage.OpenDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}

	cache, err := storage.Open(cfg.TuneCachePath, storage.ReadWrite)
	if err != nil {
		log.Fatalf("opening tune cache %s: %v", cfg.TuneCachePath, err)
	}

	scanner := storage.NewDirectoryScanner(cache)
	scanResult, err := scanner.Scan(cfg.CorpusDir)
	if err != nil {
		log.Printf("⚠️  corpus scan of %s failed: %v", cfg.CorpusDir, err)
	} else {
		log.Printf("📚 corpus scan: %d files scanned, %d newly indexed", scanResult.Scanned, scanResult.Indexed)
	}

	index := search.NewIndex()
	indexed, failed := index.Rebuild(cache)
	log.Printf("🔍 search index: %d tunes indexed, %d could not be read from the cache", indexed, len(failed))

	provider, err := llm.NewConfiguredProvider(ctx, cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	if err != nil {
		log.Printf("⚠️  description provider not configured: %v", err)
	} else if provider != nil {
		log.Printf("🗣️  description provider: %s", provider.Name())
	} else {
		log.Println("⚠️  no description provider configured (OPENAI_API_KEY / GEMINI_API_KEY unset)")
	}

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment, cfg.CloudWatchNS)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics disabled: %v", err)
	}

	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, GetVersion(), api.Dependencies{
		DB:         db,
		Cache:      cache,
		Index:      index,
		LLM:        provider,
		CloudWatch: cloudwatch,
		Render:     &handlers.RenderStats{},
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting folktunefinder-go", logger.Fields{"port": port, "environment": cfg.Environment})
	if err := router.Run(":" + port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
