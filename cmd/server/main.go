package main

import (
	"log"
	"net/http"

	"webmail-agent/internal/di"
	"webmail-agent/internal/infrastructure/env"
	"webmail-agent/internal/infrastructure/httpapi"
	"webmail-agent/internal/infrastructure/logger"
)

func main() {
	envService := env.NewEnvService()

	cfg := di.Config{
		ParserMode:       envService.GetDefault("PARSER_MODE", "heuristic"),
		OpenRouterAPIKey: envService.Get("OPENROUTER_API_KEY"),
		OpenRouterModel:  envService.Get("OPENROUTER_MODEL_NAME"),
		BrowserHeadless:  envService.GetBool("BROWSER_HEADLESS", true),
		FailFast:         envService.GetBool("EXECUTOR_FAIL_FAST", false),
		ArtifactDir:      envService.Get("ARTIFACT_DIR"),
	}

	srvLogger, err := logger.NewZapLogger("http-server")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer srvLogger.Close()

	server := httpapi.NewServer(di.NewSenderFactory(cfg), srvLogger)

	addr := envService.GetDefault("HTTP_ADDR", ":8080")
	srvLogger.Info("HTTP API listening", "addr", addr)

	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
