package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"webmail-agent/internal/di"
	"webmail-agent/internal/domain/entity"
	"webmail-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	fmt.Println("Webmail Automation Agent")
	fmt.Println("Enter your email instruction (e.g. 'Send an email to test@example.com about the meeting using Gmail'):")
	fmt.Print("> ")

	reader := bufio.NewReader(os.Stdin)
	instruction, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal("failed to read input: ", err)
	}
	instruction = strings.TrimSpace(instruction)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	container, err := di.NewContainer(ctx, di.Config{
		ParserMode:       envService.GetDefault("PARSER_MODE", "heuristic"),
		OpenRouterAPIKey: envService.Get("OPENROUTER_API_KEY"),
		OpenRouterModel:  envService.Get("OPENROUTER_MODEL_NAME"),
		BrowserHeadless:  envService.GetBool("BROWSER_HEADLESS", false),
		FailFast:         envService.GetBool("EXECUTOR_FAIL_FAST", false),
		ArtifactDir:      envService.Get("ARTIFACT_DIR"),
	})
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Send started", "instruction", instruction)

	result, err := container.Sender.SendEmail(ctx, instruction)
	if err != nil {
		container.Logger.Error("Send rejected", "error", err)
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %s\n", result.Status, result.Message)
	if result.Status != entity.SendStatusSuccess {
		os.Exit(1)
	}
}
