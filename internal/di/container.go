package di

import (
	"context"
	"fmt"

	"webmail-agent/internal/application/port/input"
	"webmail-agent/internal/application/port/output"
	"webmail-agent/internal/application/usecase"
	"webmail-agent/internal/domain/entity"
	"webmail-agent/internal/infrastructure/browser/rod"
	"webmail-agent/internal/infrastructure/httpapi"
	"webmail-agent/internal/infrastructure/logger"
	"webmail-agent/internal/infrastructure/parser"
	"webmail-agent/internal/infrastructure/parser/llm"
	"webmail-agent/internal/infrastructure/planner"
)

type Container struct {
	Browser output.BrowserPort
	Logger  output.LoggerPort
	Sender  input.EmailSender
}

type Config struct {
	// ParserMode selects the instruction parser: "heuristic" (default)
	// or "llm".
	ParserMode       string
	OpenRouterAPIKey string
	OpenRouterModel  string

	BrowserHeadless bool
	FailFast        bool
	ArtifactDir     string
}

// NewContainer wires one send session. A browser launch failure propagates:
// there is no session to clean up yet.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewZapLogger("send-email")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	ucCfg := usecase.DefaultConfig()
	ucCfg.Executor.FailFast = cfg.FailFast
	if cfg.ArtifactDir != "" {
		ucCfg.ArtifactDir = cfg.ArtifactDir
	}

	sender := usecase.NewSendEmailUseCase(
		browser,
		newParser(cfg, log),
		planner.NewStaticPlanner(log),
		log,
		ucCfg,
	)

	return &Container{
		Browser: browser,
		Logger:  log,
		Sender:  sender,
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newParser(cfg Config, log output.LoggerPort) output.InstructionParserPort {
	heuristic := parser.NewHeuristicParser(log)
	if cfg.ParserMode == "llm" && cfg.OpenRouterAPIKey != "" {
		llmCfg := llm.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
		return llm.NewParserAdapter(llmCfg, heuristic, log)
	}
	return heuristic
}

// NewSenderFactory returns a factory that builds a full container per send
// and tears it down when the operation finishes. Used by the HTTP surface.
func NewSenderFactory(cfg Config) httpapi.SenderFactory {
	return func(ctx context.Context) (input.EmailSender, error) {
		c, err := NewContainer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &scopedSender{container: c}, nil
	}
}

type scopedSender struct {
	container *Container
}

func (s *scopedSender) SendEmail(ctx context.Context, instruction string) (*entity.SendResult, error) {
	defer s.container.Close()
	return s.container.Sender.SendEmail(ctx, instruction)
}
