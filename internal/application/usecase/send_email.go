package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"webmail-agent/internal/application/port/input"
	"webmail-agent/internal/application/port/output"
	"webmail-agent/internal/domain/entity"
	"webmail-agent/internal/infrastructure/browser/markup"
)

const (
	pageSettleDelay  = 3 * time.Second
	authSettleDelay  = 2 * time.Second
	closeSettleDelay = 3 * time.Second
)

var _ input.EmailSender = (*SendEmailUseCase)(nil)

type Config struct {
	Executor ExecutorConfig
	// ArtifactDir receives a final-page screenshot before teardown.
	// Empty disables the capture.
	ArtifactDir string
}

func DefaultConfig() Config {
	return Config{
		Executor:    DefaultExecutorConfig(),
		ArtifactDir: "artifacts",
	}
}

// SendEmailUseCase sequences one send operation: parse, navigate,
// authenticate, plan, execute, teardown. It exclusively owns the browser
// handle it was constructed with and releases it exactly once, on the
// transition to Closed, whatever happened before.
type SendEmailUseCase struct {
	browser  output.BrowserPort
	parser   output.InstructionParserPort
	planner  output.ActionPlannerPort
	executor *ActionExecutor
	logger   output.LoggerPort
	cfg      Config

	state entity.SessionState
}

func NewSendEmailUseCase(
	browser output.BrowserPort,
	parser output.InstructionParserPort,
	planner output.ActionPlannerPort,
	logger output.LoggerPort,
	cfg Config,
) *SendEmailUseCase {
	return &SendEmailUseCase{
		browser:  browser,
		parser:   parser,
		planner:  planner,
		executor: NewActionExecutor(browser, logger, cfg.Executor),
		logger:   logger,
		cfg:      cfg,
		state:    entity.StateIdle,
	}
}

// SendEmail runs the full pipeline. Pipeline failures are logged and
// reported through the result status, never propagated; the cleanup path
// runs regardless.
func (uc *SendEmailUseCase) SendEmail(ctx context.Context, instruction string) (*entity.SendResult, error) {
	if uc.state != entity.StateIdle {
		return nil, fmt.Errorf("session already used (state %s)", uc.state)
	}

	defer uc.teardown(ctx)

	if err := uc.run(ctx, instruction); err != nil {
		uc.logger.Error("Send failed", "error", err)
		return &entity.SendResult{
			Status:  entity.SendStatusError,
			Message: err.Error(),
		}, nil
	}

	uc.logger.Info("Email sent")
	return &entity.SendResult{
		Status:  entity.SendStatusSuccess,
		Message: "email sent",
	}, nil
}

func (uc *SendEmailUseCase) run(ctx context.Context, instruction string) error {
	uc.transition(entity.StateParsing)
	parsed, err := uc.parser.Parse(ctx, instruction)
	if err != nil {
		return fmt.Errorf("parse instruction: %w", err)
	}
	uc.logger.Info("Instruction parsed",
		"recipient", parsed.Recipient,
		"subject", parsed.Subject,
		"service", parsed.Service)

	uc.transition(entity.StateNavigating)
	if err := uc.browser.Navigate(ctx, parsed.Service.URL()); err != nil {
		return fmt.Errorf("navigate to %s: %w", parsed.Service, err)
	}
	if err := uc.browser.Wait(ctx, pageSettleDelay); err != nil {
		return err
	}

	uc.transition(entity.StateAuthenticating)
	if err := uc.authenticate(ctx, parsed.Service); err != nil {
		return err
	}

	uc.transition(entity.StatePlanning)
	page, err := uc.browser.Content(ctx)
	if err != nil {
		return fmt.Errorf("capture page content: %w", err)
	}
	goal := fmt.Sprintf("Send email using %s", parsed.Service)
	actions, err := uc.planner.Plan(ctx, markup.Compact(page.HTML, nil), goal)
	if err != nil {
		return fmt.Errorf("plan actions: %w", err)
	}
	uc.logger.Info("Actions planned", "goal", goal, "count", len(actions))

	uc.transition(entity.StateExecuting)
	bindings := entity.Bindings{
		"recipient": parsed.Recipient,
		"subject":   parsed.Subject,
		"body":      parsed.Body,
	}
	if _, err := uc.executor.Execute(ctx, actions, bindings); err != nil {
		return fmt.Errorf("execute actions: %w", err)
	}

	return nil
}

// authenticate is a placeholder. Real sign-in flows are an external
// collaborator's responsibility; here the page only gets time to settle into
// whatever auth state the browser profile already carries.
func (uc *SendEmailUseCase) authenticate(ctx context.Context, service entity.Service) error {
	uc.logger.Info("Authentication step (placeholder)", "service", service)
	return uc.browser.Wait(ctx, authSettleDelay)
}

func (uc *SendEmailUseCase) teardown(ctx context.Context) {
	if uc.state == entity.StateClosed {
		return
	}

	uc.captureArtifact(ctx)
	_ = uc.browser.Wait(ctx, closeSettleDelay)

	uc.transition(entity.StateClosed)
	uc.browser.Close()
}

// captureArtifact saves a best-effort screenshot of the final page state.
func (uc *SendEmailUseCase) captureArtifact(ctx context.Context) {
	if uc.cfg.ArtifactDir == "" {
		return
	}

	shot, err := uc.browser.Screenshot(ctx)
	if err != nil {
		uc.logger.Warn("Screenshot failed", "error", err)
		return
	}

	if err := os.MkdirAll(uc.cfg.ArtifactDir, 0755); err != nil {
		uc.logger.Warn("Create artifact dir failed", "error", err)
		return
	}

	name := fmt.Sprintf("%s_final.%s", time.Now().Format("2006-01-02_15-04-05"), shot.Format)
	path := filepath.Join(uc.cfg.ArtifactDir, name)
	if err := os.WriteFile(path, shot.Data, 0644); err != nil {
		uc.logger.Warn("Write artifact failed", "path", path, "error", err)
		return
	}

	uc.logger.Info("Final page screenshot saved", "path", path)
}

func (uc *SendEmailUseCase) transition(next entity.SessionState) {
	uc.logger.Debug("Session state", "from", uc.state, "to", next)
	uc.state = next
}

// State exposes the current session state for observability.
func (uc *SendEmailUseCase) State() entity.SessionState {
	return uc.state
}
