package usecase

import (
	"context"
	"fmt"
	"time"

	"webmail-agent/internal/application/port/output"
	"webmail-agent/internal/domain/entity"
)

const defaultSettleDelay = 1 * time.Second

type ExecutorConfig struct {
	// FailFast aborts the sequence on the first failed action. The default
	// policy is best-effort: log the failure and keep going.
	FailFast    bool
	SettleDelay time.Duration
}

func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		FailFast:    false,
		SettleDelay: defaultSettleDelay,
	}
}

// ActionExecutor walks an action sequence against the live page, resolving
// template placeholders from the bindings and isolating per-action failures.
type ActionExecutor struct {
	browser output.BrowserPort
	logger  output.LoggerPort
	cfg     ExecutorConfig
}

func NewActionExecutor(browser output.BrowserPort, logger output.LoggerPort, cfg ExecutorConfig) *ActionExecutor {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	return &ActionExecutor{
		browser: browser,
		logger:  logger,
		cfg:     cfg,
	}
}

// ActionResult records the outcome of a single executed action.
type ActionResult struct {
	Action entity.Action
	Err    error
}

// Execute runs the actions in order. In best-effort mode a failed page
// operation never stops the sequence and Execute returns a nil error; the
// per-action outcomes are in the result slice. Context cancellation aborts
// either way.
func (e *ActionExecutor) Execute(ctx context.Context, actions []entity.Action, bindings entity.Bindings) ([]ActionResult, error) {
	results := make([]ActionResult, 0, len(actions))

	for _, action := range actions {
		e.logger.Info("Executing action",
			"description", action.Description,
			"kind", action.Kind,
			"selector", action.Selector)

		err := e.dispatch(ctx, action, bindings)
		results = append(results, ActionResult{Action: action, Err: err})

		if err != nil {
			e.logger.Error("Action failed",
				"description", action.Description,
				"selector", action.Selector,
				"error", err)
			if e.cfg.FailFast {
				return results, fmt.Errorf("action %q failed: %w", action.Description, err)
			}
		}

		// Crude readiness substitute: give the UI a moment to settle.
		if err := e.browser.Wait(ctx, e.cfg.SettleDelay); err != nil {
			return results, err
		}
	}

	return results, nil
}

func (e *ActionExecutor) dispatch(ctx context.Context, action entity.Action, bindings entity.Bindings) error {
	switch action.Kind {
	case entity.ActionClick:
		return e.browser.Click(ctx, action.Selector)
	case entity.ActionFill:
		return e.browser.Fill(ctx, action.Selector, bindings.Resolve(action.Value))
	default:
		return fmt.Errorf("unknown action kind: %s", action.Kind)
	}
}
