package output

import (
	"context"

	"webmail-agent/internal/domain/entity"
)

// ActionPlannerPort turns a goal plus the current page markup into an ordered
// action sequence. markup lets a page-aware planner locate elements
// dynamically; a static planner may ignore it.
type ActionPlannerPort interface {
	Plan(ctx context.Context, markup, goal string) ([]entity.Action, error)
}
