package planner

import (
	"context"
	"strings"

	"webmail-agent/internal/application/port/output"
	"webmail-agent/internal/domain/entity"
)

var _ output.ActionPlannerPort = (*StaticPlanner)(nil)

// selectorTables maps each supported service to its compose sequence.
// Adding a service means adding a table entry, not branching logic.
var selectorTables = map[entity.Service][]entity.Action{
	entity.ServiceGmail: {
		{Kind: entity.ActionClick, Selector: `div[role='button'][gh='cm']`, Description: "Click compose button"},
		{Kind: entity.ActionFill, Selector: `input[aria-label='To']`, Value: "${recipient}", Description: "Fill recipient field"},
		{Kind: entity.ActionFill, Selector: `input[aria-label='Subject']`, Value: "${subject}", Description: "Fill subject field"},
		{Kind: entity.ActionFill, Selector: `div[aria-label='Message Body']`, Value: "${body}", Description: "Fill body field"},
		{Kind: entity.ActionClick, Selector: `div[role='button'][aria-label*='Send']`, Description: "Click send button"},
	},
	entity.ServiceOutlook: {
		{Kind: entity.ActionClick, Selector: `button[aria-label='New message']`, Description: "Click new message button"},
		{Kind: entity.ActionFill, Selector: `input[aria-label='To']`, Value: "${recipient}", Description: "Fill recipient field"},
		{Kind: entity.ActionFill, Selector: `input[aria-label='Add a subject']`, Value: "${subject}", Description: "Fill subject field"},
		{Kind: entity.ActionFill, Selector: `div[aria-label='Message body']`, Value: "${body}", Description: "Fill body field"},
		{Kind: entity.ActionClick, Selector: `button[aria-label='Send']`, Description: "Click send button"},
	},
}

// StaticPlanner emits a fixed per-service compose sequence. It accepts the
// page markup only for port compatibility; a page-aware planner would use it
// to locate elements instead of relying on hardcoded selectors.
type StaticPlanner struct {
	logger output.LoggerPort
}

func NewStaticPlanner(logger output.LoggerPort) *StaticPlanner {
	return &StaticPlanner{logger: logger}
}

// Plan is a pure function of the goal: same goal, same sequence.
func (p *StaticPlanner) Plan(ctx context.Context, markup, goal string) ([]entity.Action, error) {
	p.logger.Info("Planning actions", "goal", goal, "markupLen", len(markup))

	service := entity.ServiceGmail
	if strings.Contains(strings.ToLower(goal), string(entity.ServiceOutlook)) {
		service = entity.ServiceOutlook
	}

	table := selectorTables[service]

	// Callers get their own copy so the table stays immutable.
	actions := make([]entity.Action, len(table))
	copy(actions, table)
	return actions, nil
}
