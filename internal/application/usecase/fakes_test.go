package usecase

import (
	"context"
	"fmt"
	"time"

	"webmail-agent/internal/application/port/output"
	"webmail-agent/internal/domain/entity"
)

type fillCall struct {
	Selector string
	Text     string
}

// fakeBrowser records every page operation in order and fails on demand.
type fakeBrowser struct {
	ops   []string
	fills []fillCall
	waits int

	navigateErr   error
	contentErr    error
	screenshotErr error
	clickErr      map[string]error
	fillErr       map[string]error

	html       string
	closeCount int
}

var _ output.BrowserPort = (*fakeBrowser)(nil)

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error {
	f.ops = append(f.ops, "navigate:"+url)
	return f.navigateErr
}

func (f *fakeBrowser) Click(ctx context.Context, selector string) error {
	f.ops = append(f.ops, "click:"+selector)
	return f.clickErr[selector]
}

func (f *fakeBrowser) Fill(ctx context.Context, selector, text string) error {
	f.ops = append(f.ops, "fill:"+selector)
	f.fills = append(f.fills, fillCall{Selector: selector, Text: text})
	return f.fillErr[selector]
}

func (f *fakeBrowser) Wait(ctx context.Context, d time.Duration) error {
	f.waits++
	return ctx.Err()
}

func (f *fakeBrowser) Content(ctx context.Context) (*entity.PageContent, error) {
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	return &entity.PageContent{URL: "https://example.com", Title: "fake", HTML: f.html}, nil
}

func (f *fakeBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if f.screenshotErr != nil {
		return nil, f.screenshotErr
	}
	return &entity.Screenshot{Data: []byte("fake-jpeg"), Format: "jpeg", Width: 1, Height: 1}, nil
}

func (f *fakeBrowser) CurrentURL() string {
	return "https://example.com"
}

func (f *fakeBrowser) Close() {
	f.closeCount++
}

type fakeParser struct {
	instruction *entity.EmailInstruction
	err         error
	got         string
}

var _ output.InstructionParserPort = (*fakeParser)(nil)

func (f *fakeParser) Parse(ctx context.Context, instruction string) (*entity.EmailInstruction, error) {
	f.got = instruction
	if f.err != nil {
		return nil, f.err
	}
	return f.instruction, nil
}

type fakePlanner struct {
	actions   []entity.Action
	err       error
	gotMarkup string
	gotGoal   string
}

var _ output.ActionPlannerPort = (*fakePlanner)(nil)

func (f *fakePlanner) Plan(ctx context.Context, markup, goal string) ([]entity.Action, error) {
	f.gotMarkup = markup
	f.gotGoal = goal
	if f.err != nil {
		return nil, f.err
	}
	return f.actions, nil
}

func gmailActions() []entity.Action {
	return []entity.Action{
		{Kind: entity.ActionClick, Selector: "sel-compose", Description: "Click compose button"},
		{Kind: entity.ActionFill, Selector: "sel-to", Value: "${recipient}", Description: "Fill recipient field"},
		{Kind: entity.ActionFill, Selector: "sel-subject", Value: "${subject}", Description: "Fill subject field"},
		{Kind: entity.ActionFill, Selector: "sel-body", Value: "${body}", Description: "Fill body field"},
		{Kind: entity.ActionClick, Selector: "sel-send", Description: "Click send button"},
	}
}

func errFor(msg string) error {
	return fmt.Errorf("%s", msg)
}
