package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"webmail-agent/internal/application/port/output"
	"webmail-agent/internal/domain/entity"
	"webmail-agent/internal/infrastructure/parser"

	"github.com/sashabaranov/go-openai"
)

var _ output.InstructionParserPort = (*ParserAdapter)(nil)

// ParserAdapter asks an OpenRouter-hosted model to structure the instruction.
// Any failure (transport, empty response, malformed JSON) falls back to the
// heuristic parser so Parse keeps the never-fails contract.
type ParserAdapter struct {
	client   *openai.Client
	model    string
	fallback output.InstructionParserPort
	logger   output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://openrouter.ai/api/v1",
	}
}

func NewParserAdapter(cfg Config, fallback output.InstructionParserPort, logger output.LoggerPort) *ParserAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &ParserAdapter{
		client:   openai.NewClientWithConfig(config),
		model:    cfg.Model,
		fallback: fallback,
		logger:   logger,
	}
}

const systemPrompt = `You convert email-sending instructions into JSON.
Respond with exactly one JSON object, no other text:
{"recipient": string, "subject": string, "body": string, "service": "gmail" or "outlook"}
Leave a field as an empty string when the instruction does not mention it.`

func (a *ParserAdapter) Parse(ctx context.Context, instruction string) (*entity.EmailInstruction, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: instruction},
		},
		Temperature: 0.0,
	})
	if err != nil {
		a.logger.Warn("LLM parse failed, falling back to heuristics", "error", err)
		return a.fallback.Parse(ctx, instruction)
	}
	if len(resp.Choices) == 0 {
		a.logger.Warn("LLM returned no choices, falling back to heuristics")
		return a.fallback.Parse(ctx, instruction)
	}

	parsed, err := parseInstructionResponse(resp.Choices[0].Message.Content)
	if err != nil {
		a.logger.Warn("LLM response not parseable, falling back to heuristics", "error", err)
		return a.fallback.Parse(ctx, instruction)
	}

	a.logger.Info("Instruction parsed by model",
		"recipient", parsed.Recipient,
		"service", parsed.Service)
	return parsed, nil
}

// parseInstructionResponse extracts the first JSON object from the model
// output, tolerating prose around it.
func parseInstructionResponse(response string) (*entity.EmailInstruction, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var raw struct {
		Recipient string `json:"recipient"`
		Subject   string `json:"subject"`
		Body      string `json:"body"`
		Service   string `json:"service"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	parsed := &entity.EmailInstruction{
		Recipient: raw.Recipient,
		Subject:   raw.Subject,
		Body:      raw.Body,
		Service:   entity.ServiceGmail,
	}
	if strings.EqualFold(raw.Service, string(entity.ServiceOutlook)) {
		parsed.Service = entity.ServiceOutlook
	}

	if parsed.Recipient == "" {
		parsed.Recipient = parser.DefaultRecipient
	}
	if parsed.Subject == "" {
		parsed.Subject = parser.DefaultSubject
	}
	if parsed.Body == "" {
		parsed.Body = parser.DefaultBody
	}

	return parsed, nil
}
