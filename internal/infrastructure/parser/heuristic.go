package parser

import (
	"context"
	"strings"
	"unicode"

	"webmail-agent/internal/application/port/output"
	"webmail-agent/internal/domain/entity"
)

// Defaults used for any field the instruction does not mention.
const (
	DefaultRecipient = "test@example.com"
	DefaultSubject   = "Automated Email"
	DefaultBody      = "This is an automated email sent by the webmail agent."
)

var _ output.InstructionParserPort = (*HeuristicParser)(nil)

// HeuristicParser extracts email fields with substring triggers. Best-effort
// by design, not a correctness contract: a model-backed parser plugs into the
// same port when real instruction understanding is wanted.
type HeuristicParser struct {
	logger output.LoggerPort
}

func NewHeuristicParser(logger output.LoggerPort) *HeuristicParser {
	return &HeuristicParser{logger: logger}
}

// Parse never fails; unmatched fields fall back to the defaults.
func (p *HeuristicParser) Parse(ctx context.Context, instruction string) (*entity.EmailInstruction, error) {
	p.logger.Info("Parsing instruction", "instruction", instruction)

	parsed := &entity.EmailInstruction{
		Recipient: DefaultRecipient,
		Subject:   DefaultSubject,
		Body:      DefaultBody,
		Service:   entity.ServiceGmail,
	}

	lower := strings.ToLower(instruction)

	// The token right after the first "to " is a recipient candidate,
	// accepted only when it looks like an address.
	if _, rest, ok := strings.Cut(lower, "to "); ok {
		candidate, _, _ := strings.Cut(rest, " ")
		if strings.Contains(candidate, "@") {
			parsed.Recipient = candidate
		}
	}

	// Everything after "about " becomes the subject, stopping at the next
	// period or at the trailing "using <service>" clause.
	if _, rest, ok := strings.Cut(lower, "about "); ok {
		subject, _, _ := strings.Cut(rest, ".")
		subject, _, _ = strings.Cut(subject, " using ")
		parsed.Subject = capitalize(strings.TrimSpace(subject))
	}

	switch {
	case strings.Contains(lower, "gmail"):
		parsed.Service = entity.ServiceGmail
	case strings.Contains(lower, "outlook"):
		parsed.Service = entity.ServiceOutlook
	}

	return parsed, nil
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
