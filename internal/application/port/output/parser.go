package output

import (
	"context"

	"webmail-agent/internal/domain/entity"
)

// InstructionParserPort converts unstructured intent into a structured send
// command. Implementations range from substring heuristics to model-backed
// parsing; the orchestrator does not care which one it gets.
type InstructionParserPort interface {
	Parse(ctx context.Context, instruction string) (*entity.EmailInstruction, error)
}
