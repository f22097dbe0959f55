package entity

import "strings"

type ActionKind string

const (
	ActionClick ActionKind = "click"
	ActionFill  ActionKind = "fill"
)

// Action is one declarative UI step. Value may contain ${name} placeholders
// that are resolved against Bindings at execution time. Actions are executed
// in slice order and never mutated.
type Action struct {
	Kind        ActionKind `json:"action"`
	Selector    string     `json:"selector"`
	Value       string     `json:"value,omitempty"`
	Description string     `json:"description"`
}

// Bindings maps placeholder names to concrete values for one send operation.
type Bindings map[string]string

// Resolve replaces every ${key} occurrence in s with the bound value.
// Placeholders without a binding are left verbatim.
func (b Bindings) Resolve(s string) string {
	for key, val := range b {
		s = strings.ReplaceAll(s, "${"+key+"}", val)
	}
	return s
}
