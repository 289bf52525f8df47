package solin

import (
	"context"
	"fmt"
	"strings"
)

// Intent is a structured action resolved from free text.
type Intent struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
}

// startPhrases are the canonical high-frequency commands resolved without a
// network call. Matching is a case-insensitive substring test, first match
// wins.
var startPhrases = []string{
	"start expense tracker",
	"open expense tracker",
	"launch expense tracker",
	"begin expense tracker",
	"start my expense tracker",
	"get started with expense tracker",
	"start the expense tracker",
}

// instructionHeader is the static preamble sent ahead of the raw user text.
// It pins the reply to a single JSON object so Extract can recover it from
// whatever narration the model wraps around it.
const instructionHeader = `You translate requests to a personal expense tracker into a single JSON object:
{"action": "<action>", "params": {...}}

Known actions and their params:
- add_expense: amount (number), description, category (optional), date (optional), time (optional)
- view_expense: date (optional), category (optional), mode ("view" or "preview")
- edit_expense: category, entry (number), field (amount|description|date|time|category), value
- delete_expense: category, entry (number), confirm (boolean)
- manage_category: category, action ("clear" or "delete")
- expense_status: no params
- set_budget: category, budget (number)
- view_budget: mode ("all" or "specific"), category (when specific)
- delete_budget: category, confirm (boolean)
- remember: key, value
- recall: key
- forget: key
- show_datetime: no params

Dates may be natural references like "yesterday" or "last monday"; pass them
through verbatim. Reply with exactly one JSON object and nothing else.`

// Resolver turns free text into an Intent: a deterministic fast path for
// canonical phrases, then the inference service plus the structured-object
// extractor for everything else.
type Resolver struct {
	Generator Generator
}

// Resolve returns the intent for the given input. Failures are always
// recoverable: the caller reports "could not understand" and prompts again.
func (r *Resolver) Resolve(ctx context.Context, input string) (*Intent, error) {
	lowered := strings.ToLower(input)
	for _, phrase := range startPhrases {
		if strings.Contains(lowered, phrase) {
			return &Intent{Action: "start_expense_tracker", Params: map[string]any{}}, nil
		}
	}

	prompt := fmt.Sprintf(
		"%s\n\nInterpret the following user request and return a JSON object describing the action.\n### User Input:\n%s",
		instructionHeader, strings.TrimSpace(input))

	reply, err := r.Generator.Generate(ctx, prompt)
	if err != nil {
		// No response is "could not resolve", never "no action requested".
		return nil, fmt.Errorf("%w: %v", ErrUnresolved, err)
	}

	obj, err := Extract(reply)
	if err != nil {
		return nil, err
	}

	action, _ := obj["action"].(string)
	if action == "" {
		return nil, fmt.Errorf("object has no action: %w", ErrMalformedObject)
	}
	params, _ := obj["params"].(map[string]any)
	if params == nil {
		params = map[string]any{}
	}
	return &Intent{Action: action, Params: params}, nil
}
