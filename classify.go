package solin

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Generator produces text from a prompt, optionally stopping at the given
// sequences. Implemented by ollama.Client; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string, stop ...string) (string, error)
}

// Chooser resolves an ambiguous classification by picking one candidate.
// It returns the 0-based index of the chosen candidate. The interactive
// dispatcher supplies one that enumerates the candidates and blocks on a
// numeric selection.
type Chooser func(description string, candidates []string) (int, error)

// Classification is the outcome of categorizing an expense description.
// A result is accepted automatically only on an exact match against the
// registry; anything else routes through the Chooser, so Confidence is
// always 1.0 and the category always comes from the closed set.
type Classification struct {
	Category   string
	Confidence float64
	Manual     bool
}

// Classifier assigns a registered category to a free-text expense
// description.
type Classifier struct {
	Generator Generator
	Chooser   Chooser
}

// Classify prompts the inference service with the exact category names and
// the description, stopping at the first line break. A trimmed reply that
// matches a registered name (resolved to its stored spelling) is accepted
// with confidence 1.0. On any mismatch or service failure the Chooser
// decides; the classifier never invents a category outside the registry.
func (c *Classifier) Classify(ctx context.Context, description string, registry *Categories) (*Classification, error) {
	names := registry.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("no categories registered: %w", ErrNotFound)
	}

	prompt := fmt.Sprintf(
		"Categorize the following expense into one of the predefined categories.\n"+
			"Categories: [%s]\n\n"+
			"User Input: %q\n\n"+
			"Respond with only the category name as a plain text line.",
		strings.Join(names, ", "), description)

	reply, err := c.Generator.Generate(ctx, prompt, "\n")
	if err == nil {
		if category, ok := registry.Resolve(strings.TrimSpace(reply)); ok {
			return &Classification{Category: category, Confidence: 1.0}, nil
		}
		log.Printf("classifier reply %q is not a registered category", strings.TrimSpace(reply))
	} else {
		log.Printf("classification call failed: %v", err)
	}

	// No silent best guess: fall back to an explicit manual choice.
	if c.Chooser == nil {
		return nil, fmt.Errorf("classification failed and no manual fallback is available: %w", ErrUnresolved)
	}
	choice, err := c.Chooser(description, names)
	if err != nil {
		return nil, err
	}
	if choice < 0 || choice >= len(names) {
		return nil, fmt.Errorf("choice %d of %d candidates: %w", choice, len(names), ErrValidation)
	}
	return &Classification{Category: names[choice], Confidence: 1.0, Manual: true}, nil
}
