package solin

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const budgetsDoc = "budgets"

// Budgets is the store of per-category budget ceilings. A missing key means
// "no budget set", which is distinct from a ceiling of zero (the document is
// seeded with zeros on first use).
type Budgets struct {
	store  Store
	limits map[string]Amount
	seeded bool // true when the document existed on open
}

// OpenBudgets loads the budgets document. A missing document yields an
// empty, unseeded store: the first Set seeds every registered category.
func OpenBudgets(store Store) (*Budgets, error) {
	b := &Budgets{store: store, limits: make(map[string]Amount)}
	err := store.Load(budgetsDoc, &b.limits)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, err
	}
	b.seeded = true
	return b, nil
}

// Limit returns the ceiling recorded for a category, matched
// case-insensitively. ok is false when no key is present at all. A nil
// Budgets behaves as "nothing budgeted".
func (b *Budgets) Limit(category string) (Amount, bool) {
	if b == nil {
		return Amount{}, false
	}
	for stored, limit := range b.limits {
		if strings.EqualFold(stored, category) {
			return limit, true
		}
	}
	return Amount{}, false
}

// SetResult reports a budget mutation: Action is "set" when the previous
// ceiling was zero or absent, "updated" otherwise.
type SetResult struct {
	Category string
	Limit    Amount
	Action   string
}

// Set records a budget ceiling for a registered category. Unregistered
// categories are rejected with the list of valid names. On the very first
// use the document is seeded with a zero ceiling for every registered
// category before the requested ceiling is applied.
func (b *Budgets) Set(category string, limit Amount, registry *Categories) (*SetResult, error) {
	stored, ok := registry.Resolve(category)
	if !ok {
		return nil, fmt.Errorf("%q is not a valid category, valid categories are: %s: %w",
			category, strings.Join(registry.Names(), ", "), ErrNotFound)
	}
	if limit.IsNegative() {
		return nil, fmt.Errorf("budget must not be negative: %w", ErrValidation)
	}

	if !b.seeded {
		for _, name := range registry.Names() {
			if _, present := b.limits[name]; !present {
				b.limits[name] = Amount{}
			}
		}
		b.seeded = true
	}

	action := "set"
	if previous, present := b.limits[stored]; present && !previous.IsZero() {
		action = "updated"
	}
	b.limits[stored] = limit

	if err := b.store.Save(budgetsDoc, b.limits); err != nil {
		return nil, err
	}
	return &SetResult{Category: stored, Limit: limit, Action: action}, nil
}

// All returns every recorded ceiling keyed by category, plus the count.
func (b *Budgets) All() (map[string]Amount, int) {
	limits := make(map[string]Amount, len(b.limits))
	for category, limit := range b.limits {
		limits[category] = limit
	}
	return limits, len(limits)
}

// Names returns the budgeted category names, sorted.
func (b *Budgets) Names() []string {
	names := make([]string, 0, len(b.limits))
	for name := range b.limits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the ceiling of one category, or an error when none is set.
func (b *Budgets) Get(category string) (Amount, error) {
	limit, ok := b.Limit(category)
	if !ok {
		return Amount{}, fmt.Errorf("no budget for category %q: %w", category, ErrNotFound)
	}
	return limit, nil
}

// BudgetDeleteResult reports a budget delete, or that confirmation is still
// pending.
type BudgetDeleteResult struct {
	ConfirmationRequired bool
	Category             string
	Deleted              Amount
}

// Delete removes a category's ceiling, under the same confirmation protocol
// as ledger entry deletion: without confirm nothing is mutated.
func (b *Budgets) Delete(category string, confirm bool) (*BudgetDeleteResult, error) {
	var stored string
	for name := range b.limits {
		if strings.EqualFold(name, category) {
			stored = name
			break
		}
	}
	if stored == "" {
		return nil, fmt.Errorf("category %q not found in budgets: %w", category, ErrNotFound)
	}
	if !confirm {
		return &BudgetDeleteResult{ConfirmationRequired: true, Category: stored}, nil
	}

	deleted := b.limits[stored]
	delete(b.limits, stored)
	if err := b.store.Save(budgetsDoc, b.limits); err != nil {
		return nil, err
	}
	return &BudgetDeleteResult{Category: stored, Deleted: deleted}, nil
}
