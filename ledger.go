package solin

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/etnz/solin/date"
)

const expensesDoc = "expenses"

// ClockFormat is the format used to represent times of day in the ledger.
const ClockFormat = "15:04"

// Entry is a single expense record. Entries have no stable identifier: they
// are addressed by their category and their 1-based position in that
// category's sequence, recomputed on every read.
type Entry struct {
	Amount      Amount    `json:"amount"`
	Description string    `json:"description"`
	Date        date.Date `json:"date"`
	Time        string    `json:"time"`
}

// Ledger is the live store of categorized expense records. Each category
// holds its entries in insertion order; the order matters for entry-number
// addressing and is irrelevant for totals.
type Ledger struct {
	store      Store
	categories map[string][]Entry
}

// OpenLedger loads the ledger from the store. A missing document yields an
// empty ledger.
func OpenLedger(store Store) (*Ledger, error) {
	l := &Ledger{store: store, categories: make(map[string][]Entry)}
	err := store.Load(expensesDoc, &l.categories)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) save() error {
	return l.store.Save(expensesDoc, l.categories)
}

// resolve matches a category case-insensitively against the ledger and
// returns the stored spelling.
func (l *Ledger) resolve(category string) (string, bool) {
	for stored := range l.categories {
		if strings.EqualFold(stored, category) {
			return stored, true
		}
	}
	return "", false
}

// CategoryNames returns the ledger's category names, sorted.
func (l *Ledger) CategoryNames() []string {
	names := make([]string, 0, len(l.categories))
	for name := range l.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// categoryTotal sums all amounts recorded under a category.
func (l *Ledger) categoryTotal(category string) Amount {
	var total Amount
	for _, e := range l.categories[category] {
		total = total.Add(e.Amount)
	}
	return total
}

// total sums all amounts across all categories.
func (l *Ledger) total() Amount {
	var total Amount
	for category := range l.categories {
		total = total.Add(l.categoryTotal(category))
	}
	return total
}

// AppendResult is the stored record plus the aggregates derived by a full
// rescan after the append. OverBudget and Remaining are computed against the
// category's budget ceiling: at most one of them is non-zero, and both are
// zero when no ceiling is set. Remaining reflects the room left after this
// expense, not before it.
type AppendResult struct {
	Category      string
	Entry         Entry
	CategoryTotal Amount
	TotalExpense  Amount
	BudgetLimit   Amount
	OverBudget    Amount
	Remaining     Amount
}

// Append records one expense under a category, creating the category
// implicitly if it is new, and persists the store. Date and time default to
// now when zero. The amount must be positive and the description non-empty.
func (l *Ledger) Append(category string, amount Amount, description string, on date.Date, at string, budgets *Budgets) (*AppendResult, error) {
	category = strings.TrimSpace(category)
	description = strings.TrimSpace(description)
	if category == "" {
		return nil, fmt.Errorf("category is required: %w", ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("description is required: %w", ErrValidation)
	}
	if on.IsZero() {
		on = date.Today()
	}
	if at == "" {
		at = time.Now().Format(ClockFormat)
	}

	// Reuse the stored spelling when the category already exists under a
	// different case.
	if stored, ok := l.resolve(category); ok {
		category = stored
	}

	entry := Entry{Amount: amount, Description: description, Date: on, Time: at}
	l.categories[category] = append(l.categories[category], entry)
	if err := l.save(); err != nil {
		return nil, err
	}

	result := &AppendResult{
		Category:      category,
		Entry:         entry,
		CategoryTotal: l.categoryTotal(category),
		TotalExpense:  l.total(),
	}
	if limit, ok := budgets.Limit(category); ok && !limit.IsZero() {
		result.BudgetLimit = limit
		if result.CategoryTotal.GreaterThan(limit) {
			result.OverBudget = result.CategoryTotal.Sub(limit)
		} else {
			result.Remaining = limit.Sub(result.CategoryTotal)
		}
	}
	return result, nil
}

// ViewResult groups entries by category with their grand total. Filter is
// "ALL" or the ISO date the view was filtered on.
type ViewResult struct {
	Expenses map[string][]Entry
	Total    Amount
	Filter   string
}

// All returns every category's full sequence and the grand total.
func (l *Ledger) All() *ViewResult {
	view := &ViewResult{Expenses: make(map[string][]Entry), Filter: "ALL"}
	for category, entries := range l.categories {
		view.Expenses[category] = append([]Entry(nil), entries...)
		view.Total = view.Total.Add(l.categoryTotal(category))
	}
	return view
}

// OnDate returns the entries recorded exactly on the given date, grouped by
// category, with the matching total. Categories without a match are omitted.
func (l *Ledger) OnDate(on date.Date) *ViewResult {
	view := &ViewResult{Expenses: make(map[string][]Entry), Filter: on.String()}
	for category, entries := range l.categories {
		var matching []Entry
		for _, e := range entries {
			if e.Date == on {
				matching = append(matching, e)
				view.Total = view.Total.Add(e.Amount)
			}
		}
		if len(matching) > 0 {
			view.Expenses[category] = matching
		}
	}
	return view
}

// PreviewEntry is an entry with its transient 1-based position in the
// preview.
type PreviewEntry struct {
	Index int
	Entry
}

// Preview is a re-numbered view of one category, for edit and delete flows.
type Preview struct {
	Category string
	Entries  []PreviewEntry
	Filter   string
}

// Preview lists one category's entries, optionally filtered to an exact
// date, with fresh 1-based numbering. Numbers are view-local: edits and
// deletes shift them, so callers must re-preview after every mutation.
func (l *Ledger) Preview(category string, on date.Date) (*Preview, error) {
	stored, ok := l.resolve(category)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", category, ErrNotFound)
	}

	preview := &Preview{Category: stored, Filter: "ALL"}
	if !on.IsZero() {
		preview.Filter = on.String()
	}
	index := 0
	for _, e := range l.categories[stored] {
		if !on.IsZero() && e.Date != on {
			continue
		}
		index++
		preview.Entries = append(preview.Entries, PreviewEntry{Index: index, Entry: e})
	}
	return preview, nil
}

// Field names an editable part of an entry.
type Field int

const (
	FieldAmount Field = iota
	FieldDescription
	FieldDate
	FieldTime
	FieldCategory
)

func (f Field) String() string {
	switch f {
	case FieldAmount:
		return "amount"
	case FieldDescription:
		return "description"
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldCategory:
		return "category"
	default:
		return "unknown"
	}
}

// ParseField parses a field name, restricted to the edit whitelist.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amount":
		return FieldAmount, nil
	case "description":
		return FieldDescription, nil
	case "date":
		return FieldDate, nil
	case "time":
		return FieldTime, nil
	case "category":
		return FieldCategory, nil
	default:
		return 0, fmt.Errorf("field %q: %w", s, ErrValidation)
	}
}

// EditResult reports a completed in-place edit.
type EditResult struct {
	Category string
	Entry    int
	Field    Field
	NewValue string
}

// Edit updates one field of one entry. The category is resolved
// case-insensitively and the entry number must be within [1, length].
// Amount edits are parsed and validated; category edits move the record to
// the target category's sequence (creating it if absent), changing entry
// numbers in both views; date edits must parse as calendar dates; time and
// description are literal replacements.
func (l *Ledger) Edit(category string, entry int, field Field, value string) (*EditResult, error) {
	stored, ok := l.resolve(category)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", category, ErrNotFound)
	}
	entries := l.categories[stored]
	if entry < 1 || entry > len(entries) {
		return nil, fmt.Errorf("entry %d of %d: %w", entry, len(entries), ErrNotFound)
	}

	switch field {
	case FieldAmount:
		amount, err := ParseAmount(value)
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", ErrValidation)
		}
		entries[entry-1].Amount = amount

	case FieldDescription:
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("description is required: %w", ErrValidation)
		}
		entries[entry-1].Description = value

	case FieldDate:
		on, err := date.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrValidation)
		}
		entries[entry-1].Date = on

	case FieldTime:
		entries[entry-1].Time = value

	case FieldCategory:
		target := strings.TrimSpace(value)
		if target == "" {
			return nil, fmt.Errorf("target category is required: %w", ErrValidation)
		}
		if existing, ok := l.resolve(target); ok {
			target = existing
		}
		moved := entries[entry-1]
		l.categories[stored] = append(entries[:entry-1], entries[entry:]...)
		l.categories[target] = append(l.categories[target], moved)

	default:
		return nil, fmt.Errorf("field %q: %w", field, ErrValidation)
	}

	if err := l.save(); err != nil {
		return nil, err
	}
	return &EditResult{Category: stored, Entry: entry, Field: field, NewValue: value}, nil
}

// DeleteResult reports a single-entry delete, or that confirmation is still
// pending. ConfirmationRequired is a state, not a failure: nothing was
// mutated and the caller is expected to re-ask with confirm set.
type DeleteResult struct {
	ConfirmationRequired bool
	Category             string
	Entry                int
	Deleted              *Entry
}

// Delete removes one entry by its 1-based number. Without confirm it
// performs nothing and reports that confirmation is required.
func (l *Ledger) Delete(category string, entry int, confirm bool) (*DeleteResult, error) {
	stored, ok := l.resolve(category)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", category, ErrNotFound)
	}
	entries := l.categories[stored]
	if entry < 1 || entry > len(entries) {
		return nil, fmt.Errorf("entry %d of %d: %w", entry, len(entries), ErrNotFound)
	}
	if !confirm {
		return &DeleteResult{ConfirmationRequired: true, Category: stored, Entry: entry}, nil
	}

	deleted := entries[entry-1]
	l.categories[stored] = append(entries[:entry-1], entries[entry:]...)
	if err := l.save(); err != nil {
		return nil, err
	}
	return &DeleteResult{Category: stored, Entry: entry, Deleted: &deleted}, nil
}

// CategoryAction is a destructive category-level operation.
type CategoryAction int

const (
	// ActionClear empties the category's sequence; the category persists.
	ActionClear CategoryAction = iota
	// ActionDelete removes the category key entirely.
	ActionDelete
)

func (a CategoryAction) String() string {
	switch a {
	case ActionClear:
		return "clear"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseCategoryAction parses "clear" or "delete".
func ParseCategoryAction(s string) (CategoryAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clear":
		return ActionClear, nil
	case "delete":
		return ActionDelete, nil
	default:
		return 0, fmt.Errorf("action %q, want clear or delete: %w", s, ErrValidation)
	}
}

// ManageCategory clears or deletes a whole category. Clearing an already
// empty category is rejected. It returns the past-tense action taken.
func (l *Ledger) ManageCategory(category string, action CategoryAction) (string, error) {
	stored, ok := l.resolve(category)
	if !ok {
		return "", fmt.Errorf("category %q: %w", category, ErrNotFound)
	}

	var taken string
	switch action {
	case ActionClear:
		if len(l.categories[stored]) == 0 {
			return "", fmt.Errorf("category %q is already empty: %w", stored, ErrValidation)
		}
		l.categories[stored] = []Entry{}
		taken = "cleared"
	case ActionDelete:
		delete(l.categories, stored)
		taken = "deleted"
	default:
		return "", fmt.Errorf("action %q: %w", action, ErrValidation)
	}

	if err := l.save(); err != nil {
		return "", err
	}
	return taken, nil
}

// LedgerStatus is an at-a-glance summary of the live ledger.
type LedgerStatus struct {
	Entries       int
	Categories    int
	TotalSpent    Amount
	LastEntryDate date.Date
}

// Status scans the whole ledger and summarizes it.
func (l *Ledger) Status() *LedgerStatus {
	status := &LedgerStatus{Categories: len(l.categories)}
	for _, entries := range l.categories {
		for _, e := range entries {
			status.Entries++
			status.TotalSpent = status.TotalSpent.Add(e.Amount)
			if status.LastEntryDate.IsZero() || e.Date.After(status.LastEntryDate) {
				status.LastEntryDate = e.Date
			}
		}
	}
	return status
}
