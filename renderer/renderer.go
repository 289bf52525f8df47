// Package renderer turns operation results into markdown. The core never
// prints; commands and the assistant render these strings to the terminal.
package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/solin"
	md "github.com/nao1215/markdown"
)

// entryColumns is the header shared by every entry table.
var entryColumns = []string{"#", "Amount", "Description", "Date", "Time"}

// entryAlignment right-aligns the number and amount columns.
var entryAlignment = []md.TableAlignment{
	md.AlignRight,
	md.AlignRight,
	md.AlignLeft,
	md.AlignLeft,
	md.AlignLeft,
}

// Append renders the stored record and its derived aggregates.
func Append(r *solin.AppendResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.PlainText(fmt.Sprintf("Logged %s under %s: %s (%s %s)",
		r.Entry.Amount, md.Bold(r.Category), r.Entry.Description, r.Entry.Date, r.Entry.Time))

	lines := []string{
		fmt.Sprintf("%s total: %s", r.Category, r.CategoryTotal),
		fmt.Sprintf("Overall total: %s", r.TotalExpense),
	}
	switch {
	case !r.OverBudget.IsZero():
		lines = append(lines, md.Bold(fmt.Sprintf("Over budget by %s (ceiling %s)", r.OverBudget, r.BudgetLimit)))
	case !r.BudgetLimit.IsZero():
		lines = append(lines, fmt.Sprintf("Budget remaining: %s of %s", r.Remaining, r.BudgetLimit))
	}
	doc.BulletList(lines...)

	return doc.String()
}

// View renders a grouped listing of expenses with its grand total.
func View(v *solin.ViewResult) string {
	if len(v.Expenses) == 0 {
		return fmt.Sprintf("No expenses found for %s.\n", v.Filter)
	}

	categories := make([]string, 0, len(v.Expenses))
	for category := range v.Expenses {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Expenses (%s)", v.Filter))
	for _, category := range categories {
		entries := v.Expenses[category]
		if len(entries) == 0 {
			continue
		}
		doc.H2(category)
		doc.Table(md.TableSet{
			Alignment: entryAlignment,
			Header:    entryColumns,
			Rows:      entryRows(entries),
		})
	}
	doc.PlainText(md.Bold(fmt.Sprintf("Total: %s", v.Total)))
	return doc.String()
}

// PreviewTable renders the re-numbered entries of one category.
func PreviewTable(p *solin.Preview) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("%s (%s)", p.Category, p.Filter))
	if len(p.Entries) == 0 {
		doc.PlainText("No matching entries.")
		return doc.String()
	}

	rows := make([][]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		rows = append(rows, []string{
			fmt.Sprint(e.Index), e.Amount.String(), e.Description, e.Date.String(), e.Time,
		})
	}
	doc.Table(md.TableSet{
		Alignment: entryAlignment,
		Header:    entryColumns,
		Rows:      rows,
	})
	return doc.String()
}

// entryRows numbers the entries of one category from 1.
func entryRows(entries []solin.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			fmt.Sprint(i + 1), e.Amount.String(), e.Description, e.Date.String(), e.Time,
		})
	}
	return rows
}

// Edit renders a completed edit.
func Edit(r *solin.EditResult) string {
	return fmt.Sprintf("Updated %s of entry %d in **%s** to %q.\n", r.Field, r.Entry, r.Category, r.NewValue)
}

// Delete renders a completed (or pending) entry delete.
func Delete(r *solin.DeleteResult) string {
	if r.ConfirmationRequired {
		return fmt.Sprintf("Deleting entry %d of **%s** needs confirmation.\n", r.Entry, r.Category)
	}
	return fmt.Sprintf("Deleted entry %d of **%s**: %s (%s).\n",
		r.Entry, r.Category, r.Deleted.Description, r.Deleted.Amount)
}

// BudgetSet renders a budget set/update.
func BudgetSet(r *solin.SetResult) string {
	return fmt.Sprintf("Budget %s for **%s**: %s\n", r.Action, r.Category, r.Limit)
}

// BudgetAll renders every ceiling with a count.
func BudgetAll(limits map[string]solin.Amount, count int) string {
	if count == 0 {
		return "No budgets have been set yet.\n"
	}
	names := make([]string, 0, count)
	for name := range limits {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, count)
	for _, name := range names {
		rows = append(rows, []string{name, limits[name].String()})
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Budgets (%d categories)", count))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Category", "Ceiling"},
		Rows:      rows,
	})
	return doc.String()
}

// Budget renders a single category ceiling.
func Budget(category string, limit solin.Amount) string {
	return fmt.Sprintf("Budget for **%s**: %s\n", category, limit)
}

// BudgetDelete renders a completed (or pending) budget delete.
func BudgetDelete(r *solin.BudgetDeleteResult) string {
	if r.ConfirmationRequired {
		return fmt.Sprintf("Deleting the budget of **%s** needs confirmation.\n", r.Category)
	}
	return fmt.Sprintf("Deleted budget of **%s** (was %s).\n", r.Category, r.Deleted)
}

// Status renders the ledger summary.
func Status(s *solin.LedgerStatus) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Expense status")
	lines := []string{
		fmt.Sprintf("Entries: %d", s.Entries),
		fmt.Sprintf("Categories: %d", s.Categories),
		fmt.Sprintf("Total spent: %s", s.TotalSpent),
	}
	if !s.LastEntryDate.IsZero() {
		lines = append(lines, fmt.Sprintf("Last entry: %s", s.LastEntryDate))
	}
	doc.BulletList(lines...)
	return doc.String()
}

// Rollover renders the outcome of an archival check.
func Rollover(r *solin.RolloverResult) string {
	if !r.Triggered {
		return fmt.Sprintf("Ledger already settled for %s.\n", r.Retained)
	}
	if len(r.ArchivedMonths) == 0 {
		return fmt.Sprintf("Rollover complete, nothing to archive; retaining %s.\n", r.Retained)
	}
	return fmt.Sprintf("Rollover complete. Archived: %s. Retaining %s.\n",
		strings.Join(r.ArchivedMonths, ", "), r.Retained)
}

// Categories renders the registry with its descriptions.
func Categories(registry *solin.Categories) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Categories")
	lines := make([]string, 0, len(registry.Names()))
	for _, name := range registry.Names() {
		desc, _ := registry.Description(name)
		lines = append(lines, fmt.Sprintf("%s: %s", md.Bold(name), desc))
	}
	doc.BulletList(lines...)
	return doc.String()
}
