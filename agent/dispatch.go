package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/solin"
	"github.com/etnz/solin/date"
	"github.com/etnz/solin/renderer"
)

// Dispatcher executes resolved intents against the ledger. It owns all the
// interactive parts the core delegates: confirmation prompting and the
// manual classification fallback. Each dispatch opens the stores fresh, so
// every mutation is a full load-mutate-persist cycle.
type Dispatcher struct {
	Store     solin.Store
	Generator solin.Generator

	// Confirm asks the user to approve a destructive operation. When nil,
	// pending confirmations are reported back instead of prompted for.
	Confirm func(prompt string) bool
	// Choose is the manual classification fallback.
	Choose solin.Chooser

	Log *ActivityLog
}

// Dispatch executes one intent and returns the rendered outcome. The input
// text is only used for logging.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, intent *solin.Intent) (string, error) {
	output, err := d.dispatch(ctx, intent)
	if err != nil {
		d.Log.Failure(input, intent.Action, intent.Params, err)
		return "", err
	}
	d.Log.Command(input, intent.Action, intent.Params, output)
	return output, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, intent *solin.Intent) (string, error) {
	p := params(intent.Params)

	switch intent.Action {
	case "start_expense_tracker":
		return intro, nil

	case "add_expense":
		return d.addExpense(ctx, p)

	case "view_expense":
		return d.viewExpense(p)

	case "edit_expense":
		ledger, err := solin.OpenLedger(d.Store)
		if err != nil {
			return "", err
		}
		field, err := solin.ParseField(p.text("field"))
		if err != nil {
			return "", err
		}
		result, err := ledger.Edit(p.text("category"), p.number("entry"), field, p.text("value"))
		if err != nil {
			return "", err
		}
		return renderer.Edit(result), nil

	case "delete_expense":
		return d.deleteExpense(p)

	case "manage_category":
		ledger, err := solin.OpenLedger(d.Store)
		if err != nil {
			return "", err
		}
		action, err := solin.ParseCategoryAction(p.text("action"))
		if err != nil {
			return "", err
		}
		taken, err := ledger.ManageCategory(p.text("category"), action)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Category %q %s.\n", p.text("category"), taken), nil

	case "expense_status":
		ledger, err := solin.OpenLedger(d.Store)
		if err != nil {
			return "", err
		}
		return renderer.Status(ledger.Status()), nil

	case "set_budget":
		budgets, err := solin.OpenBudgets(d.Store)
		if err != nil {
			return "", err
		}
		registry, err := solin.OpenCategories(d.Store)
		if err != nil {
			return "", err
		}
		limit, err := solin.ParseAmount(p.text("budget"))
		if err != nil {
			return "", err
		}
		result, err := budgets.Set(p.text("category"), limit, registry)
		if err != nil {
			return "", err
		}
		return renderer.BudgetSet(result), nil

	case "view_budget":
		return d.viewBudget(p)

	case "delete_budget":
		budgets, err := solin.OpenBudgets(d.Store)
		if err != nil {
			return "", err
		}
		result, err := budgets.Delete(p.text("category"), p.boolean("confirm"))
		if err != nil {
			return "", err
		}
		if result.ConfirmationRequired && d.Confirm != nil {
			if d.Confirm(fmt.Sprintf("Delete the budget of %q?", result.Category)) {
				result, err = budgets.Delete(result.Category, true)
				if err != nil {
					return "", err
				}
			}
		}
		return renderer.BudgetDelete(result), nil

	case "remember":
		memory, err := solin.OpenMemory(d.Store)
		if err != nil {
			return "", err
		}
		if err := memory.Remember(p.text("key"), p.text("value")); err != nil {
			return "", err
		}
		return fmt.Sprintf("Remembered %q.\n", p.text("key")), nil

	case "recall":
		memory, err := solin.OpenMemory(d.Store)
		if err != nil {
			return "", err
		}
		value, ok := memory.Recall(p.text("key"))
		if !ok {
			return fmt.Sprintf("Nothing remembered for %q.\n", p.text("key")), nil
		}
		return fmt.Sprintf("%s: %s\n", p.text("key"), value), nil

	case "forget":
		memory, err := solin.OpenMemory(d.Store)
		if err != nil {
			return "", err
		}
		forgot, err := memory.Forget(p.text("key"))
		if err != nil {
			return "", err
		}
		if !forgot {
			return fmt.Sprintf("Nothing remembered for %q.\n", p.text("key")), nil
		}
		return fmt.Sprintf("Forgot %q.\n", p.text("key")), nil

	case "show_datetime":
		now := time.Now()
		return fmt.Sprintf("Today is %s, %s. The time is %s.\n",
			now.Weekday(), now.Format(date.DateFormat), now.Format("15:04:05")), nil

	default:
		return "", fmt.Errorf("action %q: %w", intent.Action, solin.ErrUnresolved)
	}
}

func (d *Dispatcher) addExpense(ctx context.Context, p params) (string, error) {
	ledger, err := solin.OpenLedger(d.Store)
	if err != nil {
		return "", err
	}
	budgets, err := solin.OpenBudgets(d.Store)
	if err != nil {
		return "", err
	}

	amount, err := solin.ParseAmount(p.text("amount"))
	if err != nil {
		return "", err
	}
	description := p.text("description")

	category := p.text("category")
	if category == "" {
		registry, err := solin.OpenCategories(d.Store)
		if err != nil {
			return "", err
		}
		classifier := &solin.Classifier{Generator: d.Generator, Chooser: d.Choose}
		classification, err := classifier.Classify(ctx, description, registry)
		if err != nil {
			return "", err
		}
		category = classification.Category
	}

	on, err := d.resolveDate(p.text("date"))
	if err != nil {
		return "", err
	}

	result, err := ledger.Append(category, amount, description, on, p.text("time"), budgets)
	if err != nil {
		return "", err
	}
	return renderer.Append(result), nil
}

func (d *Dispatcher) viewExpense(p params) (string, error) {
	ledger, err := solin.OpenLedger(d.Store)
	if err != nil {
		return "", err
	}

	on, err := d.resolveDate(p.text("date"))
	if err != nil {
		return "", err
	}

	if p.text("mode") == "preview" {
		preview, err := ledger.Preview(p.text("category"), on)
		if err != nil {
			return "", err
		}
		return renderer.PreviewTable(preview), nil
	}
	if on.IsZero() {
		return renderer.View(ledger.All()), nil
	}
	return renderer.View(ledger.OnDate(on)), nil
}

func (d *Dispatcher) deleteExpense(p params) (string, error) {
	ledger, err := solin.OpenLedger(d.Store)
	if err != nil {
		return "", err
	}
	result, err := ledger.Delete(p.text("category"), p.number("entry"), p.boolean("confirm"))
	if err != nil {
		return "", err
	}
	if result.ConfirmationRequired && d.Confirm != nil {
		if d.Confirm(fmt.Sprintf("Delete entry %d of %q?", result.Entry, result.Category)) {
			result, err = ledger.Delete(result.Category, result.Entry, true)
			if err != nil {
				return "", err
			}
		}
	}
	return renderer.Delete(result), nil
}

func (d *Dispatcher) viewBudget(p params) (string, error) {
	budgets, err := solin.OpenBudgets(d.Store)
	if err != nil {
		return "", err
	}
	switch mode := p.text("mode"); mode {
	case "", "all":
		limits, count := budgets.All()
		return renderer.BudgetAll(limits, count), nil
	case "specific":
		category := p.text("category")
		limit, err := budgets.Get(category)
		if err != nil {
			return "", err
		}
		return renderer.Budget(category, limit), nil
	default:
		return "", fmt.Errorf("mode %q, want all or specific: %w", mode, solin.ErrValidation)
	}
}

// resolveDate turns an optional date parameter into a calendar date: empty
// means "no date", natural references resolve relative to today, anything
// else must be a strict calendar date.
func (d *Dispatcher) resolveDate(value string) (date.Date, error) {
	if value == "" {
		return date.Date{}, nil
	}
	if on, ok := date.Resolve(value, date.Today()); ok {
		return on, nil
	}
	on, err := date.Parse(value)
	if err != nil {
		return date.Date{}, fmt.Errorf("%v: %w", err, solin.ErrValidation)
	}
	return on, nil
}

// params wraps the loosely typed intent parameters with tolerant accessors:
// generated objects routinely carry numbers as strings and booleans as
// "true".
type params map[string]any

func (p params) text(key string) string {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (p params) number(key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func (p params) boolean(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true") || strings.EqualFold(strings.TrimSpace(v), "yes")
	default:
		return false
	}
}

const intro = `# Expense tracker

Tell me what you spent and I will log it, for example:
"I paid 250 for lunch yesterday". You can also view, edit or delete
expenses, set budgets per category, and ask for a status summary.
`
