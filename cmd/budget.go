package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/solin"
	"github.com/etnz/solin/agent"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type budgetCmd struct {
	yes bool
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set, view or delete per-category budgets" }
func (*budgetCmd) Usage() string {
	return `solin budget set <category> <amount>
solin budget view [<category>]
solin budget delete <category> [-y]

  Budgets are ceilings per registered category. Setting the first budget
  seeds every registered category with a zero ceiling. 'view' without a
  category lists all ceilings.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Delete without asking for confirmation.")
}

func (c *budgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := openStore()
	budgets, err := solin.OpenBudgets(store)
	if err != nil {
		return fail(err)
	}

	switch f.Arg(0) {
	case "set":
		if f.NArg() < 3 {
			fmt.Fprintln(os.Stderr, "Error: want a category and an amount.")
			return subcommands.ExitUsageError
		}
		limit, err := solin.ParseAmount(f.Arg(2))
		if err != nil {
			return fail(err)
		}
		registry, err := solin.OpenCategories(store)
		if err != nil {
			return fail(err)
		}
		result, err := budgets.Set(f.Arg(1), limit, registry)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.BudgetSet(result))
		return subcommands.ExitSuccess

	case "", "view":
		if f.NArg() >= 2 {
			limit, err := budgets.Get(f.Arg(1))
			if err != nil {
				return fail(err)
			}
			printMarkdown(renderer.Budget(f.Arg(1), limit))
			return subcommands.ExitSuccess
		}
		limits, count := budgets.All()
		printMarkdown(renderer.BudgetAll(limits, count))
		return subcommands.ExitSuccess

	case "delete":
		if f.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: want a category name.")
			return subcommands.ExitUsageError
		}
		result, err := budgets.Delete(f.Arg(1), c.yes)
		if err != nil {
			return fail(err)
		}
		if result.ConfirmationRequired {
			confirm := agent.TerminalConfirm(os.Stdout, bufio.NewReader(os.Stdin))
			if confirm(renderer.BudgetDelete(result)) {
				result, err = budgets.Delete(result.Category, true)
				if err != nil {
					return fail(err)
				}
			}
		}
		printMarkdown(renderer.BudgetDelete(result))
		return subcommands.ExitSuccess

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}
