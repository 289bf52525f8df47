package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/solin"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type categoryCmd struct{}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "list the registry or clear/delete a ledger category" }
func (*categoryCmd) Usage() string {
	return `solin category [list | clear <category> | delete <category>]

  'list' shows the category registry used by the classifier and budgets.
  'clear' empties a ledger category but keeps it; 'delete' removes the
  category and its entries from the ledger entirely.
`
}

func (*categoryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *categoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := openStore()

	switch f.Arg(0) {
	case "", "list":
		registry, err := solin.OpenCategories(store)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.Categories(registry))
		return subcommands.ExitSuccess

	case "clear", "delete":
		if f.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: want a category name.")
			return subcommands.ExitUsageError
		}
		action, err := solin.ParseCategoryAction(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		ledger, err := solin.OpenLedger(store)
		if err != nil {
			return fail(err)
		}
		taken, err := ledger.ManageCategory(f.Arg(1), action)
		if err != nil {
			return fail(err)
		}
		printMarkdown(fmt.Sprintf("Category %q %s.\n", f.Arg(1), taken))
		return subcommands.ExitSuccess

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}
