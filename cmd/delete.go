package cmd

import (
	"bufio"
	"context"
	"flag"
	"os"

	"github.com/etnz/solin"
	"github.com/etnz/solin/agent"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type deleteCmd struct {
	category string
	entry    int
	yes      bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete one logged expense" }
func (*deleteCmd) Usage() string {
	return `solin delete -c <category> -n <entry> [-y]

  Deletes one entry. Without -y a confirmation is asked first; the store is
  untouched until the delete is confirmed.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category of the entry.")
	f.IntVar(&c.entry, "n", 0, "1-based entry number within the category.")
	f.BoolVar(&c.yes, "y", false, "Delete without asking for confirmation.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := solin.OpenLedger(openStore())
	if err != nil {
		return fail(err)
	}

	result, err := ledger.Delete(c.category, c.entry, c.yes)
	if err != nil {
		return fail(err)
	}
	if result.ConfirmationRequired {
		confirm := agent.TerminalConfirm(os.Stdout, bufio.NewReader(os.Stdin))
		if confirm(renderer.Delete(result)) {
			result, err = ledger.Delete(result.Category, result.Entry, true)
			if err != nil {
				return fail(err)
			}
		}
	}
	printMarkdown(renderer.Delete(result))
	return subcommands.ExitSuccess
}
