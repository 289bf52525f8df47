package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/solin"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type editCmd struct {
	category string
	entry    int
	field    string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit one field of a logged expense" }
func (*editCmd) Usage() string {
	return `solin edit -c <category> -n <entry> -f <field> <value...>

  Edits one entry in place. The entry number is its position in the current
  preview of the category ('solin view -c <category> -p'). Valid fields are
  amount, description, date, time and category; editing the category moves
  the entry to the target category.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category of the entry.")
	f.IntVar(&c.entry, "n", 0, "1-based entry number within the category.")
	f.StringVar(&c.field, "f", "", "Field to change: amount, description, date, time or category.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" || c.entry == 0 || c.field == "" || f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: -c, -n, -f and a new value are all required.")
		return subcommands.ExitUsageError
	}
	field, err := solin.ParseField(c.field)
	if err != nil {
		return fail(err)
	}

	ledger, err := solin.OpenLedger(openStore())
	if err != nil {
		return fail(err)
	}
	result, err := ledger.Edit(c.category, c.entry, field, strings.Join(f.Args(), " "))
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Edit(result))
	return subcommands.ExitSuccess
}
