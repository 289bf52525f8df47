package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/solin"
	"github.com/etnz/solin/date"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type viewCmd struct {
	dateStr  string
	category string
	preview  bool
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "list logged expenses" }
func (*viewCmd) Usage() string {
	return `solin view [-d <date>] [-c <category> [-p]]

  Lists expenses grouped by category with the grand total. With -d only the
  entries of that exact date are shown. With -c and -p a numbered preview of
  one category is shown, for use with edit and delete.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dateStr, "d", "", "Only entries on this date. Accepts natural references.")
	f.StringVar(&c.category, "c", "", "Category to preview.")
	f.BoolVar(&c.preview, "p", false, "Numbered preview of one category (requires -c).")
}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var on date.Date
	if c.dateStr != "" {
		var ok bool
		var err error
		if on, ok = date.Resolve(c.dateStr, date.Today()); !ok {
			if on, err = date.Parse(c.dateStr); err != nil {
				return fail(err)
			}
		}
	}

	ledger, err := solin.OpenLedger(openStore())
	if err != nil {
		return fail(err)
	}

	if c.preview {
		if c.category == "" {
			fmt.Fprintln(os.Stderr, "Error: -p requires -c.")
			return subcommands.ExitUsageError
		}
		preview, err := ledger.Preview(c.category, on)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.PreviewTable(preview))
		return subcommands.ExitSuccess
	}

	if on.IsZero() {
		printMarkdown(renderer.View(ledger.All()))
	} else {
		printMarkdown(renderer.View(ledger.OnDate(on)))
	}
	return subcommands.ExitSuccess
}
