package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/solin"
	"github.com/etnz/solin/agent"
	"github.com/etnz/solin/date"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	category string
	dateStr  string
	timeStr  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "log one expense" }
func (*addCmd) Usage() string {
	return `solin add [-c <category>] [-d <date>] [-t <time>] <amount> <description...>

  Logs one expense. Without -c the description is classified against the
  category registry, asking the inference service first and falling back to
  a manual choice. The date accepts natural references like "yesterday" or
  "last monday".
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category. Classified from the description when omitted.")
	f.StringVar(&c.dateStr, "d", "", "Date of the expense. Defaults to today.")
	f.StringVar(&c.timeStr, "t", "", "Time of the expense (HH:MM). Defaults to now.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: want an amount and a description.")
		return subcommands.ExitUsageError
	}
	amount, err := solin.ParseAmount(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	description := strings.Join(f.Args()[1:], " ")

	store := openStore()

	var on date.Date
	if c.dateStr != "" {
		var ok bool
		if on, ok = date.Resolve(c.dateStr, date.Today()); !ok {
			if on, err = date.Parse(c.dateStr); err != nil {
				return fail(err)
			}
		}
	}

	category := c.category
	if category == "" {
		registry, err := solin.OpenCategories(store)
		if err != nil {
			return fail(err)
		}
		classifier := &solin.Classifier{
			Generator: newGenerator(),
			Chooser:   agent.TerminalChooser(os.Stdout, bufio.NewReader(os.Stdin)),
		}
		classification, err := classifier.Classify(ctx, description, registry)
		if err != nil {
			return fail(err)
		}
		category = classification.Category
	}

	ledger, err := solin.OpenLedger(store)
	if err != nil {
		return fail(err)
	}
	budgets, err := solin.OpenBudgets(store)
	if err != nil {
		return fail(err)
	}
	result, err := ledger.Append(category, amount, description, on, c.timeStr, budgets)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Append(result))
	return subcommands.ExitSuccess
}
