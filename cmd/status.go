package cmd

import (
	"context"
	"flag"

	"github.com/etnz/solin"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "summarize the live ledger" }
func (*statusCmd) Usage() string {
	return `solin status

  Shows entry and category counts, the total spent and the latest entry date.
`
}

func (*statusCmd) SetFlags(_ *flag.FlagSet) {}

func (*statusCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := solin.OpenLedger(openStore())
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Status(ledger.Status()))
	return subcommands.ExitSuccess
}
