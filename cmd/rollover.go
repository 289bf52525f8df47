package cmd

import (
	"context"
	"flag"

	"github.com/etnz/solin"
	"github.com/etnz/solin/date"
	"github.com/etnz/solin/renderer"
	"github.com/google/subcommands"
)

type rolloverCmd struct{}

func (*rolloverCmd) Name() string     { return "rollover" }
func (*rolloverCmd) Synopsis() string { return "run the monthly archival check" }
func (*rolloverCmd) Usage() string {
	return `solin rollover

  Archives every past month into its own immutable document and keeps only
  the current month live. Runs at most once per calendar month; calling it
  again in the same month is a no-op. The assistant runs this check on
  startup.
`
}

func (*rolloverCmd) SetFlags(_ *flag.FlagSet) {}

func (*rolloverCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := solin.NewScheduler(openStore()).Check(date.Today())
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Rollover(result))
	return subcommands.ExitSuccess
}
