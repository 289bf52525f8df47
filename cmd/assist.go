package cmd

import (
	"bufio"
	"context"
	"flag"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/solin"
	"github.com/etnz/solin/agent"
	"github.com/google/subcommands"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the assistant" }
func (*assistCmd) Usage() string {
	return `solin assist

  Starts the natural-language REPL. Each line is resolved into an action,
  either by the built-in phrase table or through the inference endpoint, and
  executed against the ledger. Type 'bye' to exit.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := openStore()
	generator := newGenerator()
	stdin := bufio.NewReader(os.Stdin)

	dispatcher := &agent.Dispatcher{
		Store:     store,
		Generator: generator,
		Confirm:   agent.TerminalConfirm(os.Stdout, stdin),
		Choose:    agent.TerminalChooser(os.Stdout, stdin),
		Log:       agent.NewActivityLog(logDir()),
	}
	a := agent.New(os.Stdout, stdin, &solin.Resolver{Generator: generator}, dispatcher)
	a.Render = func(markdown string) string {
		out, err := glamour.Render(markdown, "auto")
		if err != nil {
			return markdown
		}
		return out
	}

	if err := a.Run(ctx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
