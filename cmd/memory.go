package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/solin"
	"github.com/google/subcommands"
)

type memoryCmd struct{}

func (*memoryCmd) Name() string     { return "memory" }
func (*memoryCmd) Synopsis() string { return "remember, recall or forget a fact" }
func (*memoryCmd) Usage() string {
	return `solin memory set <key> <value...>
solin memory get <key>
solin memory forget <key>
`
}

func (*memoryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *memoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	memory, err := solin.OpenMemory(openStore())
	if err != nil {
		return fail(err)
	}

	switch f.Arg(0) {
	case "set":
		if f.NArg() < 3 {
			fmt.Fprintln(os.Stderr, "Error: want a key and a value.")
			return subcommands.ExitUsageError
		}
		if err := memory.Remember(f.Arg(1), strings.Join(f.Args()[2:], " ")); err != nil {
			return fail(err)
		}
		fmt.Printf("Remembered %q.\n", f.Arg(1))
		return subcommands.ExitSuccess

	case "get":
		if f.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: want a key.")
			return subcommands.ExitUsageError
		}
		value, ok := memory.Recall(f.Arg(1))
		if !ok {
			fmt.Printf("Nothing remembered for %q.\n", f.Arg(1))
			return subcommands.ExitSuccess
		}
		fmt.Println(value)
		return subcommands.ExitSuccess

	case "forget":
		if f.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: want a key.")
			return subcommands.ExitUsageError
		}
		forgot, err := memory.Forget(f.Arg(1))
		if err != nil {
			return fail(err)
		}
		if forgot {
			fmt.Printf("Forgot %q.\n", f.Arg(1))
		} else {
			fmt.Printf("Nothing remembered for %q.\n", f.Arg(1))
		}
		return subcommands.ExitSuccess

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}
