// Package cmd implements the CLI application to manage the expense ledger.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/solin"
	"github.com/etnz/solin/config"
	"github.com/etnz/solin/ollama"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "expenses")
	c.Register(&viewCmd{}, "expenses")
	c.Register(&editCmd{}, "expenses")
	c.Register(&deleteCmd{}, "expenses")
	c.Register(&statusCmd{}, "expenses")
	c.Register(&categoryCmd{}, "expenses")

	c.Register(&budgetCmd{}, "budgets")

	c.Register(&rolloverCmd{}, "maintenance")
	c.Register(&memoryCmd{}, "maintenance")

	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "", "Path to the data directory holding all store documents. Defaults to the configured data_dir.")
var configFile = flag.String("config", "", "Path to the config file. Defaults to "+config.Path())

var (
	loadOnce sync.Once
	cfg      config.Config
)

// settings loads the configuration once and applies the display currency.
func settings() config.Config {
	loadOnce.Do(func() {
		path := *configFile
		if path == "" {
			path = config.Path()
		}
		var err error
		cfg, err = config.LoadFrom(path)
		if err != nil {
			log.Printf("warning, could not read config %q: %v", path, err)
		}
		solin.SetCurrency(cfg.General.Currency)
	})
	return cfg
}

// storeDir returns the effective data directory.
func storeDir() string {
	if *dataDir != "" {
		return *dataDir
	}
	return settings().General.DataDir
}

// openStore returns the file-backed store all commands work against.
func openStore() solin.Store {
	return solin.NewDirStore(storeDir())
}

// newGenerator returns the configured inference client.
func newGenerator() *ollama.Client {
	s := settings()
	return ollama.New(s.Ollama.BaseURL, s.Ollama.Model)
}

// logDir is where the assistant's JSONL activity logs go.
func logDir() string {
	return filepath.Join(storeDir(), "logs")
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
