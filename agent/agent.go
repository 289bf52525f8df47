// Package agent implements the interactive assistant: a REPL that resolves
// each line into an intent and dispatches it against the ledger.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/solin"
	"github.com/etnz/solin/date"
	"github.com/etnz/solin/renderer"
)

const prompt = "you> "

// exitWords end the session.
var exitWords = []string{"exit", "quit", "escape", "bye"}

// Agent is the assistant that handles the interactive session.
type Agent struct {
	w          io.Writer
	r          *bufio.Reader
	Resolver   *solin.Resolver
	Dispatcher *Dispatcher

	// Render post-processes markdown before printing (e.g. glamour).
	// When nil the markdown is printed raw.
	Render func(markdown string) string
}

// New creates a new Agent reading user input from r and writing to w. The
// same reader must back the dispatcher's Confirm and Choose capabilities,
// otherwise two buffers would compete for stdin.
func New(w io.Writer, r *bufio.Reader, resolver *solin.Resolver, dispatcher *Dispatcher) *Agent {
	return &Agent{
		w:          w,
		r:          r,
		Resolver:   resolver,
		Dispatcher: dispatcher,
	}
}

// Run starts the interactive REPL session. It greets, runs the monthly
// rollover check once, then resolves and dispatches lines until an exit
// word or EOF.
func (a *Agent) Run(ctx context.Context) error {
	fmt.Fprintf(a.w, "solin expense assistant. %s!\n", greeting(time.Now().Hour()))
	a.print(intro)

	scheduler := solin.NewScheduler(a.Dispatcher.Store)
	rollover, err := scheduler.Check(date.Today())
	if err != nil {
		return fmt.Errorf("rollover check failed: %w", err)
	}
	if rollover.Triggered {
		a.print(renderer.Rollover(rollover))
	}

	for {
		fmt.Fprint(a.w, prompt)
		input, err := a.r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil // Clean exit on Ctrl+D
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if isExit(input) {
			fmt.Fprintln(a.w, "Goodbye, until next time.")
			return nil
		}

		intent, err := a.Resolver.Resolve(ctx, input)
		if err != nil {
			fmt.Fprintln(a.w, "I could not understand that, try rephrasing.")
			a.Dispatcher.Log.Failure(input, "", nil, err)
			continue
		}

		output, err := a.Dispatcher.Dispatch(ctx, input, intent)
		if err != nil {
			fmt.Fprintf(a.w, "That did not work: %v\n", err)
			continue
		}
		a.print(output)
	}
}

func (a *Agent) print(markdown string) {
	if a.Render != nil {
		markdown = a.Render(markdown)
	}
	fmt.Fprintln(a.w, markdown)
}

func isExit(input string) bool {
	lowered := strings.ToLower(input)
	for _, word := range exitWords {
		if lowered == word {
			return true
		}
	}
	return false
}

func greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// TerminalChooser returns a Chooser that enumerates the candidates on w and
// blocks on a valid numeric selection from r.
func TerminalChooser(w io.Writer, r *bufio.Reader) solin.Chooser {
	return func(description string, candidates []string) (int, error) {
		fmt.Fprintf(w, "I could not categorize %q. Available categories:\n", description)
		for i, candidate := range candidates {
			fmt.Fprintf(w, "%d. %s\n", i+1, candidate)
		}
		for {
			fmt.Fprint(w, "Please choose a category: ")
			line, err := r.ReadString('\n')
			if err != nil {
				return 0, err
			}
			choice, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil && choice >= 1 && choice <= len(candidates) {
				return choice - 1, nil
			}
			fmt.Fprintln(w, "Invalid selection, enter a number from the list.")
		}
	}
}

// TerminalConfirm returns a confirmation prompt reading y/n answers from r.
func TerminalConfirm(w io.Writer, r *bufio.Reader) func(string) bool {
	return func(question string) bool {
		for {
			fmt.Fprintf(w, "%s [y/n] ", question)
			line, err := r.ReadString('\n')
			if err != nil {
				return false
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes":
				return true
			case "n", "no":
				return false
			}
		}
	}
}
