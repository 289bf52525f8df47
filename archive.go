package solin

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"

	"github.com/etnz/solin/date"
)

const (
	rolloverMarker = "expense_reset"
	archivePrefix  = "archives/expenses_"
)

// Scheduler performs the monthly rollover: it partitions the live ledger by
// calendar month, writes every past month to an immutable archive document
// and keeps only the current month live.
//
// The rollover marker (the year-month of the last successful run) is the
// sole idempotence guard. Archive documents are write-once by design:
// running the partitioning twice in the same month would overwrite a past
// archive, so Check relies on the marker, never on archive presence.
type Scheduler struct {
	store Store
}

// NewScheduler returns a scheduler over the given store.
func NewScheduler(store Store) *Scheduler { return &Scheduler{store: store} }

// RolloverResult reports what a Check did.
type RolloverResult struct {
	Triggered      bool
	FirstRun       bool
	ArchivedMonths []string
	Retained       string
}

// Check runs the rollover if the marker's month differs from today's, and is
// a no-op otherwise. It is safe to call on every startup.
func (s *Scheduler) Check(today date.Date) (*RolloverResult, error) {
	current := today.YearMonth()

	marker, err := s.store.LoadText(rolloverMarker)
	firstRun := errors.Is(err, fs.ErrNotExist)
	if err != nil && !firstRun {
		return nil, fmt.Errorf("could not read rollover marker: %w", err)
	}
	if !firstRun && marker == current {
		return &RolloverResult{Triggered: false, Retained: current}, nil
	}

	archived, err := s.rollover(current)
	if err != nil {
		return nil, err
	}

	// The marker is written last: a failed rollover stays pending and is
	// retried on the next check.
	if err := s.store.SaveText(rolloverMarker, current); err != nil {
		return nil, fmt.Errorf("could not write rollover marker: %w", err)
	}

	return &RolloverResult{
		Triggered:      true,
		FirstRun:       firstRun,
		ArchivedMonths: archived,
		Retained:       current,
	}, nil
}

// rollover partitions the ledger by each record's year-month, archives every
// partition that is not the current month and rewrites the live document
// with the current month only. It returns the archived months, sorted.
func (s *Scheduler) rollover(current string) ([]string, error) {
	categories := make(map[string][]Entry)
	err := s.store.Load(expensesDoc, &categories)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil // nothing recorded yet, nothing to archive
	}
	if err != nil {
		return nil, err
	}

	partitions := make(map[string]map[string][]Entry)
	for category, entries := range categories {
		for _, e := range entries {
			month := e.Date.YearMonth()
			if partitions[month] == nil {
				partitions[month] = make(map[string][]Entry)
			}
			partitions[month][category] = append(partitions[month][category], e)
		}
	}

	var archived []string
	for month, partition := range partitions {
		if month == current {
			continue
		}
		if err := s.store.Save(archivePrefix+month, partition); err != nil {
			return nil, fmt.Errorf("could not archive month %s: %w", month, err)
		}
		archived = append(archived, month)
	}
	sort.Strings(archived)

	// Retain only current-month records, keeping category keys alive even
	// when all their entries were archived.
	for category, entries := range categories {
		retained := []Entry{}
		for _, e := range entries {
			if e.Date.YearMonth() == current {
				retained = append(retained, e)
			}
		}
		categories[category] = retained
	}
	if err := s.store.Save(expensesDoc, categories); err != nil {
		return nil, fmt.Errorf("could not rewrite live ledger: %w", err)
	}

	if len(archived) > 0 {
		log.Printf("archived %d month(s), retained %s", len(archived), current)
	}
	return archived, nil
}
