package solin

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// openTestBudgets returns categories and budgets over one in-memory store.
func openTestBudgets(t *testing.T) (*Categories, *Budgets, *MemStore) {
	t.Helper()
	store := NewMemStore()
	registry, err := OpenCategories(store)
	if err != nil {
		t.Fatalf("OpenCategories failed: %v", err)
	}
	budgets, err := OpenBudgets(store)
	if err != nil {
		t.Fatalf("OpenBudgets failed: %v", err)
	}
	return registry, budgets, store
}

func TestBudgetSetSeedsRegistry(t *testing.T) {
	registry, budgets, store := openTestBudgets(t)

	result, err := budgets.Set("food", A(1000), registry)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if result.Category != "Food" {
		t.Errorf("Category = %q, want registry spelling %q", result.Category, "Food")
	}
	if result.Action != "set" {
		t.Errorf("Action = %q, want %q", result.Action, "set")
	}

	// The first Set seeds a zero ceiling for every registered category.
	limits, count := budgets.All()
	if count != len(registry.Names()) {
		t.Errorf("got %d budget keys, want %d", count, len(registry.Names()))
	}
	if !limits["Transport"].IsZero() {
		t.Errorf("Transport = %v, want seeded zero", limits["Transport"])
	}
	if !limits["Food"].Equal(A(1000)) {
		t.Errorf("Food = %v, want %v", limits["Food"], A(1000))
	}

	// A reopened store sees the seeded document and does not reseed.
	reopened, err := OpenBudgets(store)
	if err != nil {
		t.Fatalf("OpenBudgets failed: %v", err)
	}
	if _, count := reopened.All(); count != len(registry.Names()) {
		t.Errorf("got %d keys after reopen, want %d", count, len(registry.Names()))
	}
}

func TestBudgetSetVersusUpdated(t *testing.T) {
	registry, budgets, _ := openTestBudgets(t)

	first, _ := budgets.Set("Food", A(1000), registry)
	if first.Action != "set" {
		t.Errorf("first Action = %q, want %q", first.Action, "set")
	}
	second, _ := budgets.Set("Food", A(1500), registry)
	if second.Action != "updated" {
		t.Errorf("second Action = %q, want %q", second.Action, "updated")
	}
	// A seeded zero ceiling counts as "no budget yet", so the first real
	// ceiling on another category is still "set".
	other, _ := budgets.Set("Transport", A(500), registry)
	if other.Action != "set" {
		t.Errorf("Action on seeded zero = %q, want %q", other.Action, "set")
	}
}

func TestBudgetSetRejections(t *testing.T) {
	registry, budgets, _ := openTestBudgets(t)

	_, err := budgets.Set("Gambling", A(100), registry)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Set error = %v, want %v", err, ErrNotFound)
	}
	// The rejection names the valid categories.
	if !strings.Contains(err.Error(), "Food") {
		t.Errorf("error %q does not list valid categories", err)
	}

	if _, err := budgets.Set("Food", A(-100), registry); !errors.Is(err, ErrValidation) {
		t.Errorf("negative Set error = %v, want %v", err, ErrValidation)
	}
}

func TestBudgetGet(t *testing.T) {
	registry, budgets, _ := openTestBudgets(t)
	if _, err := budgets.Get("Food"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get before any Set error = %v, want %v", err, ErrNotFound)
	}

	budgets.Set("Food", A(1000), registry)
	limit, err := budgets.Get("food")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !limit.Equal(A(1000)) {
		t.Errorf("limit = %v, want %v", limit, A(1000))
	}
}

func TestNilBudgets(t *testing.T) {
	var budgets *Budgets
	if _, ok := budgets.Limit("Food"); ok {
		t.Error("nil Budgets reported a limit")
	}
}

func TestBudgetDeleteRequiresConfirmation(t *testing.T) {
	registry, budgets, store := openTestBudgets(t)
	budgets.Set("Food", A(1000), registry)
	before := append([]byte(nil), store.Raw(budgetsDoc)...)

	result, err := budgets.Delete("food", false)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !result.ConfirmationRequired {
		t.Error("ConfirmationRequired = false, want true")
	}
	if !bytes.Equal(store.Raw(budgetsDoc), before) {
		t.Error("store changed on an unconfirmed delete")
	}

	result, err = budgets.Delete("food", true)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !result.Deleted.Equal(A(1000)) {
		t.Errorf("Deleted = %v, want %v", result.Deleted, A(1000))
	}
	if _, ok := budgets.Limit("Food"); ok {
		t.Error("Food ceiling still present after confirmed delete")
	}

	if _, err := budgets.Delete("Food", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete of absent key error = %v, want %v", err, ErrNotFound)
	}
}
