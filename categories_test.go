package solin

import (
	"sort"
	"testing"
)

func TestOpenCategoriesRestoresDefaults(t *testing.T) {
	store := NewMemStore()
	registry, err := OpenCategories(store)
	if err != nil {
		t.Fatalf("OpenCategories failed: %v", err)
	}
	names := registry.Names()
	if len(names) != len(defaultCategories) {
		t.Fatalf("got %d categories, want %d", len(names), len(defaultCategories))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() = %v, want sorted", names)
	}
	// The restored registry is persisted, not just held in memory.
	if !store.Exists(categoriesDoc) {
		t.Error("defaults were not persisted to the store")
	}
}

func TestOpenCategoriesKeepsCustomRegistry(t *testing.T) {
	store := NewMemStore()
	custom := map[string]string{"Pets": "Vet visits, pet food"}
	if err := store.Save(categoriesDoc, custom); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	registry, err := OpenCategories(store)
	if err != nil {
		t.Fatalf("OpenCategories failed: %v", err)
	}
	if names := registry.Names(); len(names) != 1 || names[0] != "Pets" {
		t.Errorf("Names() = %v, want [Pets] only", names)
	}
}

func TestCategoriesResolve(t *testing.T) {
	registry := openTestRegistry(t)
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"food", "Food", true},
		{"FOOD", "Food", true},
		{"Transport", "Transport", true},
		{"Gambling", "", false},
	}
	for _, tt := range tests {
		got, ok := registry.Resolve(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategoriesDescription(t *testing.T) {
	registry := openTestRegistry(t)
	desc, ok := registry.Description("Food")
	if !ok || desc == "" {
		t.Errorf("Description(Food) = %q, %v, want a non-empty description", desc, ok)
	}
	if _, ok := registry.Description("food"); ok {
		t.Error("Description matched case-insensitively, want exact spelling only")
	}
}
