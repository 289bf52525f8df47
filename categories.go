package solin

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
)

const categoriesDoc = "categories"

// defaultCategories seeds the registry when no categories document exists.
// Descriptions are classifier context only, never matched against.
var defaultCategories = map[string]string{
	"Food":          "Meals, snacks, restaurants, cafes, delivery, Swiggy, Zomato",
	"Transport":     "Cabs, Uber, Ola, bus, train, fuel, metro, autorickshaw, flights",
	"Bills":         "Electricity, water, gas, broadband, mobile, DTH, rent",
	"Groceries":     "Vegetables, fruits, rice, supermarket, Big Bazaar, daily items",
	"Health":        "Medicines, pharmacy, doctor visits, clinic, hospital",
	"Education":     "Tuition, coaching, online courses, Udemy, textbooks, school fees",
	"Investment":    "Mutual funds, SIPs, stocks, equity, Zerodha, trading",
	"Insurance":     "LIC, premiums, life insurance, health cover, vehicle insurance",
	"Shopping":      "Amazon, Flipkart, clothes, shoes, electronics, accessories",
	"Social":        "Gifts, donations, parties, family functions, celebrations",
	"Entertainment": "Netflix, cinema, games, YouTube Premium, Spotify, events",
	"EMI":           "Loan EMI, home loan, bike loan, car installment, credit card EMI",
	"Savings":       "Deposits, recurring savings, piggy bank, bank transfer to savings",
}

// Categories is the registry of valid expense categories: the single source
// of truth for category names. Names are matched case-insensitively but
// stored with their original spelling.
type Categories struct {
	store        Store
	descriptions map[string]string
}

// OpenCategories loads the registry from the store. When the document is
// missing, the default registry is restored and persisted.
func OpenCategories(store Store) (*Categories, error) {
	c := &Categories{store: store, descriptions: make(map[string]string)}
	err := store.Load(categoriesDoc, &c.descriptions)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("categories store missing, restoring defaults")
		for name, desc := range defaultCategories {
			c.descriptions[name] = desc
		}
		if err := store.Save(categoriesDoc, c.descriptions); err != nil {
			return nil, fmt.Errorf("could not restore default categories: %w", err)
		}
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Names returns all registered category names, sorted for stable prompts
// and listings.
func (c *Categories) Names() []string {
	names := make([]string, 0, len(c.descriptions))
	for name := range c.descriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the free-text description of a category.
func (c *Categories) Description(name string) (string, bool) {
	desc, ok := c.descriptions[name]
	return desc, ok
}

// Resolve matches a name case-insensitively against the registry and returns
// the stored spelling.
func (c *Categories) Resolve(name string) (string, bool) {
	for stored := range c.descriptions {
		if strings.EqualFold(stored, name) {
			return stored, true
		}
	}
	return "", false
}
