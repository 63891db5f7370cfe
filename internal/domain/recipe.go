// Package domain defines the core types and interfaces for the recipe desk.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"strconv"
	"strings"
)

// RecipeSummary is a recipe as the server returns it. Treat it as
// immutable once fetched; a change means a full re-fetch.
type RecipeSummary struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Procedure   string       `json:"procedure"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Ingredient is the wire shape of a single ingredient.
type Ingredient struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RecordID identifies a recipe on the client side. It is kept exactly as
// routing supplied it ("1", "42"); the empty value means "no record yet".
type RecordID string

// NewRecord is the routing sentinel for creation mode.
const NewRecord RecordID = "-1"

// RecordIDOf formats a server id as a RecordID.
func RecordIDOf(id int) RecordID {
	return RecordID(strconv.Itoa(id))
}

// Valid reports whether the id parses as a non-negative integer.
func (r RecordID) Valid() bool {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

// Matches reports whether the id refers to the given server id.
func (r RecordID) Matches(id int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(string(r)))
	return err == nil && n == id
}

// String returns the id as routed.
func (r RecordID) String() string { return string(r) }

// RecipeEdit is the shape of a recipe while it is being composed.
// Ingredients are plain names; ID is empty for a recipe not yet created.
type RecipeEdit struct {
	ID          RecordID
	Name        string
	Procedure   string
	Ingredients []string
}

// IsNew reports whether the draft describes a recipe not yet on the server.
func (e RecipeEdit) IsNew() bool { return e.ID == "" }
