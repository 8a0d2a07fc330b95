// Package identity resolves the raw "Username @ ClientID" strings in
// game logs to stable player names. The same person shows up under
// different nicknames and device IDs across sessions; a resolver folds
// them into one canonical name.
package identity

import "strings"

// Player is a parsed raw player string.
type Player struct {
	Name string
	ID   string
}

// Parse splits a raw "Username @ ClientID" string. Names may themselves
// contain " @ ", so the split is on the last separator. A string with no
// separator is a bare name.
func Parse(raw string) Player {
	if i := strings.LastIndex(raw, " @ "); i >= 0 {
		return Player{Name: raw[:i], ID: raw[i+3:]}
	}
	return Player{Name: raw}
}

// Aliases lists the client IDs and nicknames one person plays under.
type Aliases struct {
	IDs   []string
	Names []string
}

// Resolver maps raw player strings to canonical names. Immutable after
// construction; safe for concurrent use.
type Resolver struct {
	byID   map[string]string
	byName map[string]string
}

// NewResolver builds a resolver from canonical-name to aliases mappings.
// ID matches take precedence over nickname matches when resolving.
func NewResolver(players map[string]Aliases) *Resolver {
	r := &Resolver{
		byID:   make(map[string]string),
		byName: make(map[string]string),
	}
	for canonical, aliases := range players {
		for _, id := range aliases.IDs {
			r.byID[id] = canonical
		}
		for _, name := range aliases.Names {
			r.byName[name] = canonical
		}
		// The canonical name resolves to itself even when the config
		// only lists IDs.
		if _, ok := r.byName[canonical]; !ok {
			r.byName[canonical] = canonical
		}
	}
	return r
}

// Canonical resolves a raw player string. Unmapped players keep their
// parsed nickname, so unconfigured logs still aggregate by name.
func (r *Resolver) Canonical(raw string) string {
	player := Parse(raw)
	if canonical, ok := r.byID[player.ID]; ok && player.ID != "" {
		return canonical
	}
	if canonical, ok := r.byName[player.Name]; ok {
		return canonical
	}
	return player.Name
}

// Known reports whether the raw string maps to a configured player.
func (r *Resolver) Known(raw string) bool {
	player := Parse(raw)
	if _, ok := r.byID[player.ID]; ok && player.ID != "" {
		return true
	}
	_, ok := r.byName[player.Name]
	return ok
}
