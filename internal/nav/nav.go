// Package nav holds the navigation pieces shared by the screens: the
// route table, navigation intents and the one-shot stale signal.
package nav

import (
	"strings"
	"sync/atomic"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// Paths understood by the router.
const (
	PathHome   = "/"
	PathCreate = "/create"
	editPrefix = "/edit/"
)

// EditPath is the route of the editor for one record.
func EditPath(id domain.RecordID) string { return editPrefix + id.String() }

// RouteKind names the screen a path resolves to.
type RouteKind int

const (
	RouteUnknown RouteKind = iota
	RouteList
	RouteCreate
	RouteEdit
)

// String returns a human-readable route kind.
func (k RouteKind) String() string {
	switch k {
	case RouteList:
		return "list"
	case RouteCreate:
		return "create"
	case RouteEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Route is a matched path with its parameters.
type Route struct {
	Kind RouteKind
	ID   domain.RecordID // only for RouteEdit
}

// Match resolves a path. Trailing slashes are ignored.
func Match(path string) Route {
	p := strings.TrimSpace(path)
	if p != PathHome {
		p = strings.TrimRight(p, "/")
	}
	switch {
	case p == PathHome || p == "":
		return Route{Kind: RouteList}
	case p == PathCreate:
		return Route{Kind: RouteCreate}
	case strings.HasPrefix(p, editPrefix):
		id := strings.TrimPrefix(p, editPrefix)
		if id == "" || strings.Contains(id, "/") {
			return Route{Kind: RouteUnknown}
		}
		return Route{Kind: RouteEdit, ID: domain.RecordID(id)}
	}
	return Route{Kind: RouteUnknown}
}

// Intent asks the router to show Path. Refresh marks the collection stale.
type Intent struct {
	Path    string
	Refresh bool
}

// Home is the intent emitted after a successful mutation.
func Home() Intent { return Intent{Path: PathHome, Refresh: true} }

// Signal is a one-shot "collection may be stale" flag. It is set by a
// navigation event and consumed by at most one reader.
type Signal struct {
	set atomic.Bool
}

// Mark raises the signal.
func (s *Signal) Mark() { s.set.Store(true) }

// Pending reports whether the signal is raised without consuming it.
func (s *Signal) Pending() bool { return s.set.Load() }

// Consume clears the signal and reports whether it was raised.
func (s *Signal) Consume() bool { return s.set.CompareAndSwap(true, false) }
