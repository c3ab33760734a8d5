package session

import "github.com/spec-kit/nmt-console/internal/auth"

// Location is a navigation target inside the console.
type Location struct {
	Path    string
	Next    string
	Expired bool
}

// LoginLocation points at the login surface.
func LoginLocation(next string, expired bool) Location {
	return Location{Path: auth.LoginPath, Next: next, Expired: expired}
}

// URL renders the location as a redirect target.
func (l Location) URL() string {
	if l.Path == auth.LoginPath {
		return auth.LoginURL(l.Next, l.Expired)
	}
	return l.Path
}

// Navigator collects the navigation requested while handling one request.
// The last request wins, except that a forced login navigation is never
// replaced by a later non-login one.
type Navigator struct {
	pending *Location
}

// Navigate records loc as the pending navigation.
func (n *Navigator) Navigate(loc Location) {
	if n.pending != nil && n.pending.Expired && loc.Path != auth.LoginPath {
		return
	}
	n.pending = &loc
}

// Pending returns the navigation to apply, if any.
func (n *Navigator) Pending() (Location, bool) {
	if n.pending == nil {
		return Location{}, false
	}
	return *n.pending, true
}
