// Package state holds the client's view state and the single function that
// changes it.
//
// State is a plain value. Every change goes through Reduce, driven by an
// Action; Store serializes Reduce calls so concurrent requests never
// interleave half-applied outcomes. Reduce guarantees that after a request
// outcome exactly one of Response and Err is set.
package state

import "github.com/dmitrijs2005/authdemo/internal/client/models"

// Session is the client's belief about who it is signed in as. The server
// cookie is the source of truth; this is only what the last probe said.
type Session struct {
	SignedIn bool
	User     *models.User
}

// Form is the user's current input. Actions read it; nothing resets it.
type Form struct {
	Email        string
	Password     string
	TargetUserID string
}

type State struct {
	Session Session
	Form    Form

	// Response is the last successful payload, nil if the last request failed
	// or none has completed yet.
	Response *models.Payload
	// Err is the last failure message, "" if the last request succeeded.
	Err string

	// Pending counts requests started but not completed.
	Pending int
}

// Anonymous reports whether no user is believed to be signed in.
func (s State) Anonymous() bool {
	return !s.Session.SignedIn
}
