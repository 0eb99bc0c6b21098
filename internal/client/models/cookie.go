package models

import "time"

// StoredCookie is a cookie persisted by the client's jar. Host is the
// request host the server set it from; the jar replays it against that host.
type StoredCookie struct {
	Host     string
	Name     string
	Path     string
	Domain   string
	Value    string
	Expires  time.Time // zero for session cookies
	Secure   bool
	HttpOnly bool
}

// Expired reports whether the cookie should no longer be sent at now.
func (c StoredCookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}
