// Package models defines the data the authdemo client exchanges with the
// auth API and keeps locally.
package models

import (
	"bytes"
	"encoding/json"
)

// UserID is the server-assigned user identifier. The API may send it as a
// JSON number or string; both decode to the same textual form.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// User is the identity the client believes it is signed in as. Raw is the
// exact response body the user was taken from.
type User struct {
	ID    UserID          `json:"id"`
	Email string          `json:"email"`
	Raw   json.RawMessage `json:"-"`
}

// Credentials is the body of /signup and /signin.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailUpdate is the body of PATCH /{id}.
type EmailUpdate struct {
	Email string `json:"email"`
}
