// Package models defines the records kept by the development API server.
package models

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserView is the JSON shape of a user in responses. The password hash
// never leaves the server.
type UserView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}

type Session struct {
	Token   string
	UserID  int64
	Expires time.Time
}
