// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// Identity is who a connection is, as extracted from a verified
// credential. Immutable after admission.
type Identity struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// NewIdentity is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewIdentity(username, avatar string) (Identity, error) {
	if len(username) == 0 {
		return Identity{}, ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return Identity{}, ErrUsernameTooLong
	}
	return Identity{Username: username, Avatar: avatar}, nil
}
