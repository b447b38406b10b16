package service

import "errors"

// Membership invariant violations. Neither mutates the team.
var (
	ErrAlreadyMember = errors.New("user is already a member")
	ErrNotMember     = errors.New("user is not a member")
)
