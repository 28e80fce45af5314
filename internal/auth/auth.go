package auth

import (
	"errors"
	"strings"
)

const (
	MethodRemote = "remote"
	MethodLocal  = "local"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Principal is the authenticated dashboard user. Token carries the
// backend bearer token when the remote provider authenticated it; the
// local provider leaves it empty.
type Principal struct {
	Email  string
	Token  string
	Method string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
