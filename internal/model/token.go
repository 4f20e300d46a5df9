package model

import "time"

// TokenManager issues and validates signed bearer tokens bound to a subject.
type TokenManager interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Validate(token string) (subject string, err error)
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	TokenType string
}
