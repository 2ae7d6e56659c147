package auth

import "time"

// Claims is the identity carried inside an auth token.
type Claims struct {
	UserID string
	Role   string
}

// Strategy issues and verifies auth tokens.
type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

// Options tune token issuance.
type Options struct {
	TTL time.Duration
}
