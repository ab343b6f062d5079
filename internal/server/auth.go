package server

import (
	"net/http"
	"strings"
)

// Authenticator resolves the owner id behind a request, or "" when the
// caller is not authenticated.
type Authenticator interface {
	Authenticate(r *http.Request) string
}

// StaticTokenAuthenticator maps configured bearer tokens to owner ids. The
// real product authenticates upstream; the core only needs a resolved owner
// to enforce thread ownership.
type StaticTokenAuthenticator struct {
	tokens map[string]string
}

func NewStaticTokenAuthenticator(tokens map[string]string) *StaticTokenAuthenticator {
	return &StaticTokenAuthenticator{tokens: tokens}
}

func (a *StaticTokenAuthenticator) Authenticate(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return ""
	}
	return a.tokens[token]
}
