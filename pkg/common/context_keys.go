package common

type contextKey string

const (
	IdentityContextKey contextKey = "identity"
)
