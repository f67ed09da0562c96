package common

const (
	SessionCookieName = "session"

	// MaxPromptLength is the longest text the moderation pipeline accepts.
	MaxPromptLength = 5000
	// MaxStoredContentLength bounds what the recorder persists, independent
	// of what the prompt builder accepts.
	MaxStoredContentLength = 1000
)
