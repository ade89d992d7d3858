package types

const (
	ContextUserKey   = "user"
	ContextLoggerKey = "logger"

	RequestIDHeader = "X-Request-ID"
	TokenCookieName = "token"
)
